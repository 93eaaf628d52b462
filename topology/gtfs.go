package topology

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// UndeterminedLocale keys titles whose language the source does not declare.
const UndeterminedLocale = "und"

// GTFS route_type values that describe rail service.
var railRouteTypes = map[int]bool{
	0: true, 1: true, 2: true, 5: true, 7: true, 12: true,
}

func isRailRouteType(t int) bool {
	if railRouteTypes[t] {
		return true
	}
	// Extended route types: 100-199 railway, 400-499 urban rail.
	return (t >= 100 && t < 200) || (t >= 400 && t < 500)
}

type gtfsStop struct {
	name string
	lat  float64
	lon  float64
	ok   bool
}

type gtfsRoute struct {
	agency    string
	shortName string
	longName  string
	routeType int
}

type gtfsStopTime struct {
	stop string
	seq  int
}

// gtfsReader accumulates the tables needed to derive line topologies.
type gtfsReader struct {
	agencies    map[string]string // agency_id -> agency_name
	firstAgency string
	routes      map[string]gtfsRoute
	tripRoute   map[string]string
	stops       map[string]gtfsStop
	stopTimes   map[string][]gtfsStopTime
}

// FromGTFSZip derives a snapshot from a GTFS static feed. Each rail route becomes
// one RailwayTopology whose station order follows its longest trip.
func FromGTFSZip(data []byte) (*Snapshot, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open gtfs zip: %w", err)
	}
	g := &gtfsReader{
		agencies:  map[string]string{},
		routes:    map[string]gtfsRoute{},
		tripRoute: map[string]string{},
		stops:     map[string]gtfsStop{},
		stopTimes: map[string][]gtfsStopTime{},
	}
	for _, f := range zr.File {
		name := strings.ToLower(f.Name)
		if name == "routes.txt" || name == "trips.txt" || name == "stops.txt" || name == "stop_times.txt" || name == "agency.txt" {
			if err := g.consumeCSV(f); err != nil {
				return nil, fmt.Errorf("%s: %w", f.Name, err)
			}
		}
	}
	return g.snapshot(), nil
}

func (g *gtfsReader) consumeCSV(f *zip.File) error {
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	head, err := csvr.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	if len(head) > 0 {
		head[0] = strings.TrimPrefix(head[0], "\ufeff")
	}
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	field := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	rows, err := csvr.ReadAll()
	if err != nil {
		return err
	}

	switch strings.ToLower(f.Name) {
	case "agency.txt":
		agID, agName := idx("agency_id"), idx("agency_name")
		for _, row := range rows {
			id := field(row, agID)
			name := field(row, agName)
			if g.firstAgency == "" {
				g.firstAgency = id
			}
			g.agencies[id] = name
		}
	case "routes.txt":
		rID, agID, rSN, rLN, rType := idx("route_id"), idx("agency_id"), idx("route_short_name"), idx("route_long_name"), idx("route_type")
		for _, row := range rows {
			t, err := strconv.Atoi(field(row, rType))
			if err != nil {
				continue
			}
			g.routes[field(row, rID)] = gtfsRoute{
				agency:    field(row, agID),
				shortName: field(row, rSN),
				longName:  field(row, rLN),
				routeType: t,
			}
		}
	case "trips.txt":
		rID, tID := idx("route_id"), idx("trip_id")
		for _, row := range rows {
			g.tripRoute[field(row, tID)] = field(row, rID)
		}
	case "stops.txt":
		sID, sN, sLat, sLon := idx("stop_id"), idx("stop_name"), idx("stop_lat"), idx("stop_lon")
		for _, row := range rows {
			st := gtfsStop{name: field(row, sN)}
			lat, errLat := strconv.ParseFloat(field(row, sLat), 64)
			lon, errLon := strconv.ParseFloat(field(row, sLon), 64)
			if errLat == nil && errLon == nil {
				st.lat, st.lon, st.ok = lat, lon, true
			}
			g.stops[field(row, sID)] = st
		}
	case "stop_times.txt":
		tID, sID, sq := idx("trip_id"), idx("stop_id"), idx("stop_sequence")
		if tID < 0 || sID < 0 || sq < 0 {
			return nil
		}
		for _, row := range rows {
			seq, _ := strconv.Atoi(field(row, sq))
			trip := field(row, tID)
			g.stopTimes[trip] = append(g.stopTimes[trip], gtfsStopTime{stop: field(row, sID), seq: seq})
		}
	}
	return nil
}

// idSegment strips characters that would break dotted odpt-style ids.
func idSegment(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '.' || r == ':' || r == ' ' || r == '\t':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (g *gtfsReader) snapshot() *Snapshot {
	longest := map[string][]gtfsStopTime{}
	longestTrip := map[string]string{}
	for trip, times := range g.stopTimes {
		routeID, ok := g.tripRoute[trip]
		if !ok {
			continue
		}
		cur := len(longest[routeID])
		// ties go to the smaller trip id so the result does not depend on map order
		if len(times) > cur || (len(times) == cur && trip < longestTrip[routeID]) {
			longest[routeID] = times
			longestTrip[routeID] = trip
		}
	}

	routeIDs := make([]string, 0, len(longest))
	for id := range longest {
		routeIDs = append(routeIDs, id)
	}
	sort.Strings(routeIDs)

	snap := &Snapshot{Coordinates: map[StationID]Coordinate{}}
	for _, routeID := range routeIDs {
		route, ok := g.routes[routeID]
		if !ok || !isRailRouteType(route.routeType) {
			continue
		}
		agency := route.agency
		if agency == "" {
			agency = g.firstAgency
		}
		opKey := idSegment(g.agencies[agency])
		if opKey == "" {
			opKey = idSegment(agency)
		}
		lineKey := idSegment(route.shortName)
		if lineKey == "" {
			lineKey = idSegment(routeID)
		}
		title := route.longName
		if title == "" {
			title = route.shortName
		}

		times := append([]gtfsStopTime(nil), longest[routeID]...)
		sort.Slice(times, func(i, j int) bool { return times[i].seq < times[j].seq })

		line := RailwayTopology{
			Operator: operatorPrefix + opKey,
			ID:       railwayPrefix + opKey + "." + lineKey,
			Title:    LocalizedText{UndeterminedLocale: title},
		}
		for _, t := range times {
			stop := g.stops[t.stop]
			name := stop.name
			if name == "" {
				name = t.stop
			}
			id := StationID(stationPrefix + opKey + "." + lineKey + "." + idSegment(name))
			if n := len(line.Stations); n > 0 && line.Stations[n-1].ID == id {
				continue
			}
			line.Stations = append(line.Stations, StationRef{ID: id, Title: LocalizedText{UndeterminedLocale: name}})
			if stop.ok {
				snap.Coordinates[id] = Coordinate{Lat: stop.lat, Lon: stop.lon}
			}
		}
		if len(line.Stations) > 1 {
			snap.Railways = append(snap.Railways, line)
		}
	}
	return snap
}
