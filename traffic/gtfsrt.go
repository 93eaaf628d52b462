package traffic

import (
	"fmt"
	"math"
	"sort"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/losangeles1156/lutagu-mvp-sub001/topology"
)

// DefaultDelayThresholdMinutes is the mean trip delay at which a route is
// reported as delayed.
const DefaultDelayThresholdMinutes = 3

// RouteMap resolves GTFS route_id values to railway ids. Routes without an
// entry keep their route_id.
type RouteMap map[string]string

// Railway returns the railway id for a GTFS route id.
func (m RouteMap) Railway(routeID string) string {
	if r, ok := m[routeID]; ok && r != "" {
		return topology.NormalizeRailwayID(r)
	}
	return topology.NormalizeRailwayID(routeID)
}

// Batch is one decoded feed: its conditions and the feed header timestamp.
type Batch struct {
	Conditions []Condition
	Timestamp  int64
}

func decodeFeed(data []byte) (*gtfsrtpb.FeedMessage, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("decode gtfs-rt feed: %w", err)
	}
	return &fm, nil
}

func headerTimestamp(fm *gtfsrtpb.FeedMessage) int64 {
	if ts := int64(fm.GetHeader().GetTimestamp()); ts > 0 {
		return ts
	}
	return time.Now().Unix()
}

// translatedText prefers the untagged translation, then English, then the first.
func translatedText(ts *gtfsrtpb.TranslatedString) string {
	var first, en string
	for _, tr := range ts.GetTranslation() {
		switch tr.GetLanguage() {
		case "":
			return tr.GetText()
		case "en":
			if en == "" {
				en = tr.GetText()
			}
		}
		if first == "" {
			first = tr.GetText()
		}
	}
	if en != "" {
		return en
	}
	return first
}

// activeAt reports whether any period contains ts. No periods means always active.
func activeAt(periods []*gtfsrtpb.TimeRange, ts int64) bool {
	if len(periods) == 0 {
		return true
	}
	for _, p := range periods {
		start, end := int64(p.GetStart()), int64(p.GetEnd())
		if (start == 0 || ts >= start) && (end == 0 || ts <= end) {
			return true
		}
	}
	return false
}

func alertStatus(a *gtfsrtpb.Alert, text string) (Status, bool) {
	switch a.GetEffect() {
	case gtfsrtpb.Alert_NO_SERVICE:
		return StatusSuspended, true
	case gtfsrtpb.Alert_SIGNIFICANT_DELAYS, gtfsrtpb.Alert_REDUCED_SERVICE:
		return StatusDelayed, true
	}
	if MentionsSuspension(text) {
		return StatusSuspended, true
	}
	return StatusNormal, false
}

// ParseAlerts turns a GTFS-RT service alerts feed into railway conditions.
// Alerts whose effect is NO_SERVICE (or whose text reports a suspension) mark
// every informed route suspended; SIGNIFICANT_DELAYS and REDUCED_SERVICE mark
// them delayed. Alerts outside their active period are ignored.
func ParseAlerts(data []byte, routes RouteMap) (Batch, error) {
	if len(data) == 0 {
		return Batch{}, nil
	}
	fm, err := decodeFeed(data)
	if err != nil {
		return Batch{}, err
	}
	ts := headerTimestamp(fm)
	var conds []Condition
	for _, e := range fm.GetEntity() {
		a := e.GetAlert()
		if a == nil || !activeAt(a.GetActivePeriod(), ts) {
			continue
		}
		text := translatedText(a.GetHeaderText())
		if text == "" {
			text = translatedText(a.GetDescriptionText())
		}
		status, ok := alertStatus(a, text)
		if !ok {
			continue
		}
		for _, ie := range a.GetInformedEntity() {
			rid := ie.GetRouteId()
			if rid == "" && ie.GetTrip() != nil {
				rid = ie.GetTrip().GetRouteId()
			}
			if rid == "" {
				continue
			}
			conds = append(conds, Condition{
				RailwayID: routes.Railway(rid),
				Status:    status,
				Text:      text,
			})
		}
	}
	return Batch{Conditions: Merge(conds), Timestamp: ts}, nil
}

type routeDelay struct {
	sumSeconds float64
	trips      int
	canceled   int
}

func tripDelaySeconds(tu *gtfsrtpb.TripUpdate) (float64, bool) {
	if tu.Delay != nil {
		return float64(tu.GetDelay()), true
	}
	for _, stu := range tu.GetStopTimeUpdate() {
		if stu.GetArrival() != nil && stu.GetArrival().Delay != nil {
			return float64(stu.GetArrival().GetDelay()), true
		}
		if stu.GetDeparture() != nil && stu.GetDeparture().Delay != nil {
			return float64(stu.GetDeparture().GetDelay()), true
		}
	}
	return 0, false
}

// ParseTripUpdates aggregates trip delays into per-route conditions. A route
// whose mean delay reaches thresholdMinutes is delayed; a route whose every
// reported trip is canceled is suspended. A threshold <= 0 uses
// DefaultDelayThresholdMinutes.
func ParseTripUpdates(data []byte, routes RouteMap, thresholdMinutes int) (Batch, error) {
	if len(data) == 0 {
		return Batch{}, nil
	}
	if thresholdMinutes <= 0 {
		thresholdMinutes = DefaultDelayThresholdMinutes
	}
	fm, err := decodeFeed(data)
	if err != nil {
		return Batch{}, err
	}
	byRoute := map[string]*routeDelay{}
	for _, e := range fm.GetEntity() {
		tu := e.GetTripUpdate()
		if tu == nil || tu.GetTrip().GetRouteId() == "" {
			continue
		}
		rid := tu.GetTrip().GetRouteId()
		rd := byRoute[rid]
		if rd == nil {
			rd = &routeDelay{}
			byRoute[rid] = rd
		}
		if tu.GetTrip().GetScheduleRelationship() == gtfsrtpb.TripDescriptor_CANCELED {
			rd.canceled++
			continue
		}
		if d, ok := tripDelaySeconds(tu); ok {
			rd.sumSeconds += math.Max(d, 0)
			rd.trips++
		}
	}

	ids := make([]string, 0, len(byRoute))
	for id := range byRoute {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var conds []Condition
	for _, rid := range ids {
		rd := byRoute[rid]
		if rd.canceled > 0 && rd.trips == 0 {
			conds = append(conds, Condition{
				RailwayID: routes.Railway(rid),
				Status:    StatusSuspended,
				Text:      fmt.Sprintf("%d trips canceled", rd.canceled),
			})
			continue
		}
		if rd.trips == 0 {
			continue
		}
		mean := int(math.Round(rd.sumSeconds / float64(rd.trips) / 60))
		if mean >= thresholdMinutes {
			conds = append(conds, Condition{
				RailwayID:    routes.Railway(rid),
				Status:       StatusDelayed,
				DelayMinutes: mean,
			})
		}
	}
	return Batch{Conditions: Merge(conds), Timestamp: headerTimestamp(fm)}, nil
}
