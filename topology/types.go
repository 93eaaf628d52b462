package topology

import "strings"

// LocalizedText maps a locale tag ("ja", "en", "zh-Hant", "ko") to a title.
type LocalizedText map[string]string

// Coordinate is a WGS84 position.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// StationRef is one stop of a railway in travel order.
type StationRef struct {
	ID    StationID     `json:"id" yaml:"id"`
	Title LocalizedText `json:"title,omitempty" yaml:"title,omitempty"`
	Lat   *float64      `json:"lat,omitempty" yaml:"lat,omitempty"`
	Lon   *float64      `json:"lon,omitempty" yaml:"lon,omitempty"`
}

// RailwayTopology is one rail line operated by a single company.
type RailwayTopology struct {
	Operator string        `json:"operator" yaml:"operator"`
	ID       string        `json:"id" yaml:"id"`
	Title    LocalizedText `json:"title,omitempty" yaml:"title,omitempty"`
	Stations []StationRef  `json:"stations" yaml:"stations"`
}

// OperatorKey returns the short operator key of the line, preferring the
// explicit operator field over the one encoded in the railway id.
func (r RailwayTopology) OperatorKey() string {
	if r.Operator != "" {
		return OperatorKey(r.Operator)
	}
	return OperatorKey(r.ID)
}

// RapidPattern is a skip-stop service layered on top of local topology.
type RapidPattern struct {
	RailwayID      string        `json:"railway" yaml:"railway"`
	Operator       string        `json:"operator,omitempty" yaml:"operator,omitempty"`
	Title          LocalizedText `json:"title,omitempty" yaml:"title,omitempty"`
	Stops          []StationID   `json:"stops" yaml:"stops"`
	MinutesPerEdge float64       `json:"minutesPerEdge" yaml:"minutesPerEdge"`
	// Aliases links a rapid stop to the local stations at the same physical point.
	Aliases map[StationID][]StationID `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// OperatorKey mirrors RailwayTopology.OperatorKey.
func (p RapidPattern) OperatorKey() string {
	if p.Operator != "" {
		return OperatorKey(p.Operator)
	}
	return OperatorKey(p.RailwayID)
}

// TransferInfo is static transfer metadata for walking from Station to a
// platform of TargetRailway.
type TransferInfo struct {
	Station         StationID `json:"station" yaml:"station"`
	TargetRailway   string    `json:"toRailway,omitempty" yaml:"toRailway,omitempty"`
	DistanceMeters  float64   `json:"distanceMeters" yaml:"distanceMeters"`
	FloorDifference int       `json:"floorDifference,omitempty" yaml:"floorDifference,omitempty"`
	VerticalAccess  string    `json:"verticalAccess,omitempty" yaml:"verticalAccess,omitempty"` // elevator|escalator|stairs|none
	OutOfStation    bool      `json:"outOfStation,omitempty" yaml:"outOfStation,omitempty"`
	Turns           int       `json:"turns,omitempty" yaml:"turns,omitempty"`
	SignageClarity  *float64  `json:"signageClarity,omitempty" yaml:"signageClarity,omitempty"` // 0..1, 1 = clear
	CrowdLevel      float64   `json:"crowdLevel,omitempty" yaml:"crowdLevel,omitempty"`         // 0..1
	BasePainIndex   float64   `json:"basePainIndex,omitempty" yaml:"basePainIndex,omitempty"`   // 0..100
}

// Signage returns the signage clarity, defaulting to fully clear.
func (t TransferInfo) Signage() float64 {
	if t.SignageClarity == nil {
		return 1
	}
	return *t.SignageClarity
}

// Snapshot is an immutable topology dataset. Every field is read-only once
// handed to the router.
type Snapshot struct {
	ID          string                   `json:"id" yaml:"id"`
	Railways    []RailwayTopology        `json:"railways" yaml:"railways"`
	Aliases     [][]StationID            `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Rapid       []RapidPattern           `json:"rapid,omitempty" yaml:"rapid,omitempty"`
	Transfers   []TransferInfo           `json:"transfers,omitempty" yaml:"transfers,omitempty"`
	HubBuffers  map[string]float64       `json:"hubBuffers,omitempty" yaml:"hubBuffers,omitempty"` // base name -> minutes
	Coordinates map[StationID]Coordinate `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
}

// Normalize rewrites every station and railway id into canonical form and
// fills the coordinate table from inline station positions. Invalid station ids
// are reported as an error.
func (s *Snapshot) Normalize() error {
	if s.Coordinates == nil {
		s.Coordinates = map[StationID]Coordinate{}
	}
	norm := func(id StationID) (StationID, error) { return NormalizeStationID(string(id)) }
	for i := range s.Railways {
		r := &s.Railways[i]
		r.ID = NormalizeRailwayID(r.ID)
		for j := range r.Stations {
			st := &r.Stations[j]
			id, err := norm(st.ID)
			if err != nil {
				return err
			}
			st.ID = id
			if st.Lat != nil && st.Lon != nil {
				if _, ok := s.Coordinates[id]; !ok {
					s.Coordinates[id] = Coordinate{Lat: *st.Lat, Lon: *st.Lon}
				}
			}
		}
	}
	for i, group := range s.Aliases {
		for j, id := range group {
			n, err := norm(id)
			if err != nil {
				return err
			}
			s.Aliases[i][j] = n
		}
	}
	for i := range s.Rapid {
		p := &s.Rapid[i]
		p.RailwayID = NormalizeRailwayID(p.RailwayID)
		for j, id := range p.Stops {
			n, err := norm(id)
			if err != nil {
				return err
			}
			p.Stops[j] = n
		}
		if len(p.Aliases) > 0 {
			aliases := make(map[StationID][]StationID, len(p.Aliases))
			for stop, locals := range p.Aliases {
				n, err := norm(stop)
				if err != nil {
					return err
				}
				for _, l := range locals {
					ln, err := norm(l)
					if err != nil {
						return err
					}
					aliases[n] = append(aliases[n], ln)
				}
			}
			p.Aliases = aliases
		}
	}
	for i := range s.Transfers {
		t := &s.Transfers[i]
		n, err := norm(t.Station)
		if err != nil {
			return err
		}
		t.Station = n
		t.TargetRailway = NormalizeRailwayID(t.TargetRailway)
	}
	if len(s.HubBuffers) > 0 {
		hubs := make(map[string]float64, len(s.HubBuffers))
		for name, minutes := range s.HubBuffers {
			hubs[strings.ToLower(name)] = minutes
		}
		s.HubBuffers = hubs
	}
	return nil
}

// Coordinate returns the known position of a station.
func (s *Snapshot) Coordinate(id StationID) (Coordinate, bool) {
	if s == nil || s.Coordinates == nil {
		return Coordinate{}, false
	}
	c, ok := s.Coordinates[id]
	return c, ok
}

// StationCount returns the number of distinct stations referenced by railways
// and rapid patterns.
func (s *Snapshot) StationCount() int {
	seen := map[StationID]struct{}{}
	for _, r := range s.Railways {
		for _, st := range r.Stations {
			seen[st.ID] = struct{}{}
		}
	}
	for _, p := range s.Rapid {
		for _, st := range p.Stops {
			seen[st] = struct{}{}
		}
	}
	return len(seen)
}
