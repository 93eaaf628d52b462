package topology

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	stationPrefix    = "odpt.Station:"
	altStationPrefix = "odpt:Station:"
	railwayPrefix    = "odpt.Railway:"
	altRailwayPrefix = "odpt:Railway:"
	operatorPrefix   = "odpt.Operator:"
)

// ErrInvalidStationID is returned when a station identifier cannot be normalized.
var ErrInvalidStationID = errors.New("topology: invalid station id")

// StationID is the canonical identifier of a physical platform group,
// e.g. "odpt.Station:JR-East.Yamanote.Tokyo".
type StationID string

// StationIDError reports which raw identifier failed normalization.
type StationIDError struct {
	Raw    string
	Reason string
}

func (e *StationIDError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrInvalidStationID.Error(), e.Raw, e.Reason)
}

func (e *StationIDError) Unwrap() error { return ErrInvalidStationID }

// NormalizeStationID collapses the two odpt surface syntaxes ("odpt.Station:" and
// "odpt:Station:") into the canonical dotted form. Identifiers from other schemes
// are accepted as long as they are non-empty and free of whitespace.
func NormalizeStationID(raw string) (StationID, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", &StationIDError{Raw: raw, Reason: "empty"}
	}
	if strings.HasPrefix(s, altStationPrefix) {
		s = stationPrefix + strings.TrimPrefix(s, altStationPrefix)
	}
	if s == stationPrefix {
		return "", &StationIDError{Raw: raw, Reason: "missing station path"}
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return "", &StationIDError{Raw: raw, Reason: "contains whitespace or control characters"}
		}
	}
	return StationID(s), nil
}

// NormalizeStationIDs normalizes a batch, returning the first failure.
// Duplicates are removed while keeping the input order.
func NormalizeStationIDs(raw []string) ([]StationID, error) {
	out := make([]StationID, 0, len(raw))
	seen := make(map[StationID]bool, len(raw))
	for _, r := range raw {
		id, err := NormalizeStationID(r)
		if err != nil {
			return nil, err
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}

// NormalizeRailwayID applies the same prefix collapsing to railway identifiers.
func NormalizeRailwayID(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, altRailwayPrefix) {
		s = railwayPrefix + strings.TrimPrefix(s, altRailwayPrefix)
	}
	return s
}

// path returns the part of an odpt id after the type prefix ("JR-East.Yamanote.Tokyo").
func path(id string) string {
	if i := strings.Index(id, ":"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// TrailingSegment returns the last dotted segment of an id, used as the
// fallback display label ("odpt.Station:JR-East.Yamanote.Tokyo" -> "Tokyo").
func TrailingSegment(id string) string {
	p := path(id)
	if i := strings.LastIndex(p, "."); i >= 0 {
		return p[i+1:]
	}
	return p
}

// BaseName is the case-folded trailing segment. Stations sharing a base name are
// treated as one physical transfer group.
func (id StationID) BaseName() string {
	return strings.ToLower(TrailingSegment(string(id)))
}

// OperatorKey extracts the operator segment from an odpt station, railway or
// operator id ("odpt.Railway:TokyoMetro.Ginza" -> "TokyoMetro").
func OperatorKey(id string) string {
	p := path(id)
	if strings.HasPrefix(id, operatorPrefix) {
		return p
	}
	if i := strings.Index(p, "."); i >= 0 {
		return p[:i]
	}
	return p
}

// Operator returns the operator key encoded in the station id.
func (id StationID) Operator() string { return OperatorKey(string(id)) }

func (id StationID) String() string { return string(id) }
