package topology

import (
	"fmt"
	"log"
	"sort"
	"strings"
)

// Warning type constants
const (
	WarningNoStationTitle          = "no_station_title"
	WarningNoCoordinates           = "no_coordinates"
	WarningShortRailway            = "short_railway"
	WarningUnknownTransferStation  = "unknown_transfer_station"
	WarningUnknownAliasStation     = "unknown_alias_station"
	WarningRapidStopUnlinked       = "rapid_stop_unlinked"
	WarningRapidNoTiming           = "rapid_no_timing"
	WarningHubWithoutTransferGroup = "hub_without_transfer_group"
)

// warningInfo holds aggregated information about a specific warning type
type warningInfo struct {
	count    int
	examples []string
}

// WarningAggregator collects data-quality warnings and outputs consolidated summaries
type WarningAggregator struct {
	warnings map[string]*warningInfo
}

// NewWarningAggregator creates a new warning aggregator
func NewWarningAggregator() *WarningAggregator {
	return &WarningAggregator{
		warnings: make(map[string]*warningInfo),
	}
}

// Add records a warning occurrence with an example ID
func (w *WarningAggregator) Add(warningType, exampleID string) {
	if w.warnings[warningType] == nil {
		w.warnings[warningType] = &warningInfo{
			examples: make([]string, 0, 3),
		}
	}

	info := w.warnings[warningType]
	info.count++

	// Store up to 3 examples
	if len(info.examples) < 3 {
		info.examples = append(info.examples, exampleID)
	}
}

// Count returns how many times warningType was recorded.
func (w *WarningAggregator) Count(warningType string) int {
	if info := w.warnings[warningType]; info != nil {
		return info.count
	}
	return 0
}

// Empty reports whether no warnings were recorded.
func (w *WarningAggregator) Empty() bool { return len(w.warnings) == 0 }

// Types returns the recorded warning types in sorted order.
func (w *WarningAggregator) Types() []string {
	out := make([]string, 0, len(w.warnings))
	for t := range w.warnings {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// LogAll outputs all collected warnings in consolidated format
func (w *WarningAggregator) LogAll(snapshotID string) {
	for _, warningType := range w.Types() {
		log.Printf("%s", w.formatWarningMessage(warningType, snapshotID, w.warnings[warningType]))
	}
}

// formatWarningMessage creates a human-readable warning message
func (w *WarningAggregator) formatWarningMessage(warningType, snapshotID string, info *warningInfo) string {
	var description, action string

	switch warningType {
	case WarningNoStationTitle:
		description = "stations with no localized title"
		action = "Labelling steps with the id's trailing segment"
	case WarningNoCoordinates:
		description = "stations with no coordinates"
		action = "Using a zero heuristic for them (plain Dijkstra)"
	case WarningShortRailway:
		description = "railways with fewer than two stations"
		action = "Their stations are kept but offer no ride"
	case WarningUnknownTransferStation:
		description = "transfer metadata for stations absent from every railway"
		action = "Ignoring those entries"
	case WarningUnknownAliasStation:
		description = "alias entries naming unknown stations"
		action = "Linking them anyway; they will be unreachable"
	case WarningRapidStopUnlinked:
		description = "rapid stops with no local station and no alias"
		action = "Riders cannot change to local service there"
	case WarningRapidNoTiming:
		description = "rapid patterns without minutesPerEdge"
		action = "Using the default rapid minutes per edge"
	case WarningHubWithoutTransferGroup:
		description = "hub stations that share a building with no other platform"
		action = "Check the alias table for a missing multi-operator group"
	default:
		description = "unknown issue"
		action = "Continuing with fallback behavior"
	}

	examplesStr := strings.Join(info.examples, ", ")

	return fmt.Sprintf("Snapshot %s has %s (%d occurrences). %s. Examples: %s",
		snapshotID, description, info.count, action, examplesStr)
}

// Validate inspects a normalized snapshot for data-completeness problems. It
// never fails; every finding is recorded in the returned aggregator.
func Validate(snap *Snapshot) *WarningAggregator {
	w := NewWarningAggregator()
	if snap == nil {
		return w
	}

	known := map[StationID]bool{}
	groups := map[string]int{}
	for _, r := range snap.Railways {
		if len(r.Stations) < 2 {
			w.Add(WarningShortRailway, r.ID)
		}
		for _, st := range r.Stations {
			if known[st.ID] {
				continue
			}
			known[st.ID] = true
			groups[st.ID.BaseName()]++
			if len(st.Title) == 0 {
				w.Add(WarningNoStationTitle, string(st.ID))
			}
			if _, ok := snap.Coordinate(st.ID); !ok {
				w.Add(WarningNoCoordinates, string(st.ID))
			}
		}
	}

	aliased := map[StationID]bool{}
	for _, group := range snap.Aliases {
		for _, id := range group {
			aliased[id] = true
			if !known[id] {
				w.Add(WarningUnknownAliasStation, string(id))
			}
		}
	}

	for _, p := range snap.Rapid {
		if p.MinutesPerEdge <= 0 {
			w.Add(WarningRapidNoTiming, p.RailwayID)
		}
		for _, stop := range p.Stops {
			if !known[stop] && len(p.Aliases[stop]) == 0 {
				w.Add(WarningRapidStopUnlinked, string(stop))
			}
		}
	}

	for _, t := range snap.Transfers {
		if !known[t.Station] {
			w.Add(WarningUnknownTransferStation, string(t.Station))
		}
	}

	hubs := make([]string, 0, len(snap.HubBuffers))
	for name := range snap.HubBuffers {
		hubs = append(hubs, name)
	}
	sort.Strings(hubs)
	for _, name := range hubs {
		if groups[name] == 1 {
			isolated := true
			for id := range aliased {
				if id.BaseName() == name {
					isolated = false
					break
				}
			}
			if isolated {
				w.Add(WarningHubWithoutTransferGroup, name)
			}
		}
	}
	return w
}
