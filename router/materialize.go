package router

import (
	"strings"

	"github.com/losangeles1156/lutagu-mvp-sub001/itinerary"
	"github.com/losangeles1156/lutagu-mvp-sub001/topology"
	"github.com/losangeles1156/lutagu-mvp-sub001/utils"
)

// materializer turns candidates into localized route options.
type materializer struct {
	g   *Graph
	t   Tuning
	loc *Localizer
}

func (m *materializer) stationTitle(id topology.StationID) string {
	return m.loc.Title(m.g.stationTitles[id], string(id))
}

func (m *materializer) railwayTitle(r string) string {
	return m.loc.Title(m.g.railwayTitles[r], r)
}

// signature identifies the physical path: station sequence and edge railways.
func signature(stations []topology.StationID, railways []string) string {
	ids := make([]string, len(stations))
	for i, s := range stations {
		ids[i] = string(s)
	}
	return strings.Join(ids, ">") + "|" + strings.Join(railways, ">")
}

// materialize collapses consecutive edges of one railway into a single step.
// Walks become transfer steps, and a direct change between two rides gets an
// in-place transfer step. Leading and trailing walks are rendered as transfer
// steps but are not counted in Transfers.
func (m *materializer) materialize(c *candidate) itinerary.RouteOption {
	railways := c.railways()
	n := len(c.legs)
	origin := c.stations[0]
	steps := []itinerary.RouteStep{{
		Kind:         itinerary.StepOrigin,
		Text:         m.loc.departText(m.stationTitle(origin)),
		StationID:    string(origin),
		StationTitle: m.stationTitle(origin),
	}}

	var (
		rideIDs  []string
		segments []fareSegment
		prevRide string
		prevOp   string
		prevRail bool
	)
	for i := 0; i < n; {
		r := railways[i]
		j := i
		var minutes float64
		for j < n && railways[j] == r {
			minutes += c.legs[j].minutes
			j++
		}
		from, to := c.stations[i], c.stations[j]

		if r == TransferRailway {
			var meters float64
			cross := false
			for _, l := range c.legs[i:j] {
				meters += l.walkMeters
				cross = cross || l.cross
			}
			next := ""
			if j < n {
				next = railways[j]
			}
			step := itinerary.RouteStep{
				Kind:           itinerary.StepTransfer,
				StationID:      string(from),
				StationTitle:   m.stationTitle(from),
				ToStationID:    string(to),
				ToStationTitle: m.stationTitle(to),
				RailwayID:      next,
				FromRailwayID:  prevRide,
				Minutes:        utils.RoundMinutes(minutes),
				WalkMeters:     meters,
				CrossOperator:  cross,
			}
			if next != "" {
				step.RailwayTitle = m.railwayTitle(next)
				step.Text = m.loc.transferText(step.StationTitle, step.RailwayTitle)
			} else {
				step.Text = m.loc.walkText(step.StationTitle, step.ToStationTitle)
			}
			steps = append(steps, step)
			prevRail = false
			i = j
			continue
		}

		op := m.g.RailwayOperator(r)
		if prevRail {
			steps = append(steps, itinerary.RouteStep{
				Kind:          itinerary.StepTransfer,
				Text:          m.loc.transferText(m.stationTitle(from), m.railwayTitle(r)),
				StationID:     string(from),
				StationTitle:  m.stationTitle(from),
				ToStationID:   string(from),
				RailwayID:     r,
				RailwayTitle:  m.railwayTitle(r),
				FromRailwayID: prevRide,
				CrossOperator: !strings.EqualFold(prevOp, op),
			})
		}
		title := m.railwayTitle(r)
		steps = append(steps, itinerary.RouteStep{
			Kind:           itinerary.StepTrain,
			Text:           m.loc.rideText(title, m.stationTitle(to), j-i),
			StationID:      string(from),
			StationTitle:   m.stationTitle(from),
			ToStationID:    string(to),
			ToStationTitle: m.stationTitle(to),
			RailwayID:      r,
			RailwayTitle:   title,
			Operator:       op,
			Stops:          j - i,
			Minutes:        utils.RoundMinutes(minutes),
			DelayMinutes:   c.legs[i].delay,
		})

		if k := len(segments); k > 0 && strings.EqualFold(segments[k-1].operator, op) {
			segments[k-1].hops += j - i
		} else {
			segments = append(segments, fareSegment{operator: op, hops: j - i})
		}
		if len(rideIDs) == 0 || rideIDs[len(rideIDs)-1] != r {
			rideIDs = append(rideIDs, r)
		}
		prevRide, prevOp, prevRail = r, op, true
		i = j
	}

	dest := c.stations[len(c.stations)-1]
	steps = append(steps, itinerary.RouteStep{
		Kind:         itinerary.StepDestination,
		Text:         m.loc.arriveText(m.stationTitle(dest)),
		StationID:    string(dest),
		StationTitle: m.stationTitle(dest),
	})

	fare := m.t.estimateFare(segments)
	costs := c.costs.export()
	costs.Fare = float64(fare)
	return itinerary.RouteOption{
		Label:           m.loc.StrategyLabel(c.strategy),
		Strategy:        c.strategy.String(),
		Steps:           steps,
		Fare:            fare,
		DurationMinutes: utils.RoundMinutes(c.costs.Time),
		Transfers:       c.costs.Transfers,
		RailwayIDs:      rideIDs,
		Signature:       signature(c.stations, railways),
		Score:           c.score,
		Costs:           costs,
	}
}

// dedupe keeps at most maxLabels entries per physical path, in input order.
func dedupe(routes []itinerary.RouteOption, maxLabels int) []itinerary.RouteOption {
	counts := map[string]int{}
	out := make([]itinerary.RouteOption, 0, len(routes))
	for _, r := range routes {
		if counts[r.Signature] >= maxLabels {
			continue
		}
		counts[r.Signature]++
		out = append(out, r)
	}
	return out
}
