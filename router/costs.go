package router

import (
	"math"
	"strings"

	"github.com/losangeles1156/lutagu-mvp-sub001/disruption"
	"github.com/losangeles1156/lutagu-mvp-sub001/itinerary"
	"github.com/losangeles1156/lutagu-mvp-sub001/topology"
	"github.com/losangeles1156/lutagu-mvp-sub001/traffic"
)

// RouteCosts is the cost vector accumulated along a path. Strategies reduce it
// to a scalar; the vector itself is carried to the output.
type RouteCosts struct {
	Time             float64
	Fare             float64
	Transfers        int
	Hops             int
	RailwaySwitches  int
	OperatorSwitches int
	TransferDistance float64
	Crowding         float64
}

func (c RouteCosts) export() itinerary.Costs {
	return itinerary.Costs{
		Time:             c.Time,
		Fare:             c.Fare,
		Transfers:        c.Transfers,
		Hops:             c.Hops,
		RailwaySwitches:  c.RailwaySwitches,
		OperatorSwitches: c.OperatorSwitches,
		TransferDistance: c.TransferDistance,
		Crowding:         c.Crowding,
	}
}

// costModel prices edges for one query. It is read-only during the search and
// shared by every strategy goroutine.
type costModel struct {
	t       Tuning
	g       *Graph
	short   bool
	blocked map[string]bool
	delays  map[string]int
}

func newCostModel(g *Graph, t Tuning, short bool, conds []traffic.Condition) *costModel {
	m := &costModel{
		t:       t,
		g:       g,
		short:   short,
		blocked: map[string]bool{},
		delays:  map[string]int{},
	}
	bl := disruption.NewBlocklist(conds)
	for _, r := range g.Railways() {
		if bl.Blocks(r) {
			m.blocked[r] = true
			continue
		}
		tok := disruption.NormalizeToken(r)
		for _, c := range conds {
			if !c.Delayed() || c.DelayMinutes <= 0 {
				continue
			}
			if disruption.TokensMatch(tok, disruption.NormalizeToken(c.RailwayID)) && c.DelayMinutes > m.delays[r] {
				m.delays[r] = c.DelayMinutes
			}
		}
	}
	return m
}

// rideMinutes is the in-train time of one rail edge.
func (m *costModel) rideMinutes(e Edge) float64 {
	switch e.Class {
	case topology.ClassRapid:
		if e.Minutes > 0 {
			return e.Minutes
		}
		return m.t.DefaultRapidMinutesPerEdge
	case topology.ClassMetro:
		return m.t.MetroMinutesPerEdge
	case topology.ClassJR:
		return m.t.JRMinutesPerEdge
	default:
		return m.t.PrivateMinutesPerEdge
	}
}

// boardingMinutes is the expected wait plus reported delay when e starts a
// new ride.
func (m *costModel) boardingMinutes(e Edge) float64 {
	wait := m.t.BoardingWaitMinutes
	if e.Class == topology.ClassMetro {
		wait *= m.t.MetroWaitScale
	}
	if m.short {
		wait *= m.t.ShortTripWaitScale
	}
	return wait + float64(m.delays[e.Railway])
}

func (m *costModel) crowding(e Edge, minutes float64) float64 {
	return minutes * m.t.ClassCrowding[e.Class.String()]
}

// walk is the priced result of one transfer edge.
type walk struct {
	minutes float64
	meters  float64
	crowd   float64
	cross   bool
}

// transferWalk prices walking from `from` over e. Alias links use the alias
// distance and carry no hub buffer.
func (m *costModel) transferWalk(from topology.StationID, e Edge) walk {
	w := walk{cross: !strings.EqualFold(from.Operator(), e.To.Operator())}
	info, ok := m.g.transferInfo(from, e.To)
	switch {
	case ok && info.DistanceMeters > 0:
		w.meters = info.DistanceMeters
	case e.Kind == AliasEdge:
		w.meters = m.t.AliasTransferMeters
	default:
		w.meters = m.t.DefaultTransferMeters
	}
	w.minutes = w.meters / m.t.WalkMetersPerMinute
	if w.cross {
		w.minutes += m.t.CrossOperatorMinutes
	}
	if e.Kind != AliasEdge {
		hub := m.g.hubBuffers[from.BaseName()]
		if m.short {
			hub *= m.t.ShortTripHubScale
		}
		w.minutes += hub
	}
	if ok {
		if info.OutOfStation {
			w.minutes += m.t.OutOfStationMinutes
		}
		w.minutes += m.painMinutes(info)
		w.crowd = info.CrowdLevel * m.t.TransferCrowdingWeight
	}
	return w
}

func (m *costModel) painMinutes(info topology.TransferInfo) float64 {
	floors := math.Abs(float64(info.FloorDifference))
	p := floors * m.t.FloorChangeMinutes
	p += floors * m.t.VerticalAccessMinutes[strings.ToLower(info.VerticalAccess)]
	p += float64(info.Turns) * m.t.TurnMinutes
	p += (1 - math.Max(0, math.Min(1, info.Signage()))) * m.t.SignagePenaltyMinutes
	return p
}
