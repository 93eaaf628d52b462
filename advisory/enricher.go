package advisory

import (
	"math"
	"strings"

	"github.com/losangeles1156/lutagu-mvp-sub001/disruption"
	"github.com/losangeles1156/lutagu-mvp-sub001/itinerary"
	"github.com/losangeles1156/lutagu-mvp-sub001/topology"
	"github.com/losangeles1156/lutagu-mvp-sub001/traffic"
)

// Risk levels reported in Advisory.RiskLevel.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

const (
	defaultTransferMeters = 120.0
	mediumRiskThreshold   = 15.0
	highRiskThreshold     = 35.0
)

// base per-leg delay probability by service class
var legRisk = map[topology.ServiceClass]float64{
	topology.ClassMetro:   0.03,
	topology.ClassJR:      0.06,
	topology.ClassRapid:   0.08,
	topology.ClassPrivate: 0.05,
}

// connection risk added to every leg after the first
const connectionRisk = 0.02

type transferKey struct {
	station topology.StationID
	railway string
}

// Enricher scores routes against one topology snapshot's transfer metadata.
type Enricher struct {
	transfers      map[transferKey]topology.TransferInfo
	rapid          map[string]bool
	transferMeters float64
}

// NewEnricher indexes the transfer metadata of snap. defaultMeters is the walk
// assumed for transfers without metadata; <= 0 uses 120 m.
func NewEnricher(snap *topology.Snapshot, defaultMeters float64) *Enricher {
	if defaultMeters <= 0 {
		defaultMeters = defaultTransferMeters
	}
	e := &Enricher{
		transfers:      map[transferKey]topology.TransferInfo{},
		rapid:          map[string]bool{},
		transferMeters: defaultMeters,
	}
	if snap == nil {
		return e
	}
	for _, p := range snap.Rapid {
		e.rapid[p.RailwayID] = true
	}
	for _, t := range snap.Transfers {
		k := transferKey{station: t.Station, railway: t.TargetRailway}
		if _, ok := e.transfers[k]; !ok {
			e.transfers[k] = t
		}
	}
	return e
}

func (e *Enricher) lookup(step itinerary.RouteStep) (topology.TransferInfo, bool) {
	st := topology.StationID(step.StationID)
	if t, ok := e.transfers[transferKey{st, step.RailwayID}]; ok {
		return t, true
	}
	if t, ok := e.transfers[transferKey{st, ""}]; ok {
		return t, true
	}
	if step.ToStationID != "" {
		if t, ok := e.transfers[transferKey{topology.StationID(step.ToStationID), ""}]; ok {
			return t, true
		}
	}
	return topology.TransferInfo{}, false
}

// Enrich returns copies of routes with Advisory set. Input order is kept.
func (e *Enricher) Enrich(routes []itinerary.RouteOption, conds []traffic.Condition) []itinerary.RouteOption {
	out := make([]itinerary.RouteOption, len(routes))
	for i, r := range routes {
		a := itinerary.Advisory{
			TransferPainIndex: e.TransferPainIndex(r),
			CascadeDelayRisk:  cascadeDelayRisk(r, conds, e.legClass),
		}
		a.RiskLevel = riskLevel(a.CascadeDelayRisk)
		r.Advisory = &a
		out[i] = r
	}
	return out
}

// TransferPainIndex averages the pain of the route's transfer steps. Steps with
// a base pain index in the metadata use it directly. Routes without transfers
// score 0.
func (e *Enricher) TransferPainIndex(r itinerary.RouteOption) float64 {
	steps := r.TransferSteps()
	if len(steps) == 0 {
		return 0
	}
	var sum float64
	for _, s := range steps {
		info, ok := e.lookup(s)
		if !ok {
			meters := s.WalkMeters
			if meters <= 0 {
				meters = e.transferMeters
			}
			info = topology.TransferInfo{DistanceMeters: meters}
		}
		sum += painScore(info, s.CrossOperator)
	}
	return round1(sum / float64(len(steps)))
}

func painScore(t topology.TransferInfo, crossOperator bool) float64 {
	if t.BasePainIndex > 0 {
		return clamp(t.BasePainIndex, 0, 100)
	}
	score := math.Min(t.DistanceMeters/500, 1) * 35
	floors := math.Abs(float64(t.FloorDifference))
	score += math.Min(floors/4, 1) * 20
	switch strings.ToLower(t.VerticalAccess) {
	case "stairs":
		score += 10
	case "escalator":
		score += 5
	case "elevator":
		score += 3
	}
	score += (1 - t.Signage()) * 15
	score += clamp(t.CrowdLevel, 0, 1) * 15
	if t.OutOfStation {
		score += 10
	}
	if crossOperator {
		score += 5
	}
	score += math.Min(float64(t.Turns)/6, 1) * 5
	return clamp(score, 0, 100)
}

// legClass resolves a ride's service class. Rides on a rapid pattern of the
// snapshot are ClassRapid whatever their operator.
func (e *Enricher) legClass(leg itinerary.RouteStep) topology.ServiceClass {
	if e.rapid[leg.RailwayID] {
		return topology.ClassRapid
	}
	return operatorClass(leg)
}

func operatorClass(leg itinerary.RouteStep) topology.ServiceClass {
	return topology.ClassOf(leg.Operator)
}

// CascadeDelayRisk combines per-leg delay probabilities as
// 1 - prod(1 - p_i), scaled to 0..100. Legs on a delayed railway get a higher
// probability. Legs are classed by operator; Enrich also knows rapid patterns.
func CascadeDelayRisk(r itinerary.RouteOption, conds []traffic.Condition) float64 {
	return cascadeDelayRisk(r, conds, operatorClass)
}

func cascadeDelayRisk(r itinerary.RouteOption, conds []traffic.Condition, classOf func(itinerary.RouteStep) topology.ServiceClass) float64 {
	rides := r.Rides()
	if len(rides) == 0 {
		return 0
	}
	onTime := 1.0
	for i, leg := range rides {
		p := legRisk[classOf(leg)]
		if i > 0 {
			p += connectionRisk
		}
		p += delayRisk(leg.RailwayID, conds)
		onTime *= 1 - clamp(p, 0, 0.95)
	}
	return round1((1 - onTime) * 100)
}

func delayRisk(railwayID string, conds []traffic.Condition) float64 {
	tok := disruption.NormalizeToken(railwayID)
	var worst float64
	for _, c := range conds {
		if !c.Delayed() || !disruption.TokensMatch(tok, disruption.NormalizeToken(c.RailwayID)) {
			continue
		}
		p := 0.1 + math.Min(float64(c.DelayMinutes)/30, 1)*0.4
		if p > worst {
			worst = p
		}
	}
	return worst
}

func riskLevel(cdr float64) string {
	switch {
	case cdr >= highRiskThreshold:
		return RiskHigh
	case cdr >= mediumRiskThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
