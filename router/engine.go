package router

import (
	"context"
	"fmt"
	"sync"

	"github.com/losangeles1156/lutagu-mvp-sub001/advisory"
	"github.com/losangeles1156/lutagu-mvp-sub001/disruption"
	"github.com/losangeles1156/lutagu-mvp-sub001/itinerary"
	"github.com/losangeles1156/lutagu-mvp-sub001/topology"
	"github.com/losangeles1156/lutagu-mvp-sub001/traffic"
)

// Query is one ranking request.
type Query struct {
	Origins      []string
	Destinations []string
	// MaxHops bounds every search branch. 0 uses Tuning.DefaultMaxHops;
	// values below Tuning.MinMaxHops are raised to it.
	MaxHops int
	Locale  string
	Traffic []traffic.Condition
	// Strategies restricts which searches run. Empty runs all of them.
	Strategies []Strategy
}

// Option configures an Engine.
type Option func(*Engine)

// WithTuning replaces the default tuning. Zero walk speed, per-edge minutes,
// tables and hop or label limits fall back to defaults; any other zero field
// is used as given, so start from DefaultTuning to override a single value.
func WithTuning(t Tuning) Option {
	return func(e *Engine) { e.tuning = t.withDefaults() }
}

// Engine owns the compiled graph of one snapshot. It is safe for concurrent
// use; the snapshot must not be mutated after NewEngine.
type Engine struct {
	snap     *topology.Snapshot
	graph    *Graph
	tuning   Tuning
	enricher *advisory.Enricher
}

// NewEngine builds the graph of snap once.
func NewEngine(snap *topology.Snapshot, opts ...Option) *Engine {
	e := &Engine{snap: snap, tuning: DefaultTuning()}
	for _, opt := range opts {
		opt(e)
	}
	e.graph = BuildGraph(snap)
	e.enricher = advisory.NewEnricher(snap, e.tuning.DefaultTransferMeters)
	return e
}

// Graph returns the compiled graph.
func (e *Engine) Graph() *Graph { return e.graph }

// Snapshot returns the snapshot the engine was built from.
func (e *Engine) Snapshot() *topology.Snapshot { return e.snap }

// Tuning returns the effective tuning.
func (e *Engine) Tuning() Tuning { return e.tuning }

// SnapshotID returns the snapshot id, or "" for a nil snapshot.
func (e *Engine) SnapshotID() string {
	if e.snap == nil {
		return ""
	}
	return e.snap.ID
}

// RankRoutes returns the ranked routes for q. Unreachable destinations, an
// empty topology, a fully suspended network and same-station queries yield an
// empty slice and a nil error. A query is same-station when any origin shares
// a station group with any destination, even if other pairs are far apart:
// the traveler is already at a destination. Invalid station ids yield a
// *topology.StationIDError.
func (e *Engine) RankRoutes(ctx context.Context, q Query) ([]itinerary.RouteOption, error) {
	origins, err := topology.NormalizeStationIDs(q.Origins)
	if err != nil {
		return nil, fmt.Errorf("origins: %w", err)
	}
	dests, err := topology.NormalizeStationIDs(q.Destinations)
	if err != nil {
		return nil, fmt.Errorf("destinations: %w", err)
	}
	if len(origins) == 0 {
		return nil, ErrNoOrigins
	}
	if len(dests) == 0 {
		return nil, ErrNoDestinations
	}
	if e.degenerate(origins, dests) {
		return []itinerary.RouteOption{}, nil
	}

	strategies := q.Strategies
	if len(strategies) == 0 {
		strategies = AllStrategies()
	}
	short := false
	if km, ok := tripDistanceKM(e.graph, origins, dests); ok {
		short = km < e.tuning.ShortTripKm
	}
	sq := &searchQuery{
		origins:      origins,
		destinations: dests,
		destSet:      make(map[topology.StationID]bool, len(dests)),
		maxHops:      e.tuning.maxHops(q.MaxHops),
		model:        newCostModel(e.graph, e.tuning, short, q.Traffic),
	}
	for _, d := range dests {
		sq.destSet[d] = true
	}

	candidates, err := e.searchAll(ctx, sq, strategies)
	if err != nil {
		return nil, err
	}

	m := &materializer{g: e.graph, t: e.tuning, loc: NewLocalizer(q.Locale)}
	routes := make([]itinerary.RouteOption, 0, len(candidates))
	for _, c := range candidates {
		if c != nil {
			routes = append(routes, m.materialize(c))
		}
	}
	routes = dedupe(routes, e.tuning.MaxLabelsPerSignature)
	kept := disruption.Filter(routes, q.Traffic).Kept
	return e.enricher.Enrich(kept, q.Traffic), nil
}

// searchAll runs one search per strategy concurrently over the shared graph.
// Results are indexed by strategy position so the merge order is fixed.
func (e *Engine) searchAll(ctx context.Context, sq *searchQuery, strategies []Strategy) ([]*candidate, error) {
	results := make([]*candidate, len(strategies))
	errs := make([]error, len(strategies))
	var wg sync.WaitGroup
	for i, s := range strategies {
		wg.Add(1)
		go func(i int, s Strategy) {
			defer wg.Done()
			results[i], errs[i] = search(ctx, e.graph, sq, s)
		}(i, s)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// degenerate reports whether some origin is the destination itself or shares
// its station group.
func (e *Engine) degenerate(origins, dests []topology.StationID) bool {
	for _, o := range origins {
		for _, d := range dests {
			if e.graph.SameGroup(o, d) {
				return true
			}
		}
	}
	return false
}

// RankRoutes builds a one-off engine for snap and ranks q. Callers issuing
// repeated queries should hold an Engine instead.
func RankRoutes(ctx context.Context, snap *topology.Snapshot, q Query) ([]itinerary.RouteOption, error) {
	return NewEngine(snap).RankRoutes(ctx, q)
}
