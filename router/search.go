package router

import (
	"container/heap"
	"context"

	"github.com/losangeles1156/lutagu-mvp-sub001/topology"
)

// stateKey identifies a search state. Railway is the railway of the edge that
// reached Station ("" at an origin, TransferRailway after a walk); Operator is
// the operator of the last ride.
type stateKey struct {
	Station  topology.StationID
	Railway  string
	Operator string
}

// label is one node of the search tree.
type label struct {
	state  stateKey
	costs  RouteCosts
	g      float64
	f      float64
	rides  int
	seq    int
	parent *label

	// edge that produced this label and its priced parts
	edge       Edge
	minutes    float64
	walkMeters float64
	cross      bool
	delay      int
}

// labelPQ is a min-heap of labels ordered by f, then g, then hops, then
// insertion order, which makes pops deterministic. Stale entries are skipped
// when popped.
type labelPQ []*label

func (pq labelPQ) Len() int { return len(pq) }

func (pq labelPQ) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.g != b.g {
		return a.g < b.g
	}
	if a.costs.Hops != b.costs.Hops {
		return a.costs.Hops < b.costs.Hops
	}
	return a.seq < b.seq
}

func (pq labelPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *labelPQ) Push(x interface{}) { *pq = append(*pq, x.(*label)) }

func (pq *labelPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}

// searchQuery is the per-query input shared read-only by all strategies.
type searchQuery struct {
	origins      []topology.StationID
	destinations []topology.StationID
	destSet      map[topology.StationID]bool
	maxHops      int
	model        *costModel
}

// candidate is the winning path of one strategy.
type candidate struct {
	strategy Strategy
	stations []topology.StationID
	// legs[i] is the label reached by hop i; its edge leads stations[i] -> stations[i+1]
	legs  []*label
	costs RouteCosts
	score float64
}

func (c *candidate) railways() []string {
	out := make([]string, len(c.legs))
	for i, l := range c.legs {
		out[i] = l.edge.Railway
	}
	return out
}

// relax prices edge e out of cur. ok is false when the edge is pruned.
func (m *costModel) relax(cur *label, e Edge) (*label, bool) {
	next := &label{
		parent: cur,
		costs:  cur.costs,
		rides:  cur.rides,
		edge:   e,
	}
	next.costs.Hops++

	if e.Kind == RailEdge {
		if m.blocked[e.Railway] {
			return nil, false
		}
		ride := m.rideMinutes(e)
		minutes := ride
		if cur.state.Railway != e.Railway {
			minutes += m.boardingMinutes(e)
			next.delay = m.delays[e.Railway]
			if cur.rides > 0 {
				next.costs.Transfers++
				next.costs.RailwaySwitches++
				if cur.state.Operator != e.Operator {
					next.costs.OperatorSwitches++
				}
			}
			if cur.state.Operator != e.Operator {
				next.costs.Fare += float64(m.t.fareTable(e.Operator).BaseFare())
			}
			next.rides++
		}
		next.costs.Time += minutes
		next.costs.Crowding += m.crowding(e, ride)
		next.minutes = minutes
		next.state = stateKey{Station: e.To, Railway: e.Railway, Operator: e.Operator}
		return next, true
	}

	w := m.transferWalk(cur.state.Station, e)
	next.costs.Time += w.minutes
	next.costs.TransferDistance += w.meters
	next.costs.Crowding += w.crowd
	next.minutes = w.minutes
	next.walkMeters = w.meters
	next.cross = w.cross
	next.state = stateKey{Station: e.To, Railway: TransferRailway, Operator: cur.state.Operator}
	return next, true
}

// search runs one A* for strategy s. It returns nil when no destination is
// reachable within maxHops, and ctx.Err() if the context ends first.
func search(ctx context.Context, g *Graph, q *searchQuery, s Strategy) (*candidate, error) {
	h := newHeuristic(g, q.destinations, q.model.t.HeuristicMinutesPerKm)
	best := map[stateKey]float64{}
	pq := &labelPQ{}
	seq := 0

	for _, o := range q.origins {
		if !g.HasStation(o) {
			continue
		}
		st := stateKey{Station: o}
		if _, ok := best[st]; ok {
			continue
		}
		best[st] = 0
		heap.Push(pq, &label{state: st, f: h.estimate(o), seq: seq})
		seq++
	}

	interval := q.model.t.CancelCheckInterval
	pops := 0
	for pq.Len() > 0 {
		pops++
		if pops%interval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		cur := heap.Pop(pq).(*label)
		if cur.g > best[cur.state] {
			continue
		}
		// zero-ride arrivals are walks inside one station group, not routes
		if q.destSet[cur.state.Station] && cur.rides > 0 {
			return newCandidate(cur, s), nil
		}
		if cur.costs.Hops >= q.maxHops {
			continue
		}

		for _, e := range g.Neighbors(cur.state.Station) {
			next, ok := q.model.relax(cur, e)
			if !ok {
				continue
			}
			next.g = s.Score(next.costs)
			if old, seen := best[next.state]; seen && old <= next.g {
				continue
			}
			best[next.state] = next.g
			next.f = next.g + h.estimate(e.To)
			next.seq = seq
			seq++
			heap.Push(pq, next)
		}
	}
	return nil, ctx.Err()
}

func newCandidate(end *label, s Strategy) *candidate {
	var chain []*label
	for l := end; l != nil; l = l.parent {
		chain = append(chain, l)
	}
	c := &candidate{
		strategy: s,
		stations: make([]topology.StationID, len(chain)),
		legs:     make([]*label, 0, len(chain)-1),
		costs:    end.costs,
		score:    end.g,
	}
	for i := range chain {
		l := chain[len(chain)-1-i]
		c.stations[i] = l.state.Station
		if i > 0 {
			c.legs = append(c.legs, l)
		}
	}
	return c
}
