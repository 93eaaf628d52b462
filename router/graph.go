package router

import (
	"sort"

	"github.com/losangeles1156/lutagu-mvp-sub001/topology"
)

// TransferRailway is the railway id of walking edges between platforms.
const TransferRailway = "transfer"

// EdgeKind distinguishes rides from walks.
type EdgeKind uint8

const (
	RailEdge EdgeKind = iota
	// TransferEdge links stations sharing a base name or an alias group.
	TransferEdge
	// AliasEdge links a rapid-service stop to its local-network station.
	AliasEdge
)

// Edge is one directed adjacency entry.
type Edge struct {
	To       topology.StationID
	Railway  string
	Operator string
	Class    topology.ServiceClass
	// Minutes is the pattern time per edge for rapid services; 0 means the
	// class default applies.
	Minutes float64
	Kind    EdgeKind
}

type edgeKey struct {
	from, to topology.StationID
	railway  string
}

type transferKey struct {
	station topology.StationID
	railway string
}

// Graph is the compiled, read-only adjacency structure of one snapshot. It is
// safe for concurrent use once built.
type Graph struct {
	adj              map[topology.StationID][]Edge
	stationTitles    map[topology.StationID]topology.LocalizedText
	stationRailways  map[topology.StationID][]string
	railwayTitles    map[string]topology.LocalizedText
	railwayOperators map[string]string
	groups           map[topology.StationID][]int
	transfers        map[transferKey]topology.TransferInfo
	hubBuffers       map[string]float64
	coords           map[topology.StationID]topology.Coordinate
	railways         []string
	edges            int
}

// BuildGraph compiles snap into a Graph. A nil or empty snapshot yields an
// empty graph.
func BuildGraph(snap *topology.Snapshot) *Graph {
	b := &graphBuilder{
		g: &Graph{
			adj:              map[topology.StationID][]Edge{},
			stationTitles:    map[topology.StationID]topology.LocalizedText{},
			stationRailways:  map[topology.StationID][]string{},
			railwayTitles:    map[string]topology.LocalizedText{},
			railwayOperators: map[string]string{},
			groups:           map[topology.StationID][]int{},
			transfers:        map[transferKey]topology.TransferInfo{},
			hubBuffers:       map[string]float64{},
			coords:           map[topology.StationID]topology.Coordinate{},
		},
		seen: map[edgeKey]bool{},
	}
	if snap == nil {
		return b.g
	}
	b.addRailways(snap.Railways)
	b.addRapid(snap.Rapid)
	b.addTransferGroups(snap)
	b.finish(snap)
	return b.g
}

type graphBuilder struct {
	g    *Graph
	seen map[edgeKey]bool
	// group members in first-seen order
	groups [][]topology.StationID
}

func (b *graphBuilder) station(id topology.StationID, title topology.LocalizedText, railway string) {
	if _, ok := b.g.adj[id]; !ok {
		b.g.adj[id] = nil
	}
	if len(title) > 0 && len(b.g.stationTitles[id]) == 0 {
		b.g.stationTitles[id] = title
	}
	if railway == "" {
		return
	}
	for _, r := range b.g.stationRailways[id] {
		if r == railway {
			return
		}
	}
	b.g.stationRailways[id] = append(b.g.stationRailways[id], railway)
}

// link adds the edge in both directions unless it already exists.
func (b *graphBuilder) link(from, to topology.StationID, e Edge) {
	if from == to {
		return
	}
	for _, dir := range [2][2]topology.StationID{{from, to}, {to, from}} {
		k := edgeKey{from: dir[0], to: dir[1], railway: e.Railway}
		if b.seen[k] {
			continue
		}
		b.seen[k] = true
		e.To = dir[1]
		b.g.adj[dir[0]] = append(b.g.adj[dir[0]], e)
		b.g.edges++
	}
}

func (b *graphBuilder) addRailways(lines []topology.RailwayTopology) {
	for _, r := range lines {
		op := r.OperatorKey()
		b.g.railwayTitles[r.ID] = r.Title
		b.g.railwayOperators[r.ID] = op
		class := topology.ClassOf(op)
		for i, st := range r.Stations {
			b.station(st.ID, st.Title, r.ID)
			if i == 0 {
				continue
			}
			b.link(r.Stations[i-1].ID, st.ID, Edge{
				Railway:  r.ID,
				Operator: op,
				Class:    class,
				Kind:     RailEdge,
			})
		}
	}
}

func (b *graphBuilder) addRapid(patterns []topology.RapidPattern) {
	for _, p := range patterns {
		op := p.OperatorKey()
		if _, ok := b.g.railwayTitles[p.RailwayID]; !ok || len(p.Title) > 0 {
			b.g.railwayTitles[p.RailwayID] = p.Title
		}
		b.g.railwayOperators[p.RailwayID] = op
		for i, stop := range p.Stops {
			b.station(stop, nil, p.RailwayID)
			if i > 0 {
				b.link(p.Stops[i-1], stop, Edge{
					Railway:  p.RailwayID,
					Operator: op,
					Class:    topology.ClassRapid,
					Minutes:  p.MinutesPerEdge,
					Kind:     RailEdge,
				})
			}
		}
		stops := make([]topology.StationID, 0, len(p.Aliases))
		for stop := range p.Aliases {
			stops = append(stops, stop)
		}
		sort.Slice(stops, func(i, j int) bool { return stops[i] < stops[j] })
		for _, stop := range stops {
			group := []topology.StationID{stop}
			for _, local := range p.Aliases[stop] {
				b.station(local, nil, "")
				b.link(stop, local, Edge{Railway: TransferRailway, Kind: AliasEdge})
				group = append(group, local)
			}
			b.groups = append(b.groups, group)
		}
	}
}

func (b *graphBuilder) addTransferGroups(snap *topology.Snapshot) {
	byName := map[string][]topology.StationID{}
	for id := range b.g.adj {
		name := id.BaseName()
		byName[name] = append(byName[name], id)
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		members := byName[name]
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
		b.groups = append(b.groups, members)
	}
	for _, alias := range snap.Aliases {
		members := make([]topology.StationID, 0, len(alias))
		for _, id := range alias {
			b.station(id, nil, "")
			members = append(members, id)
		}
		b.groups = append(b.groups, members)
	}

	for gid, members := range b.groups {
		for _, id := range members {
			b.g.groups[id] = append(b.g.groups[id], gid)
		}
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				b.link(members[i], members[j], Edge{Railway: TransferRailway, Kind: TransferEdge})
			}
		}
	}
}

func (b *graphBuilder) finish(snap *topology.Snapshot) {
	for _, t := range snap.Transfers {
		k := transferKey{station: t.Station, railway: t.TargetRailway}
		if _, ok := b.g.transfers[k]; !ok {
			b.g.transfers[k] = t
		}
	}
	for name, minutes := range snap.HubBuffers {
		b.g.hubBuffers[name] = minutes
	}
	for id, c := range snap.Coordinates {
		b.g.coords[id] = c
	}
	for id, edges := range b.g.adj {
		sort.SliceStable(edges, func(i, j int) bool {
			if edges[i].To != edges[j].To {
				return edges[i].To < edges[j].To
			}
			if edges[i].Railway != edges[j].Railway {
				return edges[i].Railway < edges[j].Railway
			}
			return edges[i].Kind < edges[j].Kind
		})
		b.g.adj[id] = edges
	}
	for r := range b.g.railwayOperators {
		b.g.railways = append(b.g.railways, r)
	}
	sort.Strings(b.g.railways)
}

// HasStation reports whether id appears in any railway, rapid pattern or alias group.
func (g *Graph) HasStation(id topology.StationID) bool {
	_, ok := g.adj[id]
	return ok
}

// Neighbors returns the outgoing edges of id in deterministic order. The slice
// must not be modified.
func (g *Graph) Neighbors(id topology.StationID) []Edge { return g.adj[id] }

// StationCount returns the number of stations in the graph.
func (g *Graph) StationCount() int { return len(g.adj) }

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Railways returns every railway id (local and rapid), sorted.
func (g *Graph) Railways() []string { return g.railways }

// RailwayOperator returns the operator key of a railway.
func (g *Graph) RailwayOperator(railway string) string { return g.railwayOperators[railway] }

// SameGroup reports whether a and b are the same station or share a base-name
// or alias group.
func (g *Graph) SameGroup(a, b topology.StationID) bool {
	if a == b {
		return true
	}
	for _, ga := range g.groups[a] {
		for _, gb := range g.groups[b] {
			if ga == gb {
				return true
			}
		}
	}
	return false
}

// transferInfo finds metadata for walking from `from` to the platforms of `to`.
func (g *Graph) transferInfo(from, to topology.StationID) (topology.TransferInfo, bool) {
	for _, r := range g.stationRailways[to] {
		if t, ok := g.transfers[transferKey{station: from, railway: r}]; ok {
			return t, true
		}
	}
	t, ok := g.transfers[transferKey{station: from}]
	return t, ok
}

func (g *Graph) coordinate(id topology.StationID) (topology.Coordinate, bool) {
	c, ok := g.coords[id]
	return c, ok
}
