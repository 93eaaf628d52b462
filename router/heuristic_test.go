package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/losangeles1156/lutagu-mvp-sub001/topology"
)

const (
	lineA = "odpt.Railway:JR-East.A"
	lineB = "odpt.Railway:JR-East.B"

	stationAO  = "odpt.Station:JR-East.A.O"
	stationAX  = "odpt.Station:JR-East.A.X"
	stationAD1 = "odpt.Station:JR-East.A.D1"
	stationBD1 = "odpt.Station:JR-East.B.D1"
	stationCD2 = "odpt.Station:JR-East.C.D2"
)

func ref(id string, coords ...float64) topology.StationRef {
	r := topology.StationRef{ID: topology.StationID(id)}
	if len(coords) == 2 {
		lat, lon := coords[0], coords[1]
		r.Lat, r.Lon = &lat, &lon
	}
	return r
}

// mixedCoordinateSnapshot has a short line A whose middle stop lies far north
// and a longer line B, both ending at D1 which has no coordinates. D2 sits on
// an unconnected line at the origin's position.
func mixedCoordinateSnapshot(t *testing.T) *topology.Snapshot {
	t.Helper()
	snap := &topology.Snapshot{
		ID: "mixed",
		Railways: []topology.RailwayTopology{
			{ID: lineA, Stations: []topology.StationRef{
				ref(stationAO, 35, 139),
				ref(stationAX, 36, 139),
				ref(stationAD1),
			}},
			{ID: lineB, Stations: []topology.StationRef{
				ref("odpt.Station:JR-East.B.O", 35, 139),
				ref("odpt.Station:JR-East.B.Y1"),
				ref("odpt.Station:JR-East.B.Y2"),
				ref("odpt.Station:JR-East.B.Y3"),
				ref(stationBD1),
			}},
			{ID: "odpt.Railway:JR-East.C", Stations: []topology.StationRef{
				ref(stationCD2, 35, 139),
				ref("odpt.Station:JR-East.C.Z"),
			}},
		},
	}
	require.NoError(t, snap.Normalize())
	return snap
}

func TestHeuristic_MissingDestinationCoordinateDisablesEstimate(t *testing.T) {
	g := BuildGraph(mixedCoordinateSnapshot(t))
	perKm := DefaultTuning().HeuristicMinutesPerKm

	located := newHeuristic(g, []topology.StationID{stationCD2}, perKm)
	assert.Greater(t, located.estimate(stationAX), 50.0)

	mixed := newHeuristic(g, []topology.StationID{stationAD1, stationCD2}, perKm)
	assert.Zero(t, mixed.estimate(stationAX))
	assert.Zero(t, mixed.estimate(stationAO))
}

func TestTripDistance_RequiresEveryEndpointLocated(t *testing.T) {
	g := BuildGraph(mixedCoordinateSnapshot(t))

	km, ok := tripDistanceKM(g, []topology.StationID{stationAO}, []topology.StationID{stationCD2})
	require.True(t, ok)
	assert.InDelta(t, 0, km, 1e-9)

	_, ok = tripDistanceKM(g, []topology.StationID{stationAO}, []topology.StationID{stationAD1, stationCD2})
	assert.False(t, ok)

	_, ok = tripDistanceKM(g, []topology.StationID{stationAO, "odpt.Station:JR-East.B.Y1"}, []topology.StationID{stationCD2})
	assert.False(t, ok)
}

func TestRankRoutes_MixedCoordinateDestinationsMatchDijkstra(t *testing.T) {
	snap := mixedCoordinateSnapshot(t)
	q := Query{
		Origins:      []string{stationAO},
		Destinations: []string{stationAD1, stationBD1, stationCD2},
		Strategies:   []Strategy{Fastest},
	}

	astar, err := NewEngine(snap).RankRoutes(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, astar, 1)

	dijkstraTuning := DefaultTuning()
	dijkstraTuning.HeuristicMinutesPerKm = 0
	dijkstra, err := NewEngine(snap, WithTuning(dijkstraTuning)).RankRoutes(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, dijkstra, 1)

	// boarding wait 4 plus two JR edges of 2.5
	assert.InDelta(t, 9.0, astar[0].Costs.Time, 1e-9)
	assert.Equal(t, []string{lineA}, astar[0].RailwayIDs)
	assert.Equal(t, stationAD1, astar[0].Destination())
	assert.InDelta(t, dijkstra[0].Costs.Time, astar[0].Costs.Time, 1e-9)
}
