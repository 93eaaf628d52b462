package advisory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/losangeles1156/lutagu-mvp-sub001/itinerary"
	"github.com/losangeles1156/lutagu-mvp-sub001/topology"
	"github.com/losangeles1156/lutagu-mvp-sub001/traffic"
)

func ride(railway, operator string) itinerary.RouteStep {
	return itinerary.RouteStep{Kind: itinerary.StepTrain, RailwayID: railway, Operator: operator}
}

func TestCascadeDelayRisk(t *testing.T) {
	direct := itinerary.RouteOption{Steps: []itinerary.RouteStep{ride("odpt.Railway:TokyoMetro.Ginza", "TokyoMetro")}}
	assert.Equal(t, 3.0, CascadeDelayRisk(direct, nil))

	twoLegs := itinerary.RouteOption{Steps: []itinerary.RouteStep{
		ride("odpt.Railway:JR-East.Yamanote", "JR-East"),
		{Kind: itinerary.StepTransfer},
		ride("odpt.Railway:TokyoMetro.Ginza", "TokyoMetro"),
	}}
	// 1 - (0.94 * 0.95)
	assert.Equal(t, 10.7, CascadeDelayRisk(twoLegs, nil))

	delayed := []traffic.Condition{{RailwayID: "odpt.Railway:JR-East.Yamanote", Status: traffic.StatusDelayed, DelayMinutes: 30}}
	// first leg 0.06 + 0.5
	assert.Equal(t, 58.2, CascadeDelayRisk(twoLegs, delayed))

	assert.Zero(t, CascadeDelayRisk(itinerary.RouteOption{}, nil))
}

func TestTransferPainIndex(t *testing.T) {
	signage := 0.0
	snap := &topology.Snapshot{Transfers: []topology.TransferInfo{
		{Station: "odpt.Station:A.L.Hub", TargetRailway: "odpt.Railway:B.M", BasePainIndex: 42},
		{
			Station:         "odpt.Station:C.N.Deep",
			DistanceMeters:  500,
			FloorDifference: 4,
			VerticalAccess:  "stairs",
			SignageClarity:  &signage,
			CrowdLevel:      1,
			OutOfStation:    true,
			Turns:           6,
		},
	}}
	e := NewEnricher(snap, 0)

	base := itinerary.RouteOption{Steps: []itinerary.RouteStep{
		{Kind: itinerary.StepTransfer, StationID: "odpt.Station:A.L.Hub", RailwayID: "odpt.Railway:B.M"},
	}}
	assert.Equal(t, 42.0, e.TransferPainIndex(base))

	worst := itinerary.RouteOption{Steps: []itinerary.RouteStep{
		{Kind: itinerary.StepTransfer, StationID: "odpt.Station:C.N.Deep", CrossOperator: true},
	}}
	assert.Equal(t, 100.0, e.TransferPainIndex(worst))

	// no metadata: 120 m default walk
	plain := itinerary.RouteOption{Steps: []itinerary.RouteStep{
		{Kind: itinerary.StepTransfer, StationID: "odpt.Station:X.Y.Z"},
	}}
	assert.Equal(t, 8.4, e.TransferPainIndex(plain))

	assert.Zero(t, e.TransferPainIndex(itinerary.RouteOption{}))
}

func TestEnrich(t *testing.T) {
	e := NewEnricher(nil, 120)
	in := []itinerary.RouteOption{
		{Label: "a", Steps: []itinerary.RouteStep{ride("odpt.Railway:TokyoMetro.Ginza", "TokyoMetro")}},
		{Label: "b", Steps: []itinerary.RouteStep{
			ride("odpt.Railway:JR-East.Yamanote", "JR-East"),
			ride("odpt.Railway:JR-East.Chuo", "JR-East"),
		}},
	}
	out := e.Enrich(in, []traffic.Condition{{RailwayID: "odpt.Railway:JR-East.Chuo", DelayMinutes: 30}})
	require.Len(t, out, 2)
	assert.Nil(t, in[0].Advisory)

	require.NotNil(t, out[0].Advisory)
	assert.Equal(t, RiskLow, out[0].Advisory.RiskLevel)
	require.NotNil(t, out[1].Advisory)
	assert.Equal(t, RiskHigh, out[1].Advisory.RiskLevel)
	assert.Equal(t, "b", out[1].Label)
}

func TestEnrich_RapidPatternLegs(t *testing.T) {
	const rapid = "odpt.Railway:JR-East.ChuoRapid"
	snap := &topology.Snapshot{Rapid: []topology.RapidPattern{{RailwayID: rapid}}}
	e := NewEnricher(snap, 0)

	tests := []struct {
		name      string
		leg       itinerary.RouteStep
		wantClass topology.ServiceClass
		wantRisk  float64
	}{
		{"rapid pattern", ride(rapid, "JR-East"), topology.ClassRapid, 8.0},
		{"local line", ride("odpt.Railway:JR-East.ChuoLocal", "JR-East"), topology.ClassJR, 6.0},
		{"metro", ride("odpt.Railway:TokyoMetro.Ginza", "TokyoMetro"), topology.ClassMetro, 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantClass, e.legClass(tt.leg))
			out := e.Enrich([]itinerary.RouteOption{{Steps: []itinerary.RouteStep{tt.leg}}}, nil)
			require.Len(t, out, 1)
			require.NotNil(t, out[0].Advisory)
			assert.Equal(t, tt.wantRisk, out[0].Advisory.CascadeDelayRisk)
		})
	}

	// without the snapshot a rapid railway is classed by its operator
	only := itinerary.RouteOption{Steps: []itinerary.RouteStep{ride(rapid, "JR-East")}}
	assert.Equal(t, 6.0, CascadeDelayRisk(only, nil))
}
