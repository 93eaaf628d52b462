package traffic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"", StatusNormal},
		{"Normal", StatusNormal},
		{"delayed", StatusDelayed},
		{"SIGNIFICANT_DELAYS", StatusDelayed},
		{"suspended", StatusSuspended},
		{"NO_SERVICE", StatusSuspended},
		{"運転見合わせ", StatusSuspended},
		{"列車遅延", StatusDelayed},
		{"Service suspended between A and B", StatusSuspended},
		{"whatever", StatusNormal},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseStatus(tt.in))
		})
	}
}

func TestCondition_Predicates(t *testing.T) {
	assert.True(t, Condition{Status: StatusSuspended}.Suspended())
	assert.True(t, Condition{Status: StatusNormal, Text: "運休"}.Suspended())
	assert.False(t, Condition{Status: StatusDelayed, DelayMinutes: 5}.Suspended())

	assert.True(t, Condition{Status: StatusDelayed}.Delayed())
	assert.True(t, Condition{DelayMinutes: 4}.Delayed())
	assert.False(t, Condition{Status: StatusSuspended, DelayMinutes: 4}.Delayed())
}

func TestParseConditionsJSON(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		conds, err := ParseConditionsJSON([]byte(`[
			{"railway": "odpt:Railway:JR-East.Yamanote", "status": "Delayed", "delayMinutes": 7},
			{"railwayId": "odpt.Railway:TokyoMetro.Ginza", "status": "normal", "text": "運転見合わせ"},
			{"railwayId": "odpt.Railway:Toei.Oedo", "status": "normal"}
		]`))
		require.NoError(t, err)
		require.Len(t, conds, 2)
		assert.Equal(t, "odpt.Railway:JR-East.Yamanote", conds[0].RailwayID)
		assert.Equal(t, StatusDelayed, conds[0].Status)
		assert.Equal(t, 7, conds[0].DelayMinutes)
		assert.Equal(t, "odpt.Railway:TokyoMetro.Ginza", conds[1].RailwayID)
		assert.Equal(t, StatusSuspended, conds[1].Status)
	})

	t.Run("wrapped", func(t *testing.T) {
		conds, err := ParseConditionsJSON([]byte(`{"conditions":[{"railwayId":"odpt.Railway:Toei.Oedo","status":"suspended"}]}`))
		require.NoError(t, err)
		require.Len(t, conds, 1)
		assert.True(t, conds[0].Suspended())
	})

	t.Run("empty", func(t *testing.T) {
		conds, err := ParseConditionsJSON([]byte("  "))
		require.NoError(t, err)
		assert.Empty(t, conds)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseConditionsJSON([]byte(`[{"railwayId":`))
		assert.Error(t, err)
	})
}

func TestMerge(t *testing.T) {
	got := Merge([]Condition{
		{RailwayID: "odpt:Railway:Toei.Oedo", Status: StatusDelayed, DelayMinutes: 5, Text: "signal check"},
		{RailwayID: "odpt.Railway:Toei.Oedo", Status: StatusSuspended, DelayMinutes: 2, Text: "運転見合わせ"},
		{RailwayID: "odpt.Railway:JR-East.Chuo", Status: StatusDelayed, DelayMinutes: 3},
		{RailwayID: "odpt.Railway:JR-East.Chuo", Status: StatusDelayed, DelayMinutes: 9},
		{RailwayID: "odpt.Railway:Tokyu.Toyoko", Status: StatusNormal},
		{RailwayID: " ", Status: StatusSuspended},
	})
	require.Len(t, got, 2)

	assert.Equal(t, "odpt.Railway:JR-East.Chuo", got[0].RailwayID)
	assert.Equal(t, 9, got[0].DelayMinutes)

	assert.Equal(t, "odpt.Railway:Toei.Oedo", got[1].RailwayID)
	assert.Equal(t, StatusSuspended, got[1].Status)
	assert.Equal(t, 5, got[1].DelayMinutes)
	assert.Equal(t, "signal check / 運転見合わせ", got[1].Text)
}
