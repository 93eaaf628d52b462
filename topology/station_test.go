package topology

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStationID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    StationID
		wantErr bool
	}{
		{"dotted", "odpt.Station:JR-East.Yamanote.Tokyo", "odpt.Station:JR-East.Yamanote.Tokyo", false},
		{"colon", "odpt:Station:JR-East.Yamanote.Tokyo", "odpt.Station:JR-East.Yamanote.Tokyo", false},
		{"trimmed", "  odpt.Station:Toei.Asakusa.Asakusa\n", "odpt.Station:Toei.Asakusa.Asakusa", false},
		{"foreign scheme", "gtfs:stop:1234", "gtfs:stop:1234", false},
		{"empty", "   ", "", true},
		{"prefix only", "odpt:Station:", "", true},
		{"inner space", "odpt.Station:JR-East.Yamanote.Shin juku", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeStationID(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				var se *StationIDError
				assert.True(t, errors.As(err, &se))
				assert.ErrorIs(t, err, ErrInvalidStationID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeStationIDs_Dedupes(t *testing.T) {
	got, err := NormalizeStationIDs([]string{
		"odpt:Station:JR-East.Yamanote.Tokyo",
		"odpt.Station:JR-East.Yamanote.Tokyo",
		"odpt.Station:JR-East.Yamanote.Kanda",
	})
	require.NoError(t, err)
	assert.Equal(t, []StationID{"odpt.Station:JR-East.Yamanote.Tokyo", "odpt.Station:JR-East.Yamanote.Kanda"}, got)

	_, err = NormalizeStationIDs([]string{"odpt.Station:A.B.C", ""})
	assert.ErrorIs(t, err, ErrInvalidStationID)
}

func TestIDHelpers(t *testing.T) {
	id := StationID("odpt.Station:TokyoMetro.Marunouchi.Shinjuku")
	assert.Equal(t, "shinjuku", id.BaseName())
	assert.Equal(t, "TokyoMetro", id.Operator())
	assert.Equal(t, "Shinjuku", TrailingSegment(string(id)))
	assert.Equal(t, "JR-East", OperatorKey("odpt.Railway:JR-East.Yamanote"))
	assert.Equal(t, "Toei", OperatorKey("odpt.Operator:Toei"))
	assert.Equal(t, "odpt.Railway:Toei.Oedo", NormalizeRailwayID(" odpt:Railway:Toei.Oedo "))
	assert.Equal(t, "plain", TrailingSegment("plain"))
}

func TestClassOf(t *testing.T) {
	tests := map[string]ServiceClass{
		"TokyoMetro": ClassMetro,
		"Toei":       ClassMetro,
		"JR-East":    ClassJR,
		"JR-Central": ClassJR,
		"Odakyu":     ClassPrivate,
		"":           ClassPrivate,
	}
	for op, want := range tests {
		assert.Equal(t, want, ClassOf(op), op)
	}
	assert.Equal(t, "rapid", ClassRapid.String())
	assert.Equal(t, "metro", ClassMetro.String())
}
