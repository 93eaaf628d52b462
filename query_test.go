package railrank

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/losangeles1156/lutagu-mvp-sub001/internal/fixtures"
	"github.com/losangeles1156/lutagu-mvp-sub001/router"
	"github.com/losangeles1156/lutagu-mvp-sub001/topology"
)

func TestParseRankParams(t *testing.T) {
	req, err := parseRankParams(url.Values{
		"from":     {"odpt.Station:A, odpt.Station:B", "odpt.Station:C"},
		"to":       {"odpt.Station:D"},
		"maxHops":  {"12"},
		"strategy": {"fastest,comfort"},
		"snapshot": {"tokyo"},
	}, "ja")
	require.NoError(t, err)
	assert.Equal(t, []string{"odpt.Station:A", "odpt.Station:B", "odpt.Station:C"}, req.Origins)
	assert.Equal(t, []string{"odpt.Station:D"}, req.Destinations)
	assert.Equal(t, 12, req.MaxHops)
	assert.Equal(t, []router.Strategy{router.Fastest, router.Comfort}, req.Strategies)
	assert.Equal(t, "tokyo", req.Snapshot)
	assert.Equal(t, "ja", req.Locale)
}

func TestParseRankParams_Errors(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
		msg    string
	}{
		{"no from", url.Values{"to": {"x"}}, "You must provide at least one origin (from)."},
		{"blank from", url.Values{"from": {" , "}, "to": {"x"}}, "You must provide at least one origin (from)."},
		{"no to", url.Values{"from": {"x"}}, "You must provide at least one destination (to)."},
		{"bad hops", url.Values{"from": {"x"}, "to": {"y"}, "maxHops": {"ten"}}, "Numeric parameter must be a non-negative integer."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRankParams(tt.params, "en")
			var qe *QueryError
			require.ErrorAs(t, err, &qe)
			assert.Equal(t, tt.msg, qe.Msg)
		})
	}
}

func TestFromBody(t *testing.T) {
	req, err := fromBody(routeBody{
		Origins:      []string{"odpt.Station:A"},
		Destinations: []string{"odpt.Station:B,odpt.Station:C"},
		Strategies:   []string{"fewest-transfers"},
	}, "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"odpt.Station:B", "odpt.Station:C"}, req.Destinations)
	assert.Equal(t, []router.Strategy{router.FewestTransfers}, req.Strategies)
	assert.Equal(t, "en", req.Locale)

	_, err = fromBody(routeBody{Strategies: []string{"scenic"}}, "en")
	assert.Error(t, err)
}

func TestResponseCache(t *testing.T) {
	rc := NewResponseCache(2, time.Minute)
	rc.Set("a", []byte("1"))
	rc.Set("b", []byte("2"))
	rc.Set("c", []byte("3"))

	_, ok := rc.Get("a")
	assert.False(t, ok, "least recently used entry is evicted")
	buf, ok := rc.Get("c")
	require.True(t, ok)
	assert.Equal(t, "3", string(buf))
	assert.Equal(t, 2, rc.Len())

	off := NewResponseCache(0, time.Minute)
	off.Set("a", []byte("1"))
	_, ok = off.Get("a")
	assert.False(t, ok)
	assert.Zero(t, off.Len())
}

func TestRequestKey(t *testing.T) {
	base := rankRequest{Origins: []string{"A"}, Destinations: []string{"B"}, Locale: "en"}
	k := requestKey(base, "tokyo", "json", 0)

	assert.Equal(t, k, requestKey(base, "tokyo", "json", 0))
	assert.NotEqual(t, k, requestKey(base, "tokyo", "xml", 0))
	assert.NotEqual(t, k, requestKey(base, "osaka", "json", 0))
	assert.NotEqual(t, k, requestKey(base, "tokyo", "json", 1760000000))

	withStrategy := base
	withStrategy.Strategies = []router.Strategy{router.Fastest}
	assert.NotEqual(t, k, requestKey(withStrategy, "tokyo", "json", 0))
}

func TestEngineRegistry(t *testing.T) {
	loads := 0
	source := func(id string) (*topology.Snapshot, error) {
		loads++
		if id != "yamanote" {
			return nil, ErrUnknownSnapshot
		}
		return fixtures.YamanoteOnly(), nil
	}
	reg := NewEngineRegistry(2, router.DefaultTuning(), source)

	_, err := reg.Get("")
	assert.ErrorIs(t, err, ErrUnknownSnapshot)

	reg.Add(router.NewEngine(fixtures.TokyoCore()))
	assert.Equal(t, "tokyo-core", reg.DefaultID())

	e, err := reg.Get("")
	require.NoError(t, err)
	assert.Equal(t, "tokyo-core", e.SnapshotID())

	e, err = reg.Get("yamanote")
	require.NoError(t, err)
	assert.Equal(t, "yamanote", e.SnapshotID())
	_, err = reg.Get("yamanote")
	require.NoError(t, err)
	assert.Equal(t, 1, loads)

	_, err = reg.Get("osaka")
	assert.ErrorIs(t, err, ErrUnknownSnapshot)
}
