package topology

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join("..", "testdata", name)
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"tokyo.json":                    FormatJSON,
		"tokyo.YAML":                    FormatYAML,
		"conf/tokyo.yml":                FormatYAML,
		"/cache/tokyo.gob":              FormatGob,
		"https://example.com/gtfs.zip":  FormatGTFS,
		"https://example.com/a.yml?v=2": FormatYAML,
		"snapshot":                      FormatJSON,
	}
	for p, want := range tests {
		assert.Equal(t, want, FormatFromPath(p), p)
	}
}

func TestLoadSnapshot_JSONNormalizesIDs(t *testing.T) {
	snap, err := LoadSnapshot(nil, testdataPath(t, "snapshot_small.json"))
	require.NoError(t, err)

	assert.Equal(t, "small", snap.ID)
	require.Len(t, snap.Railways, 2)
	assert.Equal(t, "odpt.Railway:TokyoMetro.Ginza", snap.Railways[0].ID)
	assert.Equal(t, StationID("odpt.Station:TokyoMetro.Ginza.Shibuya"), snap.Railways[0].Stations[0].ID)
	assert.Equal(t, StationID("odpt.Station:TokyoMetro.Ginza.Shibuya"), snap.Transfers[0].Station)
	assert.Equal(t, "odpt.Railway:Tokyu.Toyoko", snap.Transfers[0].TargetRailway)
	assert.Equal(t, 4.0, snap.HubBuffers["shibuya"])

	c, ok := snap.Coordinate("odpt.Station:TokyoMetro.Ginza.Ginza")
	require.True(t, ok)
	assert.InDelta(t, 35.6717, c.Lat, 1e-9)
	assert.Equal(t, 5, snap.StationCount())
}

func TestLoadSnapshot_YAML(t *testing.T) {
	snap, err := LoadSnapshot(nil, testdataPath(t, "snapshot_small.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "small-yaml", snap.ID)
	require.Len(t, snap.Aliases, 1)
	assert.Equal(t, StationID("odpt.Station:TokyoMetro.Chiyoda.YoyogiUehara"), snap.Aliases[0][1])
}

func TestLoadSnapshot_HTTP(t *testing.T) {
	body, err := os.ReadFile(testdataPath(t, "snapshot_small.json"))
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/snapshot.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	snap, err := LoadSnapshot(srv.Client(), srv.URL+"/snapshot.json")
	require.NoError(t, err)
	assert.Equal(t, "small", snap.ID)

	_, err = LoadSnapshot(srv.Client(), srv.URL+"/missing.json")
	assert.Error(t, err)
}

func TestParseSnapshot_RejectsInvalidStation(t *testing.T) {
	_, err := ParseSnapshot([]byte(`{"railways":[{"id":"r","stations":[{"id":""}]}]}`), FormatJSON)
	assert.ErrorIs(t, err, ErrInvalidStationID)

	_, err = ParseSnapshot([]byte(`{not json`), FormatJSON)
	assert.Error(t, err)
}

func TestSnapshotCache_RoundTrip(t *testing.T) {
	snap, err := LoadSnapshot(nil, testdataPath(t, "snapshot_small.json"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "small.gob")
	require.NoError(t, SaveSnapshotFile(snap, path))

	back, err := LoadSnapshotCache(path)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, back.ID)
	assert.Equal(t, snap.Railways, back.Railways)
	assert.Equal(t, snap.Coordinates, back.Coordinates)

	_, err = LoadSnapshotCache(filepath.Join(t.TempDir(), "absent.gob"))
	assert.Error(t, err)
}

func buildGTFSZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestFromGTFSZip(t *testing.T) {
	data := buildGTFSZip(t, map[string]string{
		"agency.txt": "agency_id,agency_name\nKO,Keio\n",
		"routes.txt": "route_id,agency_id,route_short_name,route_long_name,route_type\n" +
			"KO1,KO,Keio,Keio Line,2\n" +
			"BUS1,KO,B1,Keio Bus,3\n",
		"trips.txt": "route_id,service_id,trip_id\n" +
			"KO1,wk,t2\nKO1,wk,t1\nBUS1,wk,b1\n",
		"stops.txt": "stop_id,stop_name,stop_lat,stop_lon\n" +
			"s1,Shinjuku,35.690,139.699\n" +
			"s2,Sasazuka,35.673,139.667\n" +
			"s3,Meidaimae,35.668,139.650\n" +
			"bs,Bus Stop,35.0,139.0\n",
		"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
			"t1,08:00:00,08:00:00,s3,3\n" +
			"t1,07:50:00,07:50:00,s1,1\n" +
			"t1,07:55:00,07:55:00,s2,2\n" +
			"t2,09:00:00,09:00:00,s1,1\n" +
			"t2,09:05:00,09:05:00,s2,2\n" +
			"b1,09:00:00,09:00:00,bs,1\n" +
			"b1,09:10:00,09:10:00,s1,2\n",
	})

	snap, err := ParseSnapshot(data, FormatGTFS)
	require.NoError(t, err)
	require.Len(t, snap.Railways, 1, "bus routes are not rail")

	r := snap.Railways[0]
	assert.Equal(t, "odpt.Railway:Keio.Keio", r.ID)
	assert.Equal(t, "Keio Line", r.Title[UndeterminedLocale])
	require.Len(t, r.Stations, 3)
	assert.Equal(t, StationID("odpt.Station:Keio.Keio.Shinjuku"), r.Stations[0].ID)
	assert.Equal(t, StationID("odpt.Station:Keio.Keio.Meidaimae"), r.Stations[2].ID)

	_, ok := snap.Coordinate("odpt.Station:Keio.Keio.Sasazuka")
	assert.True(t, ok)

	_, err = FromGTFSZip([]byte("not a zip"))
	assert.Error(t, err)
}
