package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
topology:
  snapshotPath: testdata/tokyo.json
router:
  defaultMaxHops: 12
  tuning:
    jrMinutesPerEdge: 3
`))
	require.NoError(t, err)

	assert.Equal(t, 16181, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "testdata/tokyo.json", cfg.Topology.SnapshotPath)
	assert.Equal(t, 60000, cfg.Traffic.ReadIntervalMS)
	assert.Equal(t, 12, cfg.Router.Tuning.DefaultMaxHops)
	assert.Equal(t, 3.0, cfg.Router.Tuning.JRMinutesPerEdge)
	assert.Equal(t, 2.0, cfg.Router.Tuning.MetroMinutesPerEdge)
	assert.Equal(t, 1024, cfg.Cache.Size)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "server: [[["},
		{"no topology source", "server:\n  port: 8080\n"},
		{"bad port", "server:\n  port: 70000\ntopology:\n  snapshotPath: a.json\n"},
		{"bad gin mode", "server:\n  ginMode: loud\ntopology:\n  snapshotPath: a.json\n"},
		{"negative interval", "topology:\n  snapshotPath: a.json\ntraffic:\n  readIntervalMS: -1\n"},
		{"bad tuning", "topology:\n  snapshotPath: a.json\nrouter:\n  tuning:\n    shortTripHubScale: 2\n"},
		{"empty named snapshot path", "topology:\n  snapshotPath: a.json\n  snapshots:\n    osaka: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParse_NamedSnapshots(t *testing.T) {
	cfg, err := Parse([]byte(`
topology:
  snapshotPath: testdata/tokyo.json
  snapshots:
    odakyu: testdata/odakyu.yaml
    kansai: https://example.com/kansai.json
`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"odakyu": "testdata/odakyu.yaml",
		"kansai": "https://example.com/kansai.json",
	}, cfg.Topology.Snapshots)
}

func TestParse_GTFSSourceSuffices(t *testing.T) {
	cfg, err := Parse([]byte("topology:\n  gtfsStaticURL: https://example.com/gtfs.zip\n"))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/gtfs.zip", cfg.Topology.GTFSStaticURL)
}

func TestLoadAppConfig_FromEnvPath(t *testing.T) {
	orig := Config
	defer func() { Config = orig }()

	path := filepath.Join(t.TempDir(), "railrank.yml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\ntopology:\n  snapshotPath: x.json\n"), 0o644))
	t.Setenv(EnvConfigPath, path)

	require.NoError(t, LoadAppConfig())
	assert.Equal(t, 9090, Config.Server.Port)
}

func TestLoadAppConfig_MissingFile(t *testing.T) {
	orig := Config
	defer func() { Config = orig }()

	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, LoadAppConfig())
}
