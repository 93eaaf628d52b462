package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	railrank "github.com/losangeles1156/lutagu-mvp-sub001"
	"github.com/losangeles1156/lutagu-mvp-sub001/config"
	"github.com/losangeles1156/lutagu-mvp-sub001/internal/fixtures"
	"github.com/losangeles1156/lutagu-mvp-sub001/router"
)

func testLoader(t *testing.T) *snapshotLoader {
	t.Helper()
	dir := fixtures.GetTestDataPath()
	return newSnapshotLoader(config.TopologyConfig{
		SnapshotPath: filepath.Join(dir, "snapshot_small.json"),
		Snapshots: map[string]string{
			"odakyu": filepath.Join(dir, "snapshot_small.yaml"),
			"broken": filepath.Join(dir, "absent.json"),
		},
	})
}

func TestSnapshotLoader_Default(t *testing.T) {
	snap, err := testLoader(t).load()
	require.NoError(t, err)
	assert.Equal(t, "small", snap.ID)
}

func TestSnapshotLoader_Source(t *testing.T) {
	src := testLoader(t).source("small")

	snap, err := src("small")
	require.NoError(t, err)
	assert.Equal(t, "small", snap.ID)

	snap, err = src("odakyu")
	require.NoError(t, err)
	assert.Equal(t, "odakyu", snap.ID)
	assert.NotEmpty(t, snap.Railways)

	_, err = src("osaka")
	assert.ErrorIs(t, err, railrank.ErrUnknownSnapshot)

	_, err = src("broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, railrank.ErrUnknownSnapshot)
}

func TestSnapshotLoader_ServesNamedSnapshots(t *testing.T) {
	loader := testLoader(t)
	snap, err := loader.load()
	require.NoError(t, err)

	reg := railrank.NewEngineRegistry(2, router.DefaultTuning(), loader.source(snap.ID))
	reg.Add(router.NewEngine(snap))

	e, err := reg.Get("odakyu")
	require.NoError(t, err)
	assert.Equal(t, "odakyu", e.SnapshotID())
	assert.GreaterOrEqual(t, e.Graph().StationCount(), 3)

	e, err = reg.Get("")
	require.NoError(t, err)
	assert.Equal(t, "small", e.SnapshotID())
}
