package main

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	railrank "github.com/losangeles1156/lutagu-mvp-sub001"
	"github.com/losangeles1156/lutagu-mvp-sub001/config"
	"github.com/losangeles1156/lutagu-mvp-sub001/topology"
)

// snapshotLoader resolves the configured topology: the gob cache first, then
// the snapshot file or URL, then a GTFS static zip.
type snapshotLoader struct {
	cfg        config.TopologyConfig
	httpClient *http.Client
}

func newSnapshotLoader(cfg config.TopologyConfig) *snapshotLoader {
	return &snapshotLoader{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (l *snapshotLoader) load() (*topology.Snapshot, error) {
	if l.cfg.CachePath != "" {
		if snap, err := topology.LoadSnapshotCache(l.cfg.CachePath); err == nil {
			log.Printf("topology loaded from cache %s", l.cfg.CachePath)
			return l.withID(snap), nil
		}
	}

	var snap *topology.Snapshot
	var err error
	switch {
	case l.cfg.SnapshotPath != "":
		snap, err = topology.LoadSnapshot(l.httpClient, l.cfg.SnapshotPath)
	case l.cfg.GTFSStaticURL != "":
		var data []byte
		data, err = topology.Fetch(l.httpClient, l.cfg.GTFSStaticURL)
		if err == nil {
			snap, err = topology.FromGTFSZip(data)
		}
		if err == nil && snap.ID == "" {
			snap.ID = filepath.Base(l.cfg.GTFSStaticURL)
		}
	default:
		return nil, fmt.Errorf("no topology source configured")
	}
	if err != nil {
		return nil, err
	}
	snap = l.withID(snap)

	topology.Validate(snap).LogAll(snap.ID)

	if l.cfg.CachePath != "" {
		if err := topology.SaveSnapshotFile(snap, l.cfg.CachePath); err != nil {
			log.Printf("failed to write topology cache: %v", err)
		}
	}
	return snap, nil
}

func (l *snapshotLoader) withID(snap *topology.Snapshot) *topology.Snapshot {
	if l.cfg.SnapshotID != "" {
		snap.ID = l.cfg.SnapshotID
	}
	return snap
}

// loadNamed loads one of the extra snapshots listed under topology.snapshots.
// The snapshot takes the configured id whatever its file says.
func (l *snapshotLoader) loadNamed(id, path string) (*topology.Snapshot, error) {
	snap, err := topology.LoadSnapshot(l.httpClient, path)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", id, err)
	}
	snap.ID = id
	topology.Validate(snap).LogAll(id)
	log.Printf("topology %s loaded from %s", id, path)
	return snap, nil
}

// source loads snapshots for the engine registry: the default one, reloaded
// after eviction, and any listed under topology.snapshots.
func (l *snapshotLoader) source(defaultID string) railrank.SnapshotSource {
	return func(id string) (*topology.Snapshot, error) {
		if id == defaultID {
			return l.load()
		}
		if path, ok := l.cfg.Snapshots[id]; ok {
			return l.loadNamed(id, path)
		}
		return nil, fmt.Errorf("%w: %s", railrank.ErrUnknownSnapshot, id)
	}
}
