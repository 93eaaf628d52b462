package railrank

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bluele/gcache"

	"github.com/losangeles1156/lutagu-mvp-sub001/router"
	"github.com/losangeles1156/lutagu-mvp-sub001/topology"
)

// ErrUnknownSnapshot is returned for snapshot ids the registry cannot load.
var ErrUnknownSnapshot = errors.New("unknown topology snapshot")

// SnapshotSource loads a snapshot by id on a registry miss.
type SnapshotSource func(id string) (*topology.Snapshot, error)

// EngineRegistry keeps one router.Engine per snapshot id so repeated queries
// reuse the compiled graph. Evicted engines are rebuilt through the source.
type EngineRegistry struct {
	cache  gcache.Cache
	tuning router.Tuning

	mu        sync.RWMutex
	defaultID string
}

// NewEngineRegistry creates a registry holding up to size engines.
func NewEngineRegistry(size int, tuning router.Tuning, source SnapshotSource) *EngineRegistry {
	if size <= 0 {
		size = 1
	}
	r := &EngineRegistry{tuning: tuning}
	r.cache = gcache.New(size).
		LRU().
		LoaderFunc(func(key interface{}) (interface{}, error) {
			id, _ := key.(string)
			if source == nil {
				return nil, fmt.Errorf("%w: %s", ErrUnknownSnapshot, id)
			}
			snap, err := source(id)
			if err != nil {
				return nil, err
			}
			return router.NewEngine(snap, router.WithTuning(r.tuning)), nil
		}).
		Build()
	return r
}

// Add registers an already built engine. The first engine added becomes the
// default.
func (r *EngineRegistry) Add(e *router.Engine) {
	_ = r.cache.Set(e.SnapshotID(), e)
	r.mu.Lock()
	if r.defaultID == "" {
		r.defaultID = e.SnapshotID()
	}
	r.mu.Unlock()
}

// DefaultID returns the id used when a request names no snapshot.
func (r *EngineRegistry) DefaultID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultID
}

// Get returns the engine for id, loading it on a miss. An empty id selects
// the default snapshot.
func (r *EngineRegistry) Get(id string) (*router.Engine, error) {
	if id == "" {
		id = r.DefaultID()
	}
	if id == "" {
		return nil, ErrUnknownSnapshot
	}
	v, err := r.cache.Get(id)
	if err != nil {
		return nil, err
	}
	e, ok := v.(*router.Engine)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSnapshot, id)
	}
	return e, nil
}
