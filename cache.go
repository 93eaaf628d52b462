package railrank

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/bluele/gcache"
)

// ResponseCache memoizes rendered ranking responses. Entries expire after the
// configured TTL and the least recently used entry is evicted when full.
type ResponseCache struct {
	cache gcache.Cache
}

// NewResponseCache creates a cache of size entries. A zero size or ttl
// disables caching.
func NewResponseCache(size int, ttl time.Duration) *ResponseCache {
	if size <= 0 || ttl <= 0 {
		return &ResponseCache{}
	}
	return &ResponseCache{
		cache: gcache.New(size).
			LRU().
			Expiration(ttl).
			Build(),
	}
}

// Get returns a cached response body.
func (rc *ResponseCache) Get(key string) ([]byte, bool) {
	if rc == nil || rc.cache == nil {
		return nil, false
	}
	v, err := rc.cache.Get(key)
	if err != nil {
		return nil, false
	}
	buf, ok := v.([]byte)
	return buf, ok
}

// Set stores a response body.
func (rc *ResponseCache) Set(key string, buf []byte) {
	if rc == nil || rc.cache == nil {
		return
	}
	_ = rc.cache.Set(key, buf)
}

// Len returns the number of live entries.
func (rc *ResponseCache) Len() int {
	if rc == nil || rc.cache == nil {
		return 0
	}
	return rc.cache.Len(true)
}

func memoKey(args ...string) string {
	var b bytes.Buffer
	for i, a := range args {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(a)
	}
	return b.String()
}

// requestKey identifies a ranking request against one snapshot and traffic state.
func requestKey(req rankRequest, snapshotID, format string, trafficEpoch int64) string {
	strategies := make([]string, len(req.Strategies))
	for i, s := range req.Strategies {
		strategies[i] = s.String()
	}
	return memoKey(
		snapshotID,
		format,
		req.Locale,
		strconv.Itoa(req.MaxHops),
		strings.Join(strategies, ","),
		strings.Join(req.Origins, ","),
		strings.Join(req.Destinations, ","),
		strconv.FormatInt(trafficEpoch, 10),
	)
}
