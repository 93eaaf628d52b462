package traffic

import (
	"context"
	"log"
	"sync"
	"time"
)

// Sources lists the feeds a Feed polls. Any location may be empty.
type Sources struct {
	AlertsURL             string
	TripUpdatesURL        string
	StatusURL             string
	Routes                RouteMap
	DelayThresholdMinutes int
}

// Fetcher is satisfied by *Client.
type Fetcher interface {
	FetchAll(ctx context.Context, alertsURL, tripUpdatesURL, statusURL string) ([]byte, []byte, []byte, error)
}

// Feed holds the most recent merged conditions from its sources.
type Feed struct {
	src     Sources
	fetcher Fetcher

	mu         sync.RWMutex
	conditions []Condition
	timestamp  int64
	lastErr    error
}

// NewFeed creates a feed. Nothing is fetched until Refresh or Run.
func NewFeed(src Sources, fetcher Fetcher) *Feed {
	return &Feed{src: src, fetcher: fetcher}
}

// Enabled reports whether any source is configured.
func (f *Feed) Enabled() bool {
	return f != nil && (f.src.AlertsURL != "" || f.src.TripUpdatesURL != "" || f.src.StatusURL != "")
}

// Refresh fetches every source and swaps in the merged conditions. On error the
// previous conditions stay in place.
func (f *Feed) Refresh(ctx context.Context) error {
	sa, tu, st, err := f.fetcher.FetchAll(ctx, f.src.AlertsURL, f.src.TripUpdatesURL, f.src.StatusURL)
	if err != nil {
		f.setErr(err)
		return err
	}
	alerts, err := ParseAlerts(sa, f.src.Routes)
	if err != nil {
		f.setErr(err)
		return err
	}
	delays, err := ParseTripUpdates(tu, f.src.Routes, f.src.DelayThresholdMinutes)
	if err != nil {
		f.setErr(err)
		return err
	}
	status, err := ParseConditionsJSON(st)
	if err != nil {
		f.setErr(err)
		return err
	}

	all := make([]Condition, 0, len(alerts.Conditions)+len(delays.Conditions)+len(status))
	all = append(all, alerts.Conditions...)
	all = append(all, delays.Conditions...)
	all = append(all, status...)
	merged := Merge(all)

	ts := alerts.Timestamp
	if delays.Timestamp > ts {
		ts = delays.Timestamp
	}
	if ts == 0 {
		ts = time.Now().Unix()
	}

	f.mu.Lock()
	f.conditions = merged
	f.timestamp = ts
	f.lastErr = nil
	f.mu.Unlock()
	return nil
}

func (f *Feed) setErr(err error) {
	f.mu.Lock()
	f.lastErr = err
	f.mu.Unlock()
}

// Run refreshes immediately and then every interval until ctx is done.
func (f *Feed) Run(ctx context.Context, interval time.Duration) {
	if err := f.Refresh(ctx); err != nil {
		log.Printf("traffic refresh failed: %v", err)
	}
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := f.Refresh(ctx); err != nil {
				log.Printf("traffic refresh failed: %v", err)
				continue
			}
			f.mu.RLock()
			n := len(f.conditions)
			f.mu.RUnlock()
			log.Printf("traffic refreshed: %d abnormal railways", n)
		}
	}
}

// Conditions returns a copy of the current conditions.
func (f *Feed) Conditions() []Condition {
	if f == nil {
		return nil
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Condition, len(f.conditions))
	copy(out, f.conditions)
	return out
}

// Timestamp returns the feed header epoch of the last successful refresh.
func (f *Feed) Timestamp() int64 {
	if f == nil {
		return 0
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.timestamp
}

// LastError returns the error of the most recent refresh, if it failed.
func (f *Feed) LastError() error {
	if f == nil {
		return nil
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lastErr
}
