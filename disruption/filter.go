package disruption

import (
	"sort"
	"strings"

	"github.com/losangeles1156/lutagu-mvp-sub001/itinerary"
	"github.com/losangeles1156/lutagu-mvp-sub001/traffic"
)

// MinPrefixTokenLen is the shortest token allowed to match by prefix.
// Shorter tokens ("jr", "toei") only match exactly.
const MinPrefixTokenLen = 8

var railwayPrefixes = []string{"odpt.railway:", "odpt:railway:"}

// NormalizeToken reduces a railway id to its comparable token.
func NormalizeToken(railwayID string) string {
	t := strings.ToLower(strings.TrimSpace(railwayID))
	for _, p := range railwayPrefixes {
		t = strings.TrimPrefix(t, p)
	}
	return t
}

// TokensMatch reports whether two normalized tokens name the same railway:
// equal, or one a prefix of the other when both are long enough.
func TokensMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if len(a) < MinPrefixTokenLen || len(b) < MinPrefixTokenLen {
		return false
	}
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}

// Blocklist is the resolved set of suspended railways.
type Blocklist struct {
	tokens []string
	ids    []string
}

// NewBlocklist collects the railways whose conditions are suspensions.
func NewBlocklist(conds []traffic.Condition) *Blocklist {
	b := &Blocklist{}
	seen := map[string]bool{}
	for _, c := range conds {
		if !c.Suspended() {
			continue
		}
		tok := NormalizeToken(c.RailwayID)
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		b.tokens = append(b.tokens, tok)
		b.ids = append(b.ids, c.RailwayID)
	}
	sort.Strings(b.tokens)
	sort.Strings(b.ids)
	return b
}

// Blocks reports whether railwayID matches any blocked token.
func (b *Blocklist) Blocks(railwayID string) bool {
	if b == nil || len(b.tokens) == 0 {
		return false
	}
	tok := NormalizeToken(railwayID)
	for _, t := range b.tokens {
		if TokensMatch(tok, t) {
			return true
		}
	}
	return false
}

// Empty reports whether nothing is blocked.
func (b *Blocklist) Empty() bool { return b == nil || len(b.tokens) == 0 }

// RailwayIDs returns the blocked railway ids as reported, sorted.
func (b *Blocklist) RailwayIDs() []string {
	if b == nil {
		return nil
	}
	return append([]string(nil), b.ids...)
}

// Result is the outcome of Filter.
type Result struct {
	Kept            []itinerary.RouteOption `json:"kept"`
	Removed         []itinerary.RouteOption `json:"removed"`
	BlockedRailways []string                `json:"blockedRailways"`
}

// Filter splits routes into those that avoid every suspended railway and those
// that ride at least one. Order is preserved in both lists.
func Filter(routes []itinerary.RouteOption, conds []traffic.Condition) Result {
	bl := NewBlocklist(conds)
	res := Result{
		Kept:            make([]itinerary.RouteOption, 0, len(routes)),
		BlockedRailways: bl.RailwayIDs(),
	}
	if res.BlockedRailways == nil {
		res.BlockedRailways = []string{}
	}
	for _, r := range routes {
		if usesBlocked(r, bl) {
			res.Removed = append(res.Removed, r)
			continue
		}
		res.Kept = append(res.Kept, r)
	}
	return res
}

func usesBlocked(r itinerary.RouteOption, bl *Blocklist) bool {
	if bl.Empty() {
		return false
	}
	for _, s := range r.Steps {
		if s.Kind == itinerary.StepTrain && bl.Blocks(s.RailwayID) {
			return true
		}
	}
	return false
}
