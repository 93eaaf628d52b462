package traffic

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/losangeles1156/lutagu-mvp-sub001/topology"
)

// Status is the operating state of one railway.
type Status string

const (
	StatusNormal    Status = "normal"
	StatusDelayed   Status = "delayed"
	StatusSuspended Status = "suspended"
)

// suspensionKeywords mark a suspension in free text across the locales the
// status collaborators publish in.
var suspensionKeywords = []string{
	"運転見合わせ",
	"運休",
	"見合わせ",
	"停止",
	"暫停",
	"停駛",
	"운행 중단",
	"suspend",
	"halted",
	"not running",
	"no service",
}

var delayKeywords = []string{
	"遅延",
	"遅れ",
	"延誤",
	"지연",
	"delay",
}

// ParseStatus maps a status code or phrase to a Status. Unknown values are
// treated as normal.
func ParseStatus(s string) Status {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "", "normal", "ok", "on_time", "good_service":
		return StatusNormal
	case "suspended", "suspension", "stopped", "no_service", "cancelled", "canceled":
		return StatusSuspended
	case "delayed", "delay", "delays", "significant_delays", "reduced_service":
		return StatusDelayed
	}
	if MentionsSuspension(v) {
		return StatusSuspended
	}
	for _, kw := range delayKeywords {
		if strings.Contains(v, kw) {
			return StatusDelayed
		}
	}
	return StatusNormal
}

// MentionsSuspension reports whether text contains a suspension keyword.
func MentionsSuspension(text string) bool {
	t := strings.ToLower(text)
	for _, kw := range suspensionKeywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

func severity(s Status) int {
	switch s {
	case StatusSuspended:
		return 2
	case StatusDelayed:
		return 1
	default:
		return 0
	}
}

// Condition is the reported state of one railway.
type Condition struct {
	RailwayID    string `json:"railwayId" yaml:"railwayId" validate:"required"`
	Status       Status `json:"status" yaml:"status"`
	DelayMinutes int    `json:"delayMinutes,omitempty" yaml:"delayMinutes,omitempty" validate:"gte=0"`
	Text         string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Suspended reports whether the condition blocks the railway, either by status
// code or by a suspension keyword in its text.
func (c Condition) Suspended() bool {
	return c.Status == StatusSuspended || MentionsSuspension(c.Text)
}

// Delayed reports whether the condition carries a delay and is not a suspension.
func (c Condition) Delayed() bool {
	return !c.Suspended() && (c.Status == StatusDelayed || c.DelayMinutes > 0)
}

// UnmarshalJSON accepts free-form status strings ("Delayed", "運転見合わせ").
func (c *Condition) UnmarshalJSON(data []byte) error {
	type raw struct {
		RailwayID    string `json:"railwayId"`
		Railway      string `json:"railway"`
		Status       string `json:"status"`
		DelayMinutes int    `json:"delayMinutes"`
		Text         string `json:"text"`
	}
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	id := r.RailwayID
	if id == "" {
		id = r.Railway
	}
	*c = Condition{
		RailwayID:    topology.NormalizeRailwayID(id),
		Status:       ParseStatus(r.Status),
		DelayMinutes: r.DelayMinutes,
		Text:         r.Text,
	}
	if c.Status == StatusNormal && MentionsSuspension(c.Text) {
		c.Status = StatusSuspended
	}
	return nil
}

// ParseConditionsJSON decodes a JSON array of conditions, or an object with a
// "conditions" array.
func ParseConditionsJSON(data []byte) ([]Condition, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, nil
	}
	var out []Condition
	if strings.HasPrefix(trimmed, "{") {
		var wrapped struct {
			Conditions []Condition `json:"conditions"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("decode traffic conditions: %w", err)
		}
		out = wrapped.Conditions
	} else if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode traffic conditions: %w", err)
	}
	return Merge(out), nil
}

// Merge collapses conditions per railway. The most severe status wins, delay
// minutes take the maximum and texts are joined. Normal conditions with no delay
// are dropped. The result is sorted by railway id.
func Merge(conds []Condition) []Condition {
	byID := map[string]*Condition{}
	for _, c := range conds {
		id := topology.NormalizeRailwayID(c.RailwayID)
		if id == "" {
			continue
		}
		cur, ok := byID[id]
		if !ok {
			c.RailwayID = id
			byID[id] = &c
			continue
		}
		if severity(c.Status) > severity(cur.Status) {
			cur.Status = c.Status
		}
		if c.DelayMinutes > cur.DelayMinutes {
			cur.DelayMinutes = c.DelayMinutes
		}
		if c.Text != "" && !strings.Contains(cur.Text, c.Text) {
			if cur.Text == "" {
				cur.Text = c.Text
			} else {
				cur.Text += " / " + c.Text
			}
		}
	}
	out := make([]Condition, 0, len(byID))
	for _, c := range byID {
		if c.Status == "" {
			c.Status = StatusNormal
		}
		if c.Status == StatusNormal && c.DelayMinutes == 0 && !c.Suspended() {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RailwayID < out[j].RailwayID })
	return out
}
