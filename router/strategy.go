package router

import (
	"fmt"
	"strings"
)

// Strategy is a named ranking function over RouteCosts. The set is closed.
type Strategy int

const (
	Blended Strategy = iota
	Fastest
	FewestTransfers
	Comfort
)

var strategyNames = [...]string{
	Blended:         "blended",
	Fastest:         "fastest",
	FewestTransfers: "fewest_transfers",
	Comfort:         "comfort",
}

// AllStrategies returns every strategy in output order.
func AllStrategies() []Strategy {
	return []Strategy{Blended, Fastest, FewestTransfers, Comfort}
}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// Valid reports whether s is one of the defined strategies.
func (s Strategy) Valid() bool { return s >= 0 && int(s) < len(strategyNames) }

// ParseStrategy accepts the canonical names plus hyphenated or camel-cased
// variants ("fewest-transfers", "fewestTransfers").
func ParseStrategy(name string) (Strategy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("-", "_", " ", "_").Replace(n)
	if n == "fewesttransfers" {
		n = "fewest_transfers"
	}
	for i, s := range strategyNames {
		if s == n {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("router: unknown strategy %q", name)
}

// ParseStrategies parses a comma-separated list. An empty list yields nil.
func ParseStrategies(list string) ([]Strategy, error) {
	var out []Strategy
	seen := map[Strategy]bool{}
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		s, err := ParseStrategy(part)
		if err != nil {
			return nil, err
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out, nil
}

// Score reduces a cost vector to the scalar the search minimizes. Every score
// is Time plus non-negative terms, which keeps the time heuristic admissible.
func (s Strategy) Score(c RouteCosts) float64 {
	switch s {
	case Fastest:
		return c.Time
	case FewestTransfers:
		return c.Time + 100*float64(c.Transfers)
	case Comfort:
		return c.Time +
			15*float64(c.Transfers) +
			c.TransferDistance/40 +
			0.5*c.Crowding +
			5*float64(c.OperatorSwitches)
	default:
		return c.Time +
			8*float64(c.Transfers) +
			c.Fare/100 +
			3*float64(c.OperatorSwitches)
	}
}
