package router

import (
	"sort"
	"strings"
)

// FareTier charges Fare for rides of up to UpToHops hops.
type FareTier struct {
	UpToHops int `yaml:"upToHops" json:"upToHops"`
	Fare     int `yaml:"fare" json:"fare"`
}

// FareTable is one operator's distance-tiered fare, with distance measured in
// hops. Rides longer than the last tier add ExtraPerHop per hop.
type FareTable struct {
	Tiers       []FareTier `yaml:"tiers" json:"tiers"`
	ExtraPerHop int        `yaml:"extraPerHop" json:"extraPerHop"`
}

func defaultFareTables() map[string]FareTable {
	return map[string]FareTable{
		"tokyometro": {Tiers: []FareTier{{6, 180}, {11, 210}, {19, 260}, {27, 300}, {40, 330}}},
		"toei":       {Tiers: []FareTier{{5, 180}, {11, 220}, {19, 280}, {29, 330}, {49, 430}}},
		"jr-east":    {Tiers: []FareTier{{3, 150}, {6, 170}, {10, 210}, {15, 260}, {25, 320}, {35, 410}}, ExtraPerHop: 15},
		"tokyu":      {Tiers: []FareTier{{3, 140}, {7, 170}, {12, 200}, {20, 250}}, ExtraPerHop: 10},
		"odakyu":     {Tiers: []FareTier{{3, 140}, {7, 170}, {12, 210}, {20, 270}}, ExtraPerHop: 10},
	}
}

// Fare returns the fare for a ride of hops hops. The result never decreases as
// hops grows, even if the configured tiers are out of order.
func (t FareTable) Fare(hops int) int {
	if hops <= 0 || len(t.Tiers) == 0 {
		return 0
	}
	tiers := append([]FareTier(nil), t.Tiers...)
	sort.SliceStable(tiers, func(i, j int) bool { return tiers[i].UpToHops < tiers[j].UpToHops })
	running := 0
	for _, tier := range tiers {
		if tier.Fare > running {
			running = tier.Fare
		}
		if hops <= tier.UpToHops {
			return running
		}
	}
	last := tiers[len(tiers)-1]
	extra := t.ExtraPerHop
	if extra < 0 {
		extra = 0
	}
	return running + (hops-last.UpToHops)*extra
}

// BaseFare is the fare of the shortest ride.
func (t FareTable) BaseFare() int { return t.Fare(1) }

func (t Tuning) fareTable(operatorKey string) FareTable {
	if ft, ok := t.FareTables[strings.ToLower(operatorKey)]; ok && len(ft.Tiers) > 0 {
		return ft
	}
	return t.DefaultFare
}

// fareSegment is a maximal run of rides on one operator.
type fareSegment struct {
	operator string
	hops     int
}

// estimateFare sums the tiered fare of each operator segment.
func (t Tuning) estimateFare(segments []fareSegment) int {
	total := 0
	for _, s := range segments {
		total += t.fareTable(s.operator).Fare(s.hops)
	}
	return total
}
