// Package fixtures builds small Tokyo topologies for tests.
package fixtures

import (
	"os"
	"path/filepath"

	"github.com/losangeles1156/lutagu-mvp-sub001/topology"
)

// Railway and station ids used across fixtures.
const (
	Yamanote   = "odpt.Railway:JR-East.Yamanote"
	Marunouchi = "odpt.Railway:TokyoMetro.Marunouchi"
	ChuoLocal  = "odpt.Railway:JR-East.ChuoLocal"
	ChuoRapid  = "odpt.Railway:JR-East.ChuoRapid"

	JRShinjuku    = "odpt.Station:JR-East.Yamanote.Shinjuku"
	JRTokyo       = "odpt.Station:JR-East.Yamanote.Tokyo"
	JRShibuya     = "odpt.Station:JR-East.Yamanote.Shibuya"
	MetroShinjuku = "odpt.Station:TokyoMetro.Marunouchi.Shinjuku"
	MetroTokyo    = "odpt.Station:TokyoMetro.Marunouchi.Tokyo"
	MetroGinza    = "odpt.Station:TokyoMetro.Marunouchi.Ginza"
)

// GetTestDataPath returns the absolute path of the repository testdata directory.
func GetTestDataPath() string {
	wd, _ := os.Getwd()
	for {
		p := filepath.Join(wd, "testdata")
		if _, err := os.Stat(p); err == nil {
			return p
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			panic("could not find testdata directory")
		}
		wd = parent
	}
}

type stop struct {
	name     string
	ja       string
	lat, lon float64
}

func line(id, operator string, title topology.LocalizedText, stops []stop) topology.RailwayTopology {
	r := topology.RailwayTopology{Operator: operator, ID: id, Title: title}
	seg := topology.TrailingSegment(id)
	op := topology.OperatorKey(id)
	for _, s := range stops {
		ref := topology.StationRef{
			ID:    topology.StationID("odpt.Station:" + op + "." + seg + "." + s.name),
			Title: topology.LocalizedText{"en": s.name, "ja": s.ja},
		}
		if s.lat != 0 {
			lat, lon := s.lat, s.lon
			ref.Lat, ref.Lon = &lat, &lon
		}
		r.Stations = append(r.Stations, ref)
	}
	return r
}

var yamanoteStops = []stop{
	{"Tokyo", "東京", 35.6812, 139.7671},
	{"Yurakucho", "有楽町", 35.6751, 139.7630},
	{"Shimbashi", "新橋", 35.6663, 139.7583},
	{"Hamamatsucho", "浜松町", 35.6555, 139.7571},
	{"Shinagawa", "品川", 35.6285, 139.7388},
	{"Osaki", "大崎", 35.6197, 139.7283},
	{"Gotanda", "五反田", 35.6262, 139.7236},
	{"Ebisu", "恵比寿", 35.6467, 139.7101},
	{"Shibuya", "渋谷", 35.6580, 139.7016},
	{"Harajuku", "原宿", 35.6702, 139.7027},
	{"Yoyogi", "代々木", 35.6830, 139.7020},
	{"Shinjuku", "新宿", 35.6896, 139.7006},
	{"Takadanobaba", "高田馬場", 35.7126, 139.7038},
	{"Ikebukuro", "池袋", 35.7295, 139.7109},
	{"Otsuka", "大塚", 35.7318, 139.7286},
	{"Sugamo", "巣鴨", 35.7334, 139.7393},
	{"Nippori", "日暮里", 35.7281, 139.7710},
	{"Ueno", "上野", 35.7138, 139.7773},
	{"Akihabara", "秋葉原", 35.6984, 139.7731},
	{"Kanda", "神田", 35.6918, 139.7709},
	{"Tokyo", "東京", 35.6812, 139.7671},
}

var marunouchiStops = []stop{
	{"Shinjuku", "新宿", 35.6925, 139.7003},
	{"ShinjukuSanchome", "新宿三丁目", 35.6909, 139.7049},
	{"Yotsuya", "四ツ谷", 35.6847, 139.7301},
	{"AkasakaMitsuke", "赤坂見附", 35.6770, 139.7371},
	{"KokkaiGijidomae", "国会議事堂前", 35.6741, 139.7450},
	{"Kasumigaseki", "霞ケ関", 35.6735, 139.7510},
	{"Ginza", "銀座", 35.6717, 139.7650},
	{"Tokyo", "東京", 35.6813, 139.7660},
}

func mustNormalize(snap *topology.Snapshot) *topology.Snapshot {
	if err := snap.Normalize(); err != nil {
		panic(err)
	}
	return snap
}

// YamanoteOnly is the Yamanote loop and nothing else.
func YamanoteOnly() *topology.Snapshot {
	return mustNormalize(&topology.Snapshot{
		ID: "yamanote",
		Railways: []topology.RailwayTopology{
			line(Yamanote, "odpt.Operator:JR-East", topology.LocalizedText{"en": "Yamanote Line", "ja": "山手線"}, yamanoteStops),
		},
	})
}

// TokyoCore is the Yamanote loop plus the Marunouchi line between Shinjuku and
// Tokyo, with transfer metadata and hub buffers at both ends.
func TokyoCore() *topology.Snapshot {
	signage := 0.5
	return mustNormalize(&topology.Snapshot{
		ID: "tokyo-core",
		Railways: []topology.RailwayTopology{
			line(Yamanote, "odpt.Operator:JR-East", topology.LocalizedText{"en": "Yamanote Line", "ja": "山手線"}, yamanoteStops),
			line(Marunouchi, "odpt.Operator:TokyoMetro", topology.LocalizedText{"en": "Marunouchi Line", "ja": "丸ノ内線", "zh-Hant": "丸之內線"}, marunouchiStops),
		},
		Transfers: []topology.TransferInfo{
			{
				Station:         JRShinjuku,
				TargetRailway:   Marunouchi,
				DistanceMeters:  250,
				FloorDifference: 2,
				VerticalAccess:  "stairs",
				Turns:           3,
				SignageClarity:  &signage,
				CrowdLevel:      0.8,
			},
			{
				Station:        MetroTokyo,
				TargetRailway:  Yamanote,
				DistanceMeters: 200,
				BasePainIndex:  30,
			},
		},
		HubBuffers: map[string]float64{"Shinjuku": 3, "Tokyo": 2},
	})
}

// Chuo station ids of RapidOverlay.
const (
	LocalA = "odpt.Station:JR-East.ChuoLocal.A"
	LocalF = "odpt.Station:JR-East.ChuoLocal.F"
	RapidA = "odpt.Station:JR-East.ChuoRapid.RapidA"
	RapidF = "odpt.Station:JR-East.ChuoRapid.RapidF"
)

// RapidOverlay is a six-station local line with a rapid pattern that stops
// only at the two ends, aliased to the local stations.
func RapidOverlay() *topology.Snapshot {
	local := topology.RailwayTopology{
		Operator: "odpt.Operator:JR-East",
		ID:       ChuoLocal,
		Title:    topology.LocalizedText{"en": "Chuo Local"},
	}
	for _, n := range []string{"A", "B", "C", "D", "E", "F"} {
		local.Stations = append(local.Stations, topology.StationRef{
			ID:    topology.StationID("odpt.Station:JR-East.ChuoLocal." + n),
			Title: topology.LocalizedText{"en": "Station " + n},
		})
	}
	return mustNormalize(&topology.Snapshot{
		ID:       "rapid-overlay",
		Railways: []topology.RailwayTopology{local},
		Rapid: []topology.RapidPattern{{
			RailwayID:      ChuoRapid,
			Title:          topology.LocalizedText{"en": "Chuo Rapid"},
			Stops:          []topology.StationID{RapidA, RapidF},
			MinutesPerEdge: 3,
			Aliases: map[topology.StationID][]topology.StationID{
				RapidA: {LocalA},
				RapidF: {LocalF},
			},
		}},
	})
}
