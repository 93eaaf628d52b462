package router

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/losangeles1156/lutagu-mvp-sub001/topology"
)

// phrases is the step text and strategy labels of one locale.
type phrases struct {
	depart   string // station
	ride     string // railway, destination station, stops
	transfer string // station, railway
	walk     string // from station, to station
	arrive   string // station
	labels   [4]string
}

var supportedTags = []language.Tag{
	language.English,
	language.Japanese,
	language.TraditionalChinese,
	language.SimplifiedChinese,
	language.Korean,
}

// localeKeys are the LocalizedText keys matching supportedTags.
var localeKeys = []string{"en", "ja", "zh-Hant", "zh-Hans", "ko"}

var localeMatcher = language.NewMatcher(supportedTags)

var phraseTable = map[string]phrases{
	"en": {
		depart:   "Depart from %s",
		ride:     "Take the %s to %s (%d stops)",
		transfer: "Transfer at %s to the %s",
		walk:     "Walk from %s to %s",
		arrive:   "Arrive at %s",
		labels:   [4]string{"Recommended", "Fastest", "Fewest transfers", "Most comfortable"},
	},
	"ja": {
		depart:   "%sから出発",
		ride:     "%sに乗車し%sまで（%d駅）",
		transfer: "%sで%sに乗り換え",
		walk:     "%sから%sまで徒歩",
		arrive:   "%sに到着",
		labels:   [4]string{"おすすめ", "最速", "乗り換え最少", "快適"},
	},
	"zh-Hant": {
		depart:   "從%s出發",
		ride:     "搭乘%s至%s（%d站）",
		transfer: "在%s轉乘%s",
		walk:     "從%s步行至%s",
		arrive:   "抵達%s",
		labels:   [4]string{"推薦", "最快", "最少轉乘", "最舒適"},
	},
	"zh-Hans": {
		depart:   "从%s出发",
		ride:     "乘坐%s至%s（%d站）",
		transfer: "在%s换乘%s",
		walk:     "从%s步行至%s",
		arrive:   "到达%s",
		labels:   [4]string{"推荐", "最快", "最少换乘", "最舒适"},
	},
	"ko": {
		depart:   "%s에서 출발",
		ride:     "%s 탑승, %s까지 (%d개 역)",
		transfer: "%s에서 %s(으)로 환승",
		walk:     "%s에서 %s까지 도보",
		arrive:   "%s 도착",
		labels:   [4]string{"추천", "최단 시간", "최소 환승", "편안한 경로"},
	},
}

// Localizer resolves titles and step text for one canonical locale.
type Localizer struct {
	key   string
	chain []string
	p     phrases
}

// NewLocalizer matches locale (a BCP 47 tag or an Accept-Language value)
// against the supported locales. Unparseable or unsupported input falls back
// to English.
func NewLocalizer(locale string) *Localizer {
	idx := 0
	if tags, _, err := language.ParseAcceptLanguage(locale); err == nil && len(tags) > 0 {
		_, i, conf := localeMatcher.Match(tags...)
		if conf != language.No {
			idx = i
		}
	}
	key := localeKeys[idx]
	base, _ := supportedTags[idx].Base()
	l := &Localizer{key: key, p: phraseTable[key]}
	seen := map[string]bool{}
	for _, k := range []string{key, base.String(), "en", "ja", topology.UndeterminedLocale} {
		if !seen[k] {
			seen[k] = true
			l.chain = append(l.chain, k)
		}
	}
	return l
}

// Locale returns the canonical locale key ("en", "ja", "zh-Hant", "zh-Hans", "ko").
func (l *Localizer) Locale() string { return l.key }

// Title picks the best title for the locale, falling back through English,
// Japanese and untagged titles to the trailing segment of id.
func (l *Localizer) Title(t topology.LocalizedText, id string) string {
	for _, k := range l.chain {
		if v := t[k]; v != "" {
			return v
		}
	}
	return topology.TrailingSegment(id)
}

// StrategyLabel returns the display label of s.
func (l *Localizer) StrategyLabel(s Strategy) string {
	if !s.Valid() {
		return s.String()
	}
	return l.p.labels[s]
}

func (l *Localizer) departText(station string) string { return fmt.Sprintf(l.p.depart, station) }

func (l *Localizer) rideText(railway, to string, stops int) string {
	return fmt.Sprintf(l.p.ride, railway, to, stops)
}

func (l *Localizer) transferText(station, railway string) string {
	return fmt.Sprintf(l.p.transfer, station, railway)
}

func (l *Localizer) walkText(from, to string) string { return fmt.Sprintf(l.p.walk, from, to) }

func (l *Localizer) arriveText(station string) string { return fmt.Sprintf(l.p.arrive, station) }
