package railrank

import (
	"strconv"
	"strings"

	"github.com/losangeles1156/lutagu-mvp-sub001/router"
	"github.com/losangeles1156/lutagu-mvp-sub001/traffic"
)

// QueryError reports a malformed request parameter.
type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

// routeBody is the JSON body of POST /api/routes.
type routeBody struct {
	Origins      []string            `json:"origins" binding:"required,min=1,dive,required"`
	Destinations []string            `json:"destinations" binding:"required,min=1,dive,required"`
	MaxHops      int                 `json:"maxHops" binding:"gte=0"`
	Locale       string              `json:"locale"`
	Strategies   []string            `json:"strategies"`
	Snapshot     string              `json:"snapshot"`
	Format       string              `json:"format" binding:"omitempty,oneof=json xml"`
	Traffic      []traffic.Condition `json:"traffic"`
}

// rankRequest is a validated ranking request.
type rankRequest struct {
	Origins      []string
	Destinations []string
	MaxHops      int
	Locale       string
	Strategies   []router.Strategy
	Snapshot     string
	Traffic      []traffic.Condition
}

func parseNonNegativeInt(s string) (int, error) {
	if s == "" {
		return -1, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return -1, &QueryError{Msg: "Numeric parameter must be a non-negative integer."}
	}
	return v, nil
}

// splitList splits comma separated station lists and drops blanks.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// parseRankParams validates query-string parameters: from, to (repeatable or
// comma separated), maxHops, locale, strategy and snapshot.
func parseRankParams(params map[string][]string, defaultLocale string) (rankRequest, error) {
	first := func(k string) string {
		if v := params[k]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}
	req := rankRequest{
		Origins:      splitList(params["from"]),
		Destinations: splitList(params["to"]),
		Locale:       first("locale"),
		Snapshot:     first("snapshot"),
	}
	if len(req.Origins) == 0 {
		return rankRequest{}, &QueryError{Msg: "You must provide at least one origin (from)."}
	}
	if len(req.Destinations) == 0 {
		return rankRequest{}, &QueryError{Msg: "You must provide at least one destination (to)."}
	}
	hops, err := parseNonNegativeInt(first("maxHops"))
	if err != nil {
		return rankRequest{}, err
	}
	if hops > 0 {
		req.MaxHops = hops
	}
	strategies, err := router.ParseStrategies(first("strategy"))
	if err != nil {
		return rankRequest{}, &QueryError{Msg: err.Error()}
	}
	req.Strategies = strategies
	if req.Locale == "" {
		req.Locale = defaultLocale
	}
	return req, nil
}

// fromBody validates a decoded POST body.
func fromBody(b routeBody, defaultLocale string) (rankRequest, error) {
	req := rankRequest{
		Origins:      splitList(b.Origins),
		Destinations: splitList(b.Destinations),
		MaxHops:      b.MaxHops,
		Locale:       strings.TrimSpace(b.Locale),
		Snapshot:     strings.TrimSpace(b.Snapshot),
		Traffic:      b.Traffic,
	}
	strategies, err := router.ParseStrategies(strings.Join(b.Strategies, ","))
	if err != nil {
		return rankRequest{}, &QueryError{Msg: err.Error()}
	}
	req.Strategies = strategies
	if req.Locale == "" {
		req.Locale = defaultLocale
	}
	return req, nil
}
