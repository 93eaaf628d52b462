package formatter

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/losangeles1156/lutagu-mvp-sub001/itinerary"
	"github.com/losangeles1156/lutagu-mvp-sub001/utils"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatXML  = "xml"
)

// RankingResponse is the envelope of one ranking answer.
type RankingResponse struct {
	ResponseTimestamp string                  `json:"responseTimestamp"`
	ValidUntil        string                  `json:"validUntil,omitempty"`
	SnapshotID        string                  `json:"snapshotId"`
	Locale            string                  `json:"locale"`
	TrafficTimestamp  string                  `json:"trafficTimestamp,omitempty"`
	BlockedRailways   []string                `json:"blockedRailways,omitempty"`
	Routes            []itinerary.RouteOption `json:"routes"`
}

// WrapRoutes builds a response envelope. trafficEpoch is the live feed
// timestamp (0 when no feed), validForMS how long clients may reuse the answer.
func WrapRoutes(routes []itinerary.RouteOption, snapshotID, locale string, blocked []string, trafficEpoch int64, validForMS int) *RankingResponse {
	if routes == nil {
		routes = []itinerary.RouteOption{}
	}
	res := &RankingResponse{
		ResponseTimestamp: utils.Iso8601Now(),
		SnapshotID:        snapshotID,
		Locale:            locale,
		BlockedRailways:   blocked,
		Routes:            routes,
		TrafficTimestamp:  utils.Iso8601FromUnixSeconds(trafficEpoch),
	}
	if validForMS > 0 {
		res.ValidUntil = utils.ValidUntilFrom(time.Now().Unix(), validForMS)
	}
	return res
}

// ErrorPayload is the body of every error response.
type ErrorPayload struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries a machine-readable code and a message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BuildErrorPayload renders an error in the requested format.
func BuildErrorPayload(code, msg, format string) []byte {
	if format == FormatXML {
		var b strings.Builder
		b.WriteString("<Error>")
		b.WriteString("<Code>")
		b.WriteString(xmlEscape(code))
		b.WriteString("</Code>")
		b.WriteString("<Message>")
		b.WriteString(xmlEscape(msg))
		b.WriteString("</Message>")
		b.WriteString("</Error>")
		return []byte(b.String())
	}
	b, _ := json.Marshal(ErrorPayload{Error: ErrorBody{Code: code, Message: msg}})
	return b
}
