package formatter

import (
	"strconv"
	"strings"

	"github.com/losangeles1156/lutagu-mvp-sub001/itinerary"
)

// BuildXML serializes a ranking response to XML
func (rb *responseBuilder) BuildXML(res *RankingResponse) []byte {
	var b strings.Builder
	b.WriteString("<RouteRanking>")
	writeElem(&b, "ResponseTimestamp", res.ResponseTimestamp)
	writeElem(&b, "ValidUntil", res.ValidUntil)
	writeElem(&b, "SnapshotId", res.SnapshotID)
	writeElem(&b, "Locale", res.Locale)
	writeElem(&b, "TrafficTimestamp", res.TrafficTimestamp)
	if len(res.BlockedRailways) > 0 {
		b.WriteString("<BlockedRailways>")
		for _, r := range res.BlockedRailways {
			writeElem(&b, "RailwayRef", r)
		}
		b.WriteString("</BlockedRailways>")
	}
	b.WriteString("<Routes>")
	for _, r := range res.Routes {
		writeRouteXML(&b, r)
	}
	b.WriteString("</Routes>")
	b.WriteString("</RouteRanking>")
	return []byte(b.String())
}

func writeRouteXML(b *strings.Builder, r itinerary.RouteOption) {
	b.WriteString("<RouteOption strategy=\"")
	b.WriteString(xmlEscape(r.Strategy))
	b.WriteString("\">")
	writeElem(b, "Label", r.Label)
	b.WriteString("<Fare>")
	b.WriteString(strconv.Itoa(r.Fare))
	b.WriteString("</Fare>")
	b.WriteString("<DurationMinutes>")
	b.WriteString(strconv.Itoa(r.DurationMinutes))
	b.WriteString("</DurationMinutes>")
	b.WriteString("<Transfers>")
	b.WriteString(strconv.Itoa(r.Transfers))
	b.WriteString("</Transfers>")
	b.WriteString("<Railways>")
	for _, id := range r.RailwayIDs {
		writeElem(b, "RailwayRef", id)
	}
	b.WriteString("</Railways>")
	b.WriteString("<Steps>")
	for _, s := range r.Steps {
		writeStepXML(b, s)
	}
	b.WriteString("</Steps>")
	if a := r.Advisory; a != nil {
		b.WriteString("<Advisory>")
		b.WriteString("<TransferPainIndex>")
		b.WriteString(strconv.FormatFloat(a.TransferPainIndex, 'f', 1, 64))
		b.WriteString("</TransferPainIndex>")
		b.WriteString("<CascadeDelayRisk>")
		b.WriteString(strconv.FormatFloat(a.CascadeDelayRisk, 'f', 1, 64))
		b.WriteString("</CascadeDelayRisk>")
		writeElem(b, "RiskLevel", a.RiskLevel)
		b.WriteString("</Advisory>")
	}
	b.WriteString("</RouteOption>")
}

func writeStepXML(b *strings.Builder, s itinerary.RouteStep) {
	b.WriteString("<Step kind=\"")
	b.WriteString(xmlEscape(string(s.Kind)))
	b.WriteString("\">")
	writeElem(b, "Text", s.Text)
	writeElem(b, "StationRef", s.StationID)
	writeElem(b, "ToStationRef", s.ToStationID)
	writeElem(b, "RailwayRef", s.RailwayID)
	writeElem(b, "Operator", s.Operator)
	if s.Stops > 0 {
		b.WriteString("<Stops>")
		b.WriteString(strconv.Itoa(s.Stops))
		b.WriteString("</Stops>")
	}
	if s.Minutes > 0 {
		b.WriteString("<Minutes>")
		b.WriteString(strconv.Itoa(s.Minutes))
		b.WriteString("</Minutes>")
	}
	if s.WalkMeters > 0 {
		b.WriteString("<WalkMeters>")
		b.WriteString(strconv.FormatFloat(s.WalkMeters, 'f', 0, 64))
		b.WriteString("</WalkMeters>")
	}
	b.WriteString("</Step>")
}

// writeElem writes <name>value</name>, skipping empty values.
func writeElem(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString("<")
	b.WriteString(name)
	b.WriteString(">")
	b.WriteString(xmlEscape(value))
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">")
}

func xmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(s)
}
