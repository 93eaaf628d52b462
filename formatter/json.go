package formatter

import (
	"encoding/json"
)

type responseBuilder struct{}

func newResponseBuilder() *responseBuilder { return &responseBuilder{} }

// NewResponseBuilder creates a new response builder for ranking responses
func NewResponseBuilder() *responseBuilder {
	return newResponseBuilder()
}

// BuildJSON serializes a ranking response to JSON
func (rb *responseBuilder) BuildJSON(res *RankingResponse) ([]byte, error) {
	return json.Marshal(res)
}

// Build serializes res as "xml" or, for any other format, JSON.
func (rb *responseBuilder) Build(res *RankingResponse, format string) ([]byte, error) {
	if format == FormatXML {
		return rb.BuildXML(res), nil
	}
	return rb.BuildJSON(res)
}
