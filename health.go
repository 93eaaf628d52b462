package railrank

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/losangeles1156/lutagu-mvp-sub001/utils"
)

type healthResponse struct {
	Status           string `json:"status"`
	SnapshotID       string `json:"snapshotId"`
	Stations         int    `json:"stations"`
	Edges            int    `json:"edges"`
	TrafficEnabled   bool   `json:"trafficEnabled"`
	TrafficTimestamp string `json:"trafficTimestamp,omitempty"`
	TrafficError     string `json:"trafficError,omitempty"`
	CachedResponses  int    `json:"cachedResponses"`
}

func (s *Server) handleHealth(c *gin.Context) {
	resp := healthResponse{
		Status:           "ok",
		SnapshotID:       s.engines.DefaultID(),
		TrafficEnabled:   s.feed.Enabled(),
		TrafficTimestamp: utils.Iso8601FromUnixSeconds(s.feed.Timestamp()),
		CachedResponses:  s.cache.Len(),
	}
	if e, err := s.engines.Get(""); err == nil {
		resp.Stations = e.Graph().StationCount()
		resp.Edges = e.Graph().EdgeCount()
	} else {
		resp.Status = "degraded"
	}
	if err := s.feed.LastError(); err != nil {
		resp.TrafficError = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}
