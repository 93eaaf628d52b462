package railrank

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/losangeles1156/lutagu-mvp-sub001/disruption"
	"github.com/losangeles1156/lutagu-mvp-sub001/formatter"
	"github.com/losangeles1156/lutagu-mvp-sub001/router"
	"github.com/losangeles1156/lutagu-mvp-sub001/traffic"
	"github.com/losangeles1156/lutagu-mvp-sub001/utils"
)

func (s *Server) handleRoutesGet(format string) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := parseRankParams(c.Request.URL.Query(), s.defaultLocale(c))
		if err != nil {
			writeError(c, err, format)
			return
		}
		s.rank(c, req, format)
	}
}

func (s *Server) handleRoutesPost(c *gin.Context) {
	var body routeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, &QueryError{Msg: err.Error()}, formatter.FormatJSON)
		return
	}
	format := body.Format
	if format == "" {
		format = c.DefaultQuery("format", formatter.FormatJSON)
	}
	if format != formatter.FormatXML {
		format = formatter.FormatJSON
	}
	req, err := fromBody(body, s.defaultLocale(c))
	if err != nil {
		writeError(c, err, format)
		return
	}
	s.rank(c, req, format)
}

// defaultLocale prefers Accept-Language over the configured default.
func (s *Server) defaultLocale(c *gin.Context) string {
	if al := c.GetHeader("Accept-Language"); al != "" {
		return al
	}
	return s.cfg.Router.DefaultLocale
}

// conditions merges the live feed with conditions supplied by the request.
func (s *Server) conditions(extra []traffic.Condition) []traffic.Condition {
	live := s.feed.Conditions()
	if len(extra) == 0 {
		return live
	}
	return traffic.Merge(append(live, extra...))
}

func (s *Server) rank(c *gin.Context, req rankRequest, format string) {
	engine, err := s.engines.Get(req.Snapshot)
	if err != nil {
		writeError(c, err, format)
		return
	}

	loc := router.NewLocalizer(req.Locale)
	req.Locale = loc.Locale()

	// Request-supplied traffic is not part of the cache key.
	cacheable := len(req.Traffic) == 0
	trafficEpoch := s.feed.Timestamp()
	key := requestKey(req, engine.SnapshotID(), format, trafficEpoch)
	if cacheable {
		if buf, ok := s.cache.Get(key); ok {
			c.Header("X-Cache", "hit")
			writeBody(c, buf, format)
			return
		}
	}

	ctx := c.Request.Context()
	if ms := s.cfg.Server.QueryTimeoutMS; ms > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(ms)*time.Millisecond)
		defer cancel()
	}

	conds := s.conditions(req.Traffic)
	routes, err := engine.RankRoutes(ctx, router.Query{
		Origins:      req.Origins,
		Destinations: req.Destinations,
		MaxHops:      req.MaxHops,
		Locale:       req.Locale,
		Traffic:      conds,
		Strategies:   req.Strategies,
	})
	if err != nil {
		log.Printf("rank %s: %v", c.GetString(HeaderRequestID), err)
		writeError(c, err, format)
		return
	}

	validFor := 0
	if s.feed.Enabled() {
		validFor = s.cfg.Traffic.ReadIntervalMS
	}
	res := formatter.WrapRoutes(routes, engine.SnapshotID(), loc.Locale(),
		disruption.NewBlocklist(conds).RailwayIDs(), trafficEpoch, validFor)
	buf, err := s.renderer.Build(res, format)
	if err != nil {
		writeError(c, err, format)
		return
	}
	if cacheable {
		s.cache.Set(key, buf)
	}
	writeBody(c, buf, format)
}

type trafficResponse struct {
	Timestamp       string              `json:"timestamp,omitempty"`
	Conditions      []traffic.Condition `json:"conditions"`
	BlockedRailways []string            `json:"blockedRailways"`
}

func (s *Server) handleTraffic(c *gin.Context) {
	conds := s.feed.Conditions()
	if conds == nil {
		conds = []traffic.Condition{}
	}
	blocked := disruption.NewBlocklist(conds).RailwayIDs()
	if blocked == nil {
		blocked = []string{}
	}
	c.JSON(http.StatusOK, trafficResponse{
		Timestamp:       utils.Iso8601FromUnixSeconds(s.feed.Timestamp()),
		Conditions:      conds,
		BlockedRailways: blocked,
	})
}
