package railrank

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/losangeles1156/lutagu-mvp-sub001/config"
	"github.com/losangeles1156/lutagu-mvp-sub001/formatter"
	"github.com/losangeles1156/lutagu-mvp-sub001/traffic"
)

type responseRenderer interface {
	Build(res *formatter.RankingResponse, format string) ([]byte, error)
}

// Server answers ranking requests over HTTP.
type Server struct {
	cfg      config.AppConfig
	engines  *EngineRegistry
	feed     *traffic.Feed
	cache    *ResponseCache
	renderer responseRenderer
	router   *gin.Engine
	server   *http.Server
}

// NewServer wires the HTTP routes. feed may be nil when no live traffic
// source is configured.
func NewServer(cfg config.AppConfig, engines *EngineRegistry, feed *traffic.Feed) *Server {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}
	s := &Server{
		cfg:      cfg,
		engines:  engines,
		feed:     feed,
		cache:    NewResponseCache(cfg.Cache.Size, time.Duration(cfg.Cache.TTLSeconds)*time.Second),
		renderer: formatter.NewResponseBuilder(),
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), requestID(), corsMiddleware(cfg.Server.CORSOrigins))

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/traffic", s.handleTraffic)
	api.POST("/routes", s.handleRoutesPost)
	api.GET("/routes.json", s.handleRoutesGet(formatter.FormatJSON))
	api.GET("/routes.xml", s.handleRoutesGet(formatter.FormatXML))

	s.router = r
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens on the configured port in the background.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// HandleGracefulShutdown blocks until SIGINT or SIGTERM, then shuts down.
func (s *Server) HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	} else {
		log.Printf("server shut down successfully")
	}
}
