package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	railrank "github.com/losangeles1156/lutagu-mvp-sub001"
	"github.com/losangeles1156/lutagu-mvp-sub001/config"
	"github.com/losangeles1156/lutagu-mvp-sub001/disruption"
	"github.com/losangeles1156/lutagu-mvp-sub001/formatter"
	"github.com/losangeles1156/lutagu-mvp-sub001/internal"
	"github.com/losangeles1156/lutagu-mvp-sub001/router"
	"github.com/losangeles1156/lutagu-mvp-sub001/traffic"
)

func main() {
	mode := flag.String("mode", "serve", "serve|oneshot")
	format := flag.String("format", "json", "json|xml")
	from := flag.String("from", "", "comma-separated origin station ids (oneshot)")
	to := flag.String("to", "", "comma-separated destination station ids (oneshot)")
	locale := flag.String("locale", "", "output locale, e.g. en, ja, zh-TW, ko")
	strategy := flag.String("strategy", "", "comma-separated strategies (default all)")
	maxHops := flag.Int("maxHops", 0, "hop bound per search branch (0 uses config)")
	snapshot := flag.String("snapshot", "", "topology snapshot path (overrides config)")
	flag.Parse()

	internal.InitLogging()
	if err := config.LoadAppConfig(); err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg := config.Config
	if *snapshot != "" {
		cfg.Topology.SnapshotPath = *snapshot
		cfg.Topology.CachePath = ""
	}

	loader := newSnapshotLoader(cfg.Topology)
	snap, err := loader.load()
	if err != nil {
		log.Fatalf("topology: %v", err)
	}
	engine := router.NewEngine(snap, router.WithTuning(cfg.Router.Tuning))
	log.Printf("topology %s: %d stations, %d edges", snap.ID, engine.Graph().StationCount(), engine.Graph().EdgeCount())

	feed := newFeed(cfg.Traffic)

	switch *mode {
	case "oneshot":
		if feed.Enabled() {
			if err := feed.Refresh(context.Background()); err != nil {
				log.Printf("traffic refresh failed: %v", err)
			}
		}
		if err := oneshot(engine, feed, cfg, *format, *from, *to, *locale, *strategy, *maxHops); err != nil {
			log.Fatalf("oneshot: %v", err)
		}
	case "serve":
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if feed.Enabled() {
			go feed.Run(ctx, time.Duration(cfg.Traffic.ReadIntervalMS)*time.Millisecond)
		}
		engines := railrank.NewEngineRegistry(cfg.Cache.Engines, cfg.Router.Tuning, loader.source(snap.ID))
		engines.Add(engine)
		srv := railrank.NewServer(cfg, engines, feed)
		srv.Start()
		srv.HandleGracefulShutdown()
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func newFeed(cfg config.TrafficConfig) *traffic.Feed {
	client := traffic.NewClient(time.Duration(cfg.TimeoutMS) * time.Millisecond)
	return traffic.NewFeed(traffic.Sources{
		AlertsURL:             cfg.ServiceAlertsURL,
		TripUpdatesURL:        cfg.TripUpdatesURL,
		StatusURL:             cfg.StatusURL,
		Routes:                traffic.RouteMap(cfg.RouteMap),
		DelayThresholdMinutes: cfg.DelayThresholdMinutes,
	}, client)
}

func oneshot(engine *router.Engine, feed *traffic.Feed, cfg config.AppConfig, format, from, to, locale, strategy string, maxHops int) error {
	strategies, err := router.ParseStrategies(strategy)
	if err != nil {
		return err
	}
	if locale == "" {
		locale = cfg.Router.DefaultLocale
	}
	loc := router.NewLocalizer(locale)
	conds := feed.Conditions()

	ctx := context.Background()
	if ms := cfg.Server.QueryTimeoutMS; ms > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(ms)*time.Millisecond)
		defer cancel()
	}
	routes, err := engine.RankRoutes(ctx, router.Query{
		Origins:      splitCSV(from),
		Destinations: splitCSV(to),
		MaxHops:      maxHops,
		Locale:       loc.Locale(),
		Traffic:      conds,
		Strategies:   strategies,
	})
	if err != nil {
		return err
	}
	res := formatter.WrapRoutes(routes, engine.SnapshotID(), loc.Locale(),
		disruption.NewBlocklist(conds).RailwayIDs(), feed.Timestamp(), 0)
	buf, err := formatter.NewResponseBuilder().Build(res, format)
	if err != nil {
		return err
	}
	fmt.Println(string(buf))
	return nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

