package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"sip-planner/config"
	"sip-planner/metrics"
	"sip-planner/report"
	"sip-planner/repository"
	"sip-planner/service"
)

// app holds the wired services shared by every subcommand.
type app struct {
	cfg        *config.Config
	metrics    *metrics.Registry
	formatter  *report.Formatter
	simulation *service.SimulationService
	comparison *service.ComparisonService
	goal       *service.GoalService
	explainer  *service.ExplanationService
	closers    []io.Closer
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	formatter, err := report.NewFormatter(cfg.Currency)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:       cfg,
		metrics:   metrics.NewRegistry(),
		formatter: formatter,
	}

	var cache repository.CacheRepository
	switch cfg.Cache.Backend {
	case "redis":
		rc := repository.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.TTL)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := rc.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("redis unavailable, using memory cache")
			rc.Close()
			cache = repository.NewMemoryCache(cfg.Cache.TTL)
		} else {
			cache = rc
			a.closers = append(a.closers, rc)
		}
	case "memory":
		cache = repository.NewMemoryCache(cfg.Cache.TTL)
	}
	log.Debug().Str("backend", cfg.Cache.Backend).Msg("result cache ready")

	repo := repository.NewSimulationRepositoryMemory(cfg.History.Size)

	a.simulation = service.NewSimulationService(repo, cache, cfg.Bounds, a.metrics)
	a.comparison = service.NewComparisonService(a.simulation)
	a.goal = service.NewGoalService(a.simulation)
	a.explainer = service.NewExplanationService(formatter)
	return a, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			log.Warn().Err(err).Msg("close failed")
		}
	}
}

// printMarkdown renders markdown with glamour when w is a terminal and
// prints it raw otherwise.
func printMarkdown(w io.Writer, md string) {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		width, _, err := term.GetSize(int(f.Fd()))
		if err != nil || width <= 0 {
			width = 100
		}
		out, err := report.RenderTerminal(md, width, "")
		if err == nil {
			fmt.Fprint(w, out)
			return
		}
		log.Warn().Err(err).Msg("markdown rendering failed, printing raw")
	}
	fmt.Fprint(w, md)
}
