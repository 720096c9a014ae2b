package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"sip-planner/domain"
	"sip-planner/metrics"
	"sip-planner/repository"
)

// SimulateOptions controls presentation extras that are not part of the core result.
type SimulateOptions struct {
	IncludeMonthly bool
}

type SimulationService struct {
	repo    repository.SimulationRepository
	cache   repository.CacheRepository
	bounds  Bounds
	metrics *metrics.Registry
	now     func() time.Time
}

// NewSimulationService creates a SimulationService. repo, cache and m may be nil.
func NewSimulationService(
	repo repository.SimulationRepository,
	cache repository.CacheRepository,
	bounds Bounds,
	m *metrics.Registry,
) *SimulationService {
	return &SimulationService{
		repo:    repo,
		cache:   cache,
		bounds:  bounds,
		metrics: m,
		now:     time.Now,
	}
}

// Bounds returns the input ranges enforced by the service.
func (s *SimulationService) Bounds() Bounds {
	return s.bounds
}

// Simulate validates the plan against the service bounds, serves it from the
// cache when possible and records it in the recent-runs history.
func (s *SimulationService) Simulate(
	ctx context.Context,
	params domain.SimulationParameters,
	opts SimulateOptions,
) (domain.SimulationResult, error) {
	start := time.Now()
	result, cached, err := s.run(ctx, params)
	s.metrics.ObserveSimulation("simulate", err, time.Since(start))
	if err != nil {
		return domain.SimulationResult{}, err
	}

	if opts.IncludeMonthly {
		monthly, err := MonthlySeries(params)
		if err != nil {
			return domain.SimulationResult{}, err
		}
		result.MonthlySeries = monthly
	}

	// The history is informational; a failed save does not fail the request.
	if s.repo != nil {
		record := domain.SimulationRecord{
			ID:                  uuid.NewString(),
			CreatedAt:           s.now().UTC(),
			Params:              params,
			FinalPortfolioValue: result.FinalPortfolioValue,
			FinalInvested:       result.FinalInvested,
			CAGRPercent:         result.CAGRPercent,
			Cached:              cached,
		}
		if err := s.repo.Save(ctx, record); err != nil {
			log.Warn().Err(err).Msg("failed to save simulation record")
		}
	}

	return result, nil
}

// Recent lists up to limit recent simulations, newest first.
func (s *SimulationService) Recent(ctx context.Context, limit int) ([]domain.SimulationRecord, error) {
	if s.repo == nil {
		return []domain.SimulationRecord{}, nil
	}
	if limit <= 0 || limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	return s.repo.Recent(ctx, limit)
}

// run is the shared path for every service: bounds, cache, core.
func (s *SimulationService) run(
	ctx context.Context,
	params domain.SimulationParameters,
) (domain.SimulationResult, bool, error) {
	if err := s.bounds.Check(params); err != nil {
		return domain.SimulationResult{}, false, err
	}

	key, err := CacheKey(params)
	if err != nil {
		return domain.SimulationResult{}, false, err
	}

	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, key); ok {
			var result domain.SimulationResult
			err := json.Unmarshal([]byte(raw), &result)
			if err == nil {
				s.metrics.CacheLookup(true)
				log.Debug().Str("key", key).Msg("simulation served from cache")
				return result, true, nil
			}
			log.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
			s.metrics.CacheError("decode")
		}
		s.metrics.CacheLookup(false)
	}

	result, err := Simulate(params)
	if err != nil {
		return domain.SimulationResult{}, false, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(result); err != nil {
			log.Warn().Err(err).Msg("failed to encode simulation for cache")
			s.metrics.CacheError("encode")
		} else if err := s.cache.Set(ctx, key, string(raw)); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to cache simulation")
			s.metrics.CacheError("set")
		}
	}

	return result, false, nil
}

// CacheKey derives a stable key from the canonical JSON form of the parameters.
func CacheKey(params domain.SimulationParameters) (string, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("encode cache key: %w", err)
	}
	return fmt.Sprintf("sim:v1:%016x", xxhash.Sum64(raw)), nil
}
