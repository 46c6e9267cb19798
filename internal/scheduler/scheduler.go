// Package scheduler refreshes the cached deal lists on a cron schedule so
// that API requests are served from a warm cache.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"bonsplans/internal/adapters/observability"
	"bonsplans/internal/domain"
)

// Refresher re-aggregates one origin and stores the result.
type Refresher interface {
	Refresh(ctx context.Context, origin string) (int, domain.DealSource, error)
}

type Scheduler struct {
	cron    *cron.Cron
	r       Refresher
	origins []string
	spec    string // cron spec, e.g. "@every 6h"
	workers int64
}

func New(r Refresher, origins []string, spec string, workers int) *Scheduler {
	if workers < 1 {
		workers = 1
	}
	return &Scheduler{
		cron:    cron.New(),
		r:       r,
		origins: origins,
		spec:    spec,
		workers: int64(workers),
	}
}

// Start registers the job, starts the cron loop and runs one cycle right away.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc %q: %w", s.spec, err)
	}
	s.cron.Start()
	log.Info().Str("spec", s.spec).Strs("origins", s.origins).Msg("refresh scheduler started")

	go s.RunOnce(ctx)
	return nil
}

// Stop waits for a running cycle to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("refresh scheduler stopped")
}

// RunOnce refreshes every origin with at most `workers` in flight and returns
// how many origins were refreshed with live or popular results.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	sem := semaphore.NewWeighted(s.workers)
	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for _, origin := range s.origins {
		if ctx.Err() != nil {
			log.Warn().Err(ctx.Err()).Msg("refresh cycle cancelled")
			break
		}
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("refresh cycle cancelled")
			break
		}
		wg.Add(1)
		go func(origin string) {
			defer wg.Done()
			defer sem.Release(1)

			n, src, err := s.r.Refresh(ctx, origin)
			observability.ObserveDeals(src)
			if err != nil {
				log.Warn().Err(err).Str("origin", origin).Msg("refresh failed")
				return
			}
			if src == domain.SourceFallback {
				log.Warn().Str("origin", origin).Msg("refresh produced the fallback catalog, cache left untouched")
				return
			}
			mu.Lock()
			ok++
			mu.Unlock()
			log.Info().Str("origin", origin).Str("source", string(src)).Int("deals", n).Msg("refresh ok")
		}(origin)
	}
	wg.Wait()
	log.Info().Int("refreshed", ok).Int("origins", len(s.origins)).Msg("refresh cycle complete")
	return ok
}
