package app

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"trip_hotels/internal/adapters/observability"
	"trip_hotels/internal/domain"
	"trip_hotels/internal/extract"
)

type Options struct {
	PerRegionCap int
	Workers      int
	MinDelay     time.Duration
	MaxDelay     time.Duration
	Country      string
}

// Aggregator runs fetch -> locate -> resolve -> normalize for every region and
// collects the records in region order.
type Aggregator struct {
	fetcher    domain.PageFetcher
	resolver   *extract.Resolver
	normalizer *Normalizer
	opts       Options

	// overridable in tests
	jitter func(lo, hi time.Duration) time.Duration
	sleep  func(ctx context.Context, d time.Duration) bool
}

func NewAggregator(f domain.PageFetcher, opts Options) *Aggregator {
	if opts.PerRegionCap <= 0 {
		opts.PerRegionCap = 20
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.MaxDelay < opts.MinDelay {
		opts.MaxDelay = opts.MinDelay
	}
	return &Aggregator{
		fetcher:    f,
		resolver:   extract.NewResolver(),
		normalizer: NewNormalizer(opts.Country),
		opts:       opts,
		jitter:     jitter,
		sleep:      sleepCtx,
	}
}

// WithResolver swaps the layout strategies used for every region.
func (a *Aggregator) WithResolver(r *extract.Resolver) *Aggregator {
	a.resolver = r
	return a
}

// Run scrapes regions with at most Workers in flight. A failing region is
// logged and contributes nothing; the others are unaffected. Output keeps the
// order of regions, then the order of the source list.
func (a *Aggregator) Run(ctx context.Context, regions []domain.Region) []domain.HotelRecord {
	runID := uuid.NewString()
	logger := log.With().Str("run", runID).Logger()
	logger.Info().Int("regions", len(regions)).Int("workers", a.opts.Workers).Msg("scrape starting")

	slots := make([][]domain.HotelRecord, len(regions))
	sem := semaphore.NewWeighted(int64(a.opts.Workers))
	var wg sync.WaitGroup

	for i, r := range regions {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			logger.Warn().Err(err).Str("region", r.Name).Msg("run canceled")
			break
		}

		wg.Add(1)
		go func(idx int, region domain.Region) {
			defer wg.Done()
			defer sem.Release(1)

			slots[idx] = a.scrapeRegion(ctx, region)

			// pace the source before this slot takes the next region
			if idx < len(regions)-1 {
				a.sleep(ctx, a.jitter(a.opts.MinDelay, a.opts.MaxDelay))
			}
		}(i, r)
	}
	wg.Wait()

	var out []domain.HotelRecord
	for _, recs := range slots {
		out = append(out, recs...)
	}
	if out == nil {
		out = []domain.HotelRecord{}
	}
	logger.Info().Int("records", len(out)).Msg("scrape completed")
	return out
}

func (a *Aggregator) scrapeRegion(ctx context.Context, r domain.Region) []domain.HotelRecord {
	l := log.With().Str("region", r.Name).Int64("city_id", r.ExternalID).Logger()
	l.Info().Msg("scraping region")

	page, err := a.fetcher.Fetch(ctx, r)
	if err != nil {
		l.Warn().Err(err).Str("stage", "fetch").Str("err_type", observability.LabelErr(err)).Msg("region skipped")
		observability.ObserveRegion(r.Name, "fetch", 0)
		return nil
	}

	tree, err := extract.Locate(page)
	if err != nil {
		l.Warn().Err(err).Str("stage", "locate").Msg("region skipped")
		observability.ObserveRegion(r.Name, "locate", 0)
		return nil
	}

	items, err := a.resolver.Resolve(tree)
	if err != nil {
		l.Warn().Err(err).Str("stage", "resolve").Msg("region skipped")
		observability.ObserveRegion(r.Name, "resolve", 0)
		return nil
	}

	if len(items) > a.opts.PerRegionCap {
		items = items[:a.opts.PerRegionCap]
	}
	out := make([]domain.HotelRecord, 0, len(items))
	for _, it := range items {
		out = append(out, a.normalizer.Normalize(it, r))
	}

	l.Info().Int("found", len(items)).Int("records", len(out)).Msg("region scraped")
	observability.ObserveRegion(r.Name, "ok", len(out))
	return out
}

// jitter picks a uniform duration in [lo, hi].
func jitter(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(rand.Int63n(int64(hi-lo+1)))
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
