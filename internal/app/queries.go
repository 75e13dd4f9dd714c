package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trip_hotels/internal/domain"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type QueryService struct {
	repo     domain.HotelReader
	cache    domain.Cache
	cacheTTL time.Duration
}

// NewQueryService wires a reader with an optional cache (nil disables caching).
func NewQueryService(r domain.HotelReader, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func HotelKey(id string) string { return fmt.Sprintf("hotel:%s", id) }

// EvictHotels drops cached reads made stale by a new run: each rewritten
// hotel and every cached list page.
func EvictHotels(ctx context.Context, c domain.Cache, hs []domain.HotelRecord) error {
	var errs []error
	for _, h := range hs {
		if err := c.Del(ctx, HotelKey(h.ID)); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.DelPrefix(ctx, domain.ListCachePrefix); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *QueryService) GetHotel(ctx context.Context, id string) (domain.HotelRecord, error) {
	key := HotelKey(id)
	var h domain.HotelRecord
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &h); ok {
			return h, nil
		}
	}
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.HotelRecord{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	}
	return h, nil
}

// ListHotels narrows by city in the store, then applies the remaining
// criteria of q in memory. Limit is clamped to 1..MaxListLimit.
func (s *QueryService) ListHotels(ctx context.Context, q domain.HotelsQuery) (domain.HotelsPage, error) {
	switch {
	case q.Limit <= 0:
		q.Limit = DefaultListLimit
	case q.Limit > MaxListLimit:
		q.Limit = MaxListLimit
	}

	key := q.CacheKey()
	var out domain.HotelsPage
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}

	all, err := s.repo.ListHotels(ctx, q.City)
	if err != nil {
		return domain.HotelsPage{}, err
	}
	out.Items = make([]domain.HotelRecord, 0, min(len(all), q.Limit))
	for _, h := range all {
		if !q.Match(h) {
			continue
		}
		out.Total++
		if len(out.Items) < q.Limit {
			out.Items = append(out.Items, h)
		}
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}
