package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "trip_hotels/internal/adapters/redis"
	"trip_hotels/internal/app"
	"trip_hotels/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	hotels []domain.HotelRecord
	calls  int
}

func (f *fakeRepo) GetHotel(ctx context.Context, id string) (domain.HotelRecord, error) {
	f.calls++
	for _, h := range f.hotels {
		if h.ID == id {
			return h, nil
		}
	}
	return domain.HotelRecord{}, domain.ErrNotFound
}

func (f *fakeRepo) ListHotels(ctx context.Context, city string) ([]domain.HotelRecord, error) {
	f.calls++
	return f.hotels, nil
}

type fakeCache struct {
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.HotelRecord:
		*d = v.(domain.HotelRecord)
	case *domain.HotelsPage:
		*d = v.(domain.HotelsPage)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}
func (c *fakeCache) DelPrefix(ctx context.Context, prefix string) error {
	for k := range c.store {
		if strings.HasPrefix(k, prefix) {
			delete(c.store, k)
		}
	}
	return nil
}

func sample() []domain.HotelRecord {
	n := app.NewNormalizer("Cambodia")
	sr := domain.Region{Name: "Siem Reap", ExternalID: 33}
	return []domain.HotelRecord{
		n.Normalize(map[string]any{"hotelId": 1, "hotelName": "Angkor Palace", "star": 5, "displayPrice": map[string]any{"amount": 120}}, sr),
		n.Normalize(map[string]any{"hotelId": 2, "hotelName": "Pub Street Inn", "star": 3, "displayPrice": map[string]any{"amount": 25}}, sr),
		n.Normalize(map[string]any{"hotelId": 3, "hotelName": "Kep Sea Lodge", "star": 4}, kep),
	}
}

// ---- tests ----

func TestGetHotel_CacheMissThenHit(t *testing.T) {
	repo := &fakeRepo{hotels: sample()}
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, 10*time.Minute)

	h, err := q.GetHotel(context.Background(), "trip-1")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h.Name != "Angkor Palace" {
		t.Fatalf("unexpected hotel: %+v", h)
	}

	// mutate repo to ensure second read comes from cache
	repo.hotels[0].Name = "SHOULD NOT SEE THIS"

	h2, _ := q.GetHotel(context.Background(), "trip-1")
	if h2.Name != "Angkor Palace" || repo.calls != 1 {
		t.Fatalf("expected cached hotel, got %q after %d repo calls", h2.Name, repo.calls)
	}
}

func TestGetHotel_NotFound(t *testing.T) {
	q := app.NewQueryService(&fakeRepo{}, nil, time.Minute)
	if _, err := q.GetHotel(context.Background(), "trip-404"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListHotels_Filters(t *testing.T) {
	q := app.NewQueryService(&fakeRepo{hotels: sample()}, nil, time.Minute)
	ctx := context.Background()

	cases := []struct {
		name  string
		query domain.HotelsQuery
		want  []string
	}{
		{"all", domain.HotelsQuery{}, []string{"trip-1", "trip-2", "trip-3"}},
		{"search name", domain.HotelsQuery{Q: "angkor"}, []string{"trip-1"}},
		{"search city", domain.HotelsQuery{Q: "kep"}, []string{"trip-3"}},
		{"city exact", domain.HotelsQuery{City: "siem reap"}, []string{"trip-1", "trip-2"}},
		{"stars", domain.HotelsQuery{Stars: []int{4, 5}}, []string{"trip-1", "trip-3"}},
		{"price range", domain.HotelsQuery{MinPrice: ptr(30), MaxPrice: ptr(100)}, []string{"trip-3"}},
		{"amenities", domain.HotelsQuery{Amenities: []string{"pool", "concierge"}}, []string{"trip-1"}},
		{"type", domain.HotelsQuery{PropertyTypes: []string{"Resort"}}, nil},
		{"limit", domain.HotelsQuery{Limit: 2}, []string{"trip-1", "trip-2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := q.ListHotels(ctx, tc.query)
			if err != nil {
				t.Fatalf("err: %v", err)
			}
			var got []string
			for _, h := range page.Items {
				got = append(got, h.ID)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %v want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v want %v", got, tc.want)
				}
			}
		})
	}
}

func TestListHotels_TotalCountsBeyondLimit(t *testing.T) {
	q := app.NewQueryService(&fakeRepo{hotels: sample()}, nil, time.Minute)
	page, _ := q.ListHotels(context.Background(), domain.HotelsQuery{Limit: 1})
	if len(page.Items) != 1 || page.Total != 3 {
		t.Fatalf("items=%d total=%d", len(page.Items), page.Total)
	}
}

func TestListHotels_Cache(t *testing.T) {
	repo := &fakeRepo{hotels: sample()}
	q := app.NewQueryService(repo, &fakeCache{}, time.Minute)

	_, _ = q.ListHotels(context.Background(), domain.HotelsQuery{City: "Kep"})
	_, _ = q.ListHotels(context.Background(), domain.HotelsQuery{City: "Kep"})
	if repo.calls != 1 {
		t.Fatalf("expected second list to be cached, repo calls=%d", repo.calls)
	}
}

func TestEvictHotels_NextListSeesNewRun(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = cache.Close() })
	ctx := context.Background()

	all := sample()
	repo := &fakeRepo{hotels: all[:1]}
	q := app.NewQueryService(repo, cache, time.Minute)

	if page, _ := q.ListHotels(ctx, domain.HotelsQuery{}); page.Total != 1 {
		t.Fatalf("first run: total=%d", page.Total)
	}
	if _, err := q.GetHotel(ctx, "trip-1"); err != nil {
		t.Fatalf("get: %v", err)
	}
	_ = mr.Set("trip:unrelated", "keep")

	// second run rewrites the store
	repo.hotels = all
	if err := app.EvictHotels(ctx, cache, all); err != nil {
		t.Fatalf("evict: %v", err)
	}

	page, err := q.ListHotels(ctx, domain.HotelsQuery{})
	if err != nil || page.Total != len(all) {
		t.Fatalf("expected fresh list of %d, got total=%d err=%v", len(all), page.Total, err)
	}
	if mr.Exists("trip:" + app.HotelKey("trip-1")) {
		t.Fatalf("hotel key should be evicted")
	}
	if !mr.Exists("trip:unrelated") {
		t.Fatalf("eviction must stay within list and hotel keys")
	}
}
