package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Match reports whether h satisfies every populated criterion of q. City is
// an exact case-insensitive match; Q and Amenities are substring matches.
func (q HotelsQuery) Match(h HotelRecord) bool {
	if q.City != "" && !strings.EqualFold(h.City, q.City) {
		return false
	}
	if q.Q != "" {
		needle := strings.ToLower(q.Q)
		hay := []string{h.Name, h.Location, h.City, h.Country, h.PropertyType}
		if !slices.ContainsFunc(hay, func(s string) bool {
			return strings.Contains(strings.ToLower(s), needle)
		}) {
			return false
		}
	}
	if q.MinPrice != nil && h.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && h.Price > *q.MaxPrice {
		return false
	}
	for _, want := range q.Amenities {
		want = strings.ToLower(want)
		if !slices.ContainsFunc(h.Amenities, func(a string) bool {
			return strings.Contains(strings.ToLower(a), want)
		}) {
			return false
		}
	}
	if len(q.Stars) > 0 && !slices.Contains(q.Stars, h.Stars) {
		return false
	}
	if len(q.PropertyTypes) > 0 && !slices.Contains(q.PropertyTypes, h.PropertyType) {
		return false
	}
	return true
}

// ListCachePrefix starts every HotelsQuery.CacheKey.
const ListCachePrefix = "hotels:"

// CacheKey is a stable key for caching the result of q.
func (q HotelsQuery) CacheKey() string {
	ptr := func(p *int) string {
		if p == nil {
			return "-"
		}
		return fmt.Sprint(*p)
	}
	return ListCachePrefix + fmt.Sprintf("q=%s:city=%s:stars=%v:price=%s-%s:amen=%s:type=%s:limit=%d",
		strings.ToLower(q.Q), strings.ToLower(q.City), q.Stars, ptr(q.MinPrice), ptr(q.MaxPrice),
		strings.ToLower(strings.Join(q.Amenities, ",")), strings.Join(q.PropertyTypes, ","), q.Limit)
}
