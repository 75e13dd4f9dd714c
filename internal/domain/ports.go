package domain

import "context"

// PageFetcher retrieves the listing page of one region.
type PageFetcher interface {
	Fetch(ctx context.Context, r Region) (RawPage, error)
}

// HotelSink persists the records of a finished run.
type HotelSink interface {
	SaveHotels(ctx context.Context, hs []HotelRecord) error
}

// HotelReader backs the read API.
type HotelReader interface {
	GetHotel(ctx context.Context, id string) (HotelRecord, error)
	ListHotels(ctx context.Context, city string) ([]HotelRecord, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
	// DelPrefix drops every key starting with prefix.
	DelPrefix(ctx context.Context, prefix string) error
}

// Read models & queries
type HotelsQuery struct {
	Q             string
	City          string
	Stars         []int
	MinPrice      *int
	MaxPrice      *int
	Amenities     []string
	PropertyTypes []string
	Limit         int
}

type HotelsPage struct {
	Items []HotelRecord `json:"items"`
	Total int           `json:"total"`
}
