package domain

import "strings"

// HotelIDPrefix namespaces source ids in HotelRecord.ID.
const HotelIDPrefix = "trip-"

// Region is one listing scope on the source site.
type Region struct {
	Name       string
	ExternalID int64
}

// RawPage is a fetched listing page. Owned by the fetch -> locate handoff only.
type RawPage struct {
	Body   []byte
	Status int
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type RoomType struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Price     int      `json:"price"`
	Capacity  int      `json:"capacity"`
	Beds      string   `json:"beds"`
	Size      int      `json:"size"`
	Amenities []string `json:"amenities"`
	Image     string   `json:"image"`
	Available int      `json:"available"`
}

// HotelRecord is the canonical, fully defaulted output row. Field names and
// nesting are the contract with whatever persists the run.
type HotelRecord struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Location     string      `json:"location"`
	City         string      `json:"city"`
	Country      string      `json:"country"`
	Description  string      `json:"description"`
	Price        int         `json:"price"`
	Rating       float64     `json:"rating"`
	Reviews      int         `json:"reviews"`
	Stars        int         `json:"stars"`
	PropertyType string      `json:"propertyType"`
	Images       []string    `json:"images"`
	Amenities    []string    `json:"amenities"`
	RoomTypes    []RoomType  `json:"roomTypes"`
	Coordinates  Coordinates `json:"coordinates"`
}

// HasSourceID reports whether the listing carried its own id. Records without
// one all share the bare prefix as ID.
func (h HotelRecord) HasSourceID() bool {
	return strings.TrimPrefix(h.ID, HotelIDPrefix) != ""
}
