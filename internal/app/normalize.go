package app

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"trip_hotels/internal/domain"
)

const (
	IDPrefix     = domain.HotelIDPrefix
	PropertyType = "Hotel"

	DefaultPrice   = 50
	DefaultRating  = 4.0
	DefaultReviews = 100
	DefaultStars   = 4
)

/********** alias registry (single source of truth) **********/

var hotelAliases = map[string][]string{
	"name":        {"hotelName", "name"},
	"id":          {"hotelId"},
	"location":    {"address"},
	"description": {"brief"},
	"price":       {"displayPrice.amount"},
	"rating":      {"commentScore"},
	"reviews":     {"commentCount"},
	"stars":       {"star"},
	"image":       {"imgUrl"},
	"lat":         {"lat"},
	"lng":         {"lon", "lng"},
}

var (
	baseAmenities = []string{"Free WiFi", "Air Conditioning", "Restaurant", "24-Hour Front Desk"}
	midAmenities  = []string{"Pool", "Spa", "Gym", "Bar"}
	topAmenities  = []string{"Concierge", "Room Service", "Airport Shuttle"}
)

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// stringOr: first non-blank string among the alias paths, else def.
func stringOr(m map[string]any, key, def string) string {
	for _, p := range hotelAliases[key] {
		if s, ok := lookupAny(m, p).(string); ok {
			if t := strings.TrimSpace(s); t != "" {
				return t
			}
		}
	}
	return def
}

// scalarString renders an id-like scalar; objects, arrays and null give "".
func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// toFloat accepts float64/int/json.Number and numeric strings like "4.8" or "8,0".
func toFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		x, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = x
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, ",", "."))
		if s == "" {
			return 0, false
		}
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = x
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

var thousands = regexp.MustCompile(`^\d{1,3}(,\d{3})+$`)

// toInt truncates toward zero. Commas are accepted only as thousands
// separators ("1,234"); any other comma makes the value unparseable.
func toInt(v any) (int, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if strings.Contains(s, ",") {
			if !thousands.MatchString(s) {
				return 0, false
			}
			s = strings.ReplaceAll(s, ",", "")
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
		v = s
	}
	f, ok := toFloat(v)
	if !ok || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// floatOr: first parseable non-negative number among the alias paths, else def.
func floatOr(m map[string]any, key string, def float64) float64 {
	for _, p := range hotelAliases[key] {
		if f, ok := toFloat(lookupAny(m, p)); ok && f >= 0 {
			return f
		}
	}
	return def
}

// intOr: like floatOr, truncated to int.
func intOr(m map[string]any, key string, def int) int {
	for _, p := range hotelAliases[key] {
		if n, ok := toInt(lookupAny(m, p)); ok && n >= 0 {
			return n
		}
	}
	return def
}

// coordOr: coordinates may legitimately be negative.
func coordOr(m map[string]any, key string) float64 {
	for _, p := range hotelAliases[key] {
		if f, ok := toFloat(lookupAny(m, p)); ok {
			return f
		}
	}
	return 0
}

/********** hotel normalizer **********/

// Normalizer maps raw list items onto HotelRecord. It never fails: every
// field has a default.
type Normalizer struct {
	Country string
}

func NewNormalizer(country string) *Normalizer {
	return &Normalizer{Country: country}
}

func (n *Normalizer) Normalize(item map[string]any, region domain.Region) domain.HotelRecord {
	name := stringOr(item, "name", "")
	srcID := ""
	for _, p := range hotelAliases["id"] {
		if srcID = scalarString(lookupAny(item, p)); srcID != "" {
			break
		}
	}

	// price only counts when displayPrice is an object
	price := DefaultPrice
	if _, ok := item["displayPrice"].(map[string]any); ok {
		price = intOr(item, "price", DefaultPrice)
	}
	stars := intOr(item, "stars", DefaultStars)

	images := []string{}
	img := stringOr(item, "image", "")
	if img != "" {
		images = append(images, img)
	}

	return domain.HotelRecord{
		ID:           IDPrefix + srcID,
		Name:         name,
		Location:     stringOr(item, "location", fmt.Sprintf("%s, %s", region.Name, n.Country)),
		City:         region.Name,
		Country:      n.Country,
		Description:  stringOr(item, "description", fmt.Sprintf("Experience a comfortable stay at %s in %s.", name, region.Name)),
		Price:        price,
		Rating:       floatOr(item, "rating", DefaultRating),
		Reviews:      intOr(item, "reviews", DefaultReviews),
		Stars:        stars,
		PropertyType: PropertyType,
		Images:       images,
		Amenities:    Amenities(stars),
		RoomTypes:    RoomTypes(srcID, price, img),
		Coordinates: domain.Coordinates{
			Lat: coordOr(item, "lat"),
			Lng: coordOr(item, "lng"),
		},
	}
}

// Amenities derives the amenity list from the star rating alone.
func Amenities(stars int) []string {
	out := append([]string(nil), baseAmenities...)
	if stars >= 4 {
		out = append(out, midAmenities...)
	}
	if stars == 5 {
		out = append(out, topAmenities...)
	}
	return out
}

// RoomTypes synthesizes the Standard and Deluxe variants. Deluxe is 1.5x the
// standard price, truncated.
func RoomTypes(srcID string, price int, image string) []domain.RoomType {
	return []domain.RoomType{
		{
			ID:        fmt.Sprintf("room-%s-1", srcID),
			Name:      "Standard Room",
			Price:     price,
			Capacity:  2,
			Beds:      "1 Queen Bed",
			Size:      25,
			Amenities: []string{"WiFi", "AC", "TV"},
			Image:     image,
			Available: 5,
		},
		{
			ID:        fmt.Sprintf("room-%s-2", srcID),
			Name:      "Deluxe Room",
			Price:     price * 3 / 2,
			Capacity:  2,
			Beds:      "1 King Bed",
			Size:      35,
			Amenities: []string{"WiFi", "AC", "TV", "Balcony"},
			Image:     image,
			Available: 3,
		},
	}
}
