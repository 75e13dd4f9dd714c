package extract

import (
	"fmt"
	"strings"

	"trip_hotels/internal/domain"
)

// Strategy looks for the hotel collection in one known layout of the data block.
type Strategy struct {
	Name string
	Find func(tree any) ([]map[string]any, bool)
}

// PathStrategy follows object keys from the root to an array.
func PathStrategy(path ...string) Strategy {
	return Strategy{
		Name: strings.Join(path, "."),
		Find: func(tree any) ([]map[string]any, bool) {
			cur := tree
			for _, key := range path {
				obj, ok := cur.(map[string]any)
				if !ok {
					return nil, false
				}
				if cur, ok = obj[key]; !ok {
					return nil, false
				}
			}
			return objects(cur)
		},
	}
}

// objects keeps the object elements of an array; anything else yields false.
func objects(v any) ([]map[string]any, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]map[string]any, 0, len(arr))
	for _, el := range arr {
		if m, ok := el.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out, true
}

// DefaultStrategies are the layouts seen on the list page, most recent first.
// Support a new layout by appending here.
func DefaultStrategies() []Strategy {
	return []Strategy{
		PathStrategy("props", "pageProps", "listData", "hotelList"),
		PathStrategy("props", "pageProps", "initialState", "hotelList", "list"),
	}
}

type Resolver struct {
	strategies []Strategy
}

func NewResolver(strategies ...Strategy) *Resolver {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Resolver{strategies: strategies}
}

// Resolve returns the first non-empty collection found by the strategies, in order.
func (r *Resolver) Resolve(tree any) ([]map[string]any, error) {
	for _, s := range r.strategies {
		if items, ok := s.Find(tree); ok && len(items) > 0 {
			return items, nil
		}
	}
	return nil, fmt.Errorf("%w: no hotel list in %d known layouts", domain.ErrNotFound, len(r.strategies))
}
