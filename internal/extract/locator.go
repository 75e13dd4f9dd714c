// Package extract pulls the embedded Next.js data block out of a list page
// and finds the hotel collection inside it.
package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"trip_hotels/internal/domain"
)

// DataSelector identifies the hydration script of a Next.js page.
const DataSelector = "script#__NEXT_DATA__"

// Locate parses the page as HTML and decodes the text of the first
// __NEXT_DATA__ script into a generic tree of map[string]any, []any,
// string, json.Number, bool and nil.
func Locate(page domain.RawPage) (any, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", domain.ErrNotFound, err)
	}

	sel := doc.Find(DataSelector).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: no %s element", domain.ErrNotFound, DataSelector)
	}
	raw := strings.TrimSpace(sel.Text())
	if raw == "" {
		return nil, fmt.Errorf("%w: empty %s element", domain.ErrNotFound, DataSelector)
	}
	return decodeTree(raw)
}

func decodeTree(raw string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("%w: decode data block: %v", domain.ErrNotFound, err)
	}
	// a single JSON value only
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after block", domain.ErrNotFound)
	}
	return tree, nil
}
