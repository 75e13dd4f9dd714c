// internal/adapters/trip/client.go
package trip

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"trip_hotels/internal/adapters/observability"
	"trip_hotels/internal/domain"
)

// MaxBody caps a list page; larger bodies are rejected, not truncated.
const MaxBody = 8 << 20

// Browser-like headers; the list page serves a reduced document to unknown agents.
var headers = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.9",
	"Accept-Language": "en-US,en;q=0.9",
}

type Client struct {
	base    string
	hc      *http.Client
	rl      *rate.Limiter
	maxBody int64
}

func New(base string, timeout time.Duration, rps int) (*Client, error) {
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		base:    base,
		hc:      &http.Client{Timeout: timeout},
		rl:      rate.NewLimiter(rate.Limit(rps), 1),
		maxBody: MaxBody,
	}, nil
}

// ListURL is the hotel list page of one region.
func (c *Client) ListURL(r domain.Region) string {
	return c.base + "/hotels/list?city=" + strconv.FormatInt(r.ExternalID, 10)
}

// Fetch performs a single GET for the region's list page. There is no retry:
// a transport failure or non-2xx status is returned as *domain.FetchError.
func (c *Client) Fetch(ctx context.Context, r domain.Region) (domain.RawPage, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return domain.RawPage{}, &domain.FetchError{Region: r.Name, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ListURL(r), nil)
	if err != nil {
		return domain.RawPage{}, &domain.FetchError{Region: r.Name, Err: err}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("trip", "hotels_list", 0, time.Since(start))
		return domain.RawPage{}, &domain.FetchError{Region: r.Name, Err: err}
	}
	defer resp.Body.Close()
	observability.ObserveExternal("trip", "hotels_list", resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return domain.RawPage{Status: resp.StatusCode}, &domain.FetchError{Region: r.Name, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return domain.RawPage{}, &domain.FetchError{Region: r.Name, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(body)) > c.maxBody {
		return domain.RawPage{}, &domain.FetchError{Region: r.Name, Status: resp.StatusCode, Err: fmt.Errorf("body exceeds %d bytes", c.maxBody)}
	}
	return domain.RawPage{Body: body, Status: resp.StatusCode}, nil
}
