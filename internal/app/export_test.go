package app

import (
	"context"
	"time"
)

// SetPacing replaces the inter-region delay source and sleeper.
func (a *Aggregator) SetPacing(j func(lo, hi time.Duration) time.Duration, s func(ctx context.Context, d time.Duration) bool) {
	a.jitter = j
	a.sleep = s
}

var Jitter = jitter
