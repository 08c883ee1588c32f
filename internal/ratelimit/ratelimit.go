// Package ratelimit remembers when a platform last blocked this host so the
// next run can sit out the cooldown.
package ratelimit

import (
	"context"
	"math"
	"time"

	"go-jobapply-automation/internal/listing"
)

// NoRecord is the age reported when the host was never blocked.
const NoRecord = time.Duration(math.MaxInt64)

// Tracker logs rate-limit blocks and reports how long ago the last one was.
// An empty platform means any platform.
type Tracker interface {
	LogRateLimit(ctx context.Context, host string, platform listing.Platform) error
	RecentRateLimitAge(ctx context.Context, host string, platform listing.Platform) (time.Duration, error)
}

// CoolingDown reports whether the last block is younger than cooldown.
func CoolingDown(ctx context.Context, t Tracker, host string, platform listing.Platform, cooldown time.Duration) (bool, time.Duration, error) {
	age, err := t.RecentRateLimitAge(ctx, host, platform)
	if err != nil {
		return false, 0, err
	}
	return age < cooldown, age, nil
}
