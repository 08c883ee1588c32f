package database

import (
	"context"
	"fmt"
	"time"

	"go-jobapply-automation/internal/listing"
	"go-jobapply-automation/internal/ratelimit"
)

// ---------------- RATE LIMIT OPERATIONS ----------------

func (r *Repository) LogRateLimit(ctx context.Context, host string, platform listing.Platform) error {
	_, err := r.db.Exec(ctx, `INSERT INTO rate_limits (ip, platform) VALUES ($1, $2)`, host, string(platform))
	if err != nil {
		return fmt.Errorf("failed to log rate limit: %w", err)
	}
	return nil
}

// RecentRateLimitAge returns the time since host was last blocked, on
// platform or, when platform is empty, anywhere.
func (r *Repository) RecentRateLimitAge(ctx context.Context, host string, platform listing.Platform) (time.Duration, error) {
	var last *time.Time
	err := r.db.QueryRow(ctx, `
		SELECT MAX(created_at) FROM rate_limits
		WHERE ip = $1::text AND ($2::text = '' OR platform = $2::text)`,
		host, string(platform)).Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("failed to read rate limits: %w", err)
	}
	if last == nil {
		return ratelimit.NoRecord, nil
	}
	return time.Since(*last), nil
}

var _ ratelimit.Tracker = (*Repository)(nil)
