package database

import (
	"fmt"

	"go-jobapply-automation/internal/listing"
)

// Verdict tables, one per classification scope. Applications and rate
// limits live in fixed tables named in their queries.
const (
	briefListingsTable = "brief_job_listings"
	fullListingsTable  = "job_listings"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS brief_job_listings (
		id              BIGSERIAL PRIMARY KEY,
		run_id          UUID NOT NULL,
		title           TEXT NOT NULL,
		company         TEXT NOT NULL,
		location        TEXT NOT NULL,
		min_pay         DOUBLE PRECISION,
		max_pay         DOUBLE PRECISION,
		source_url      TEXT NOT NULL DEFAULT '',
		platform        TEXT NOT NULL,
		outcome         TEXT NOT NULL,
		ignore_category TEXT,
		ignore_term     TEXT,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS job_listings (
		id              BIGSERIAL PRIMARY KEY,
		run_id          UUID NOT NULL,
		title           TEXT NOT NULL,
		company         TEXT NOT NULL,
		location        TEXT NOT NULL,
		min_pay         DOUBLE PRECISION,
		max_pay         DOUBLE PRECISION,
		min_yoe         INTEGER,
		max_yoe         INTEGER,
		description     TEXT,
		source_url      TEXT NOT NULL DEFAULT '',
		platform        TEXT NOT NULL,
		outcome         TEXT NOT NULL,
		ignore_category TEXT,
		ignore_term     TEXT,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS job_applications (
		id         BIGSERIAL PRIMARY KEY,
		run_id     UUID NOT NULL,
		title      TEXT NOT NULL,
		company    TEXT NOT NULL,
		location   TEXT NOT NULL,
		min_pay    DOUBLE PRECISION,
		max_pay    DOUBLE PRECISION,
		min_yoe    INTEGER,
		max_yoe    INTEGER,
		source_url TEXT NOT NULL DEFAULT '',
		platform   TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS rate_limits (
		id         BIGSERIAL PRIMARY KEY,
		ip         TEXT NOT NULL,
		platform   TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS brief_job_listings_ignore_idx ON brief_job_listings (ignore_category, ignore_term)`,
	`CREATE INDEX IF NOT EXISTS job_listings_ignore_idx ON job_listings (ignore_category, ignore_term)`,
	`CREATE INDEX IF NOT EXISTS job_applications_identity_idx ON job_applications (title, company, location)`,
	`CREATE INDEX IF NOT EXISTS rate_limits_ip_idx ON rate_limits (ip, platform, created_at DESC)`,
}

// listingsTable maps a scope to the table its verdicts are stored in.
func listingsTable(scope listing.Scope) (string, error) {
	switch scope {
	case listing.ScopeBrief:
		return briefListingsTable, nil
	case listing.ScopeFull:
		return fullListingsTable, nil
	}
	return "", fmt.Errorf("unknown listing scope %q", scope)
}
