package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"go-jobapply-automation/internal/filter"
	"go-jobapply-automation/internal/listing"
	"go-jobapply-automation/internal/stats"
)

// ---------------- VERDICT OPERATIONS ----------------

// RecordVerdict stores one classification of rec under scope, including the
// rule that fired when it was ignored.
func (r *Repository) RecordVerdict(ctx context.Context, runID uuid.UUID, scope listing.Scope, rec listing.Record, v filter.Verdict) error {
	rec = v.Stamp(rec)

	var err error
	switch scope {
	case listing.ScopeBrief:
		_, err = r.db.Exec(ctx, `
			INSERT INTO brief_job_listings
				(run_id, title, company, location, min_pay, max_pay, source_url, platform, outcome, ignore_category, ignore_term)
			VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			runID.String(), rec.Title, rec.Company, rec.Location, rec.MinPay, rec.MaxPay,
			rec.SourceURL, string(rec.Platform), string(v.Outcome), rec.IgnoreCategory, rec.IgnoreTerm)
	case listing.ScopeFull:
		_, err = r.db.Exec(ctx, `
			INSERT INTO job_listings
				(run_id, title, company, location, min_pay, max_pay, min_yoe, max_yoe, description,
				 source_url, platform, outcome, ignore_category, ignore_term)
			VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			runID.String(), rec.Title, rec.Company, rec.Location, rec.MinPay, rec.MaxPay,
			rec.MinYoe, rec.MaxYoe, rec.Description,
			rec.SourceURL, string(rec.Platform), string(v.Outcome), rec.IgnoreCategory, rec.IgnoreTerm)
	default:
		return fmt.Errorf("failed to record verdict: unknown listing scope %q", scope)
	}
	if err != nil {
		return fmt.Errorf("failed to record %s verdict: %w", scope, err)
	}
	return nil
}

// TopIgnoreTerms groups the ignored verdicts of scope by (category, term),
// most frequent first. Ties keep the order the pair was first stored in.
func (r *Repository) TopIgnoreTerms(ctx context.Context, scope listing.Scope, limit int) ([]stats.TermCount, error) {
	table, err := listingsTable(scope)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT ignore_category, COALESCE(ignore_term, ''), COUNT(*) AS n
		FROM %s
		WHERE ignore_category IS NOT NULL
		GROUP BY ignore_category, ignore_term
		ORDER BY n DESC, MIN(id)
		LIMIT $1`, table)

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ignore terms: %w", err)
	}
	defer rows.Close()

	var out []stats.TermCount
	for rows.Next() {
		var tc stats.TermCount
		if err := rows.Scan(&tc.Category, &tc.Term, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan ignore term: %w", err)
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

// ---------------- APPLICATION OPERATIONS ----------------

// RecordApplication stores rec as applied to, unless a row with the same
// title, company, location and pay already exists. It reports whether a row
// was inserted.
func (r *Repository) RecordApplication(ctx context.Context, runID uuid.UUID, rec listing.Record) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO job_applications
			(run_id, title, company, location, min_pay, max_pay, min_yoe, max_yoe, source_url, platform)
		SELECT $1::uuid, $2::text, $3::text, $4::text, $5::double precision, $6::double precision,
		       $7::integer, $8::integer, $9::text, $10::text
		WHERE NOT EXISTS (
			SELECT 1 FROM job_applications
			WHERE title = $2::text AND company = $3::text AND location = $4::text
			  AND min_pay IS NOT DISTINCT FROM $5::double precision
			  AND max_pay IS NOT DISTINCT FROM $6::double precision
		)`,
		runID.String(), rec.Title, rec.Company, rec.Location, rec.MinPay, rec.MaxPay,
		rec.MinYoe, rec.MaxYoe, rec.SourceURL, string(rec.Platform))
	if err != nil {
		return false, fmt.Errorf("failed to record application: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// CountApplications returns how many applications a run recorded.
func (r *Repository) CountApplications(ctx context.Context, runID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_applications WHERE run_id = $1::uuid`, runID.String()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return n, nil
}
