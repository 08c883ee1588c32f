// Package orchestrator drives one run: search every platform, classify each
// listing twice (brief, then full), hand passing listings to an Applier and
// record every verdict.
package orchestrator

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"go-jobapply-automation/internal/dedup"
	"go-jobapply-automation/internal/filter"
	"go-jobapply-automation/internal/listing"
	"go-jobapply-automation/internal/ratelimit"
	"go-jobapply-automation/internal/scraper"
)

// Store persists verdicts and applications. *database.Repository satisfies it.
type Store interface {
	RecordVerdict(ctx context.Context, runID uuid.UUID, scope listing.Scope, rec listing.Record, v filter.Verdict) error
	RecordApplication(ctx context.Context, runID uuid.UUID, rec listing.Record) (bool, error)
}

// Applier takes over a listing that passed both classifications.
type Applier interface {
	Apply(ctx context.Context, rec listing.Record) error
}

type ApplierFunc func(ctx context.Context, rec listing.Record) error

func (f ApplierFunc) Apply(ctx context.Context, rec listing.Record) error {
	return f(ctx, rec)
}

// LogApplier only logs the listing. Used when no Telegram bot is configured.
var LogApplier = ApplierFunc(func(_ context.Context, rec listing.Record) error {
	log.Printf("📨 Ready to apply: %s at %s (%s) %s", rec.Title, rec.Company, rec.Location, rec.SourceURL)
	return nil
})

type Options struct {
	// Host identifies this machine in the rate-limit log.
	Host string
	// Terms are run in order on every platform. Empty means one blank search.
	Terms []string
	// Cooldown is how long a platform is skipped after it blocked Host.
	Cooldown time.Duration
	// Parallelism caps how many platforms are searched at once.
	Parallelism int
}

type Orchestrator struct {
	criteria *filter.Criteria
	store    Store
	tracker  ratelimit.Tracker
	applier  Applier
	opts     Options
	now      func() time.Time
}

// New builds an Orchestrator. store and tracker may be nil, in which case
// nothing is persisted and no cooldown is checked.
func New(criteria *filter.Criteria, store Store, tracker ratelimit.Tracker, applier Applier, opts Options) *Orchestrator {
	if applier == nil {
		applier = LogApplier
	}
	if len(opts.Terms) == 0 {
		opts.Terms = []string{""}
	}
	if opts.Parallelism < 1 {
		opts.Parallelism = 1
	}
	return &Orchestrator{
		criteria: criteria,
		store:    store,
		tracker:  tracker,
		applier:  applier,
		opts:     opts,
		now:      time.Now,
	}
}

// Run searches every source and returns per-platform counts. Failures of a
// single listing are logged and counted; only context cancellation makes
// Run return an error.
func (o *Orchestrator) Run(ctx context.Context, sources []scraper.Source) (*Summary, error) {
	sum := &Summary{RunID: uuid.New(), Started: o.now()}
	for _, src := range sources {
		sum.Platforms = append(sum.Platforms, &PlatformStats{Platform: src.Platform()})
	}
	log.Printf("🚀 Run %s started on %d platform(s)", sum.RunID, len(sources))

	session := dedup.NewSession()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.opts.Parallelism)
	for i, src := range sources {
		src := src
		st := sum.Platforms[i]
		g.Go(func() error {
			return o.runPlatform(gctx, sum.RunID, session, src, st)
		})
	}
	err := g.Wait()
	sum.Duration = o.now().Sub(sum.Started)
	log.Printf("📦 Run %s handed off %d listing(s)", sum.RunID, session.Len())
	return sum, err
}

func (o *Orchestrator) runPlatform(ctx context.Context, runID uuid.UUID, session *dedup.Session, src scraper.Source, st *PlatformStats) error {
	platform := src.Platform()
	if o.coolingDown(ctx, platform) {
		st.Skipped = true
		return nil
	}

	for _, term := range o.opts.Terms {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Printf("🔍 [%s] Searching %q...", platform, term)
		candidates, err := src.Search(ctx, term)
		if err != nil {
			if stop, err := o.handleError(ctx, platform, st, err); stop {
				return err
			}
			log.Printf("❌ [%s] Search %q failed: %v", platform, term, err)
			continue
		}
		log.Printf("📋 [%s] %d result(s) for %q", platform, len(candidates), term)

		for _, cand := range candidates {
			if err := o.process(ctx, runID, session, cand, st); err != nil {
				if stop, err := o.handleError(ctx, platform, st, err); stop {
					return err
				}
			}
		}
	}
	return nil
}

// handleError reports whether the platform loop must stop. A rate limit
// stops this platform only; cancellation stops the run.
func (o *Orchestrator) handleError(ctx context.Context, platform listing.Platform, st *PlatformStats, err error) (bool, error) {
	if ctx.Err() != nil {
		return true, ctx.Err()
	}
	if !errors.Is(err, scraper.ErrRateLimited) {
		return false, nil
	}
	st.RateLimited = true
	log.Printf("🛑 [%s] Rate limited, stopping this platform: %v", platform, err)
	if o.tracker != nil {
		if err := o.tracker.LogRateLimit(ctx, o.opts.Host, platform); err != nil {
			log.Printf("⚠️ [%s] Could not log rate limit: %v", platform, err)
		}
	}
	return true, nil
}

func (o *Orchestrator) coolingDown(ctx context.Context, platform listing.Platform) bool {
	if o.tracker == nil || o.opts.Cooldown <= 0 {
		return false
	}
	cooling, age, err := ratelimit.CoolingDown(ctx, o.tracker, o.opts.Host, platform, o.opts.Cooldown)
	if err != nil {
		log.Printf("⚠️ [%s] Could not read rate-limit history: %v", platform, err)
		return false
	}
	if cooling {
		log.Printf("⏸️ [%s] Blocked %s, skipping until the %s cooldown ends",
			platform, humanize.Time(o.now().Add(-age)), o.opts.Cooldown)
	}
	return cooling
}

// process runs one candidate through brief classification, the session
// check, full classification and the hand-off. It returns an error only when
// the platform should stop.
func (o *Orchestrator) process(ctx context.Context, runID uuid.UUID, session *dedup.Session, cand scraper.Candidate, st *PlatformStats) error {
	brief := cand.Brief()
	st.Seen++

	v := filter.Classify(brief, o.criteria)
	o.record(ctx, runID, listing.ScopeBrief, brief, v)
	if !v.Passed() {
		st.Ignored++
		log.Printf("⏭️ [%s] %s at %s: %s", brief.Platform, brief.Title, brief.Company, v)
		return nil
	}

	id := listing.IdentityOf(brief)
	if session.Seen(id) {
		st.Duplicates++
		log.Printf("♻️ [%s] Already applied this run: %s at %s", brief.Platform, brief.Title, brief.Company)
		return nil
	}

	full, err := cand.Full(ctx)
	if err != nil {
		if errors.Is(err, scraper.ErrRateLimited) || ctx.Err() != nil {
			return err
		}
		st.Failed++
		log.Printf("⚠️ [%s] Dropping %s at %s: %v", brief.Platform, brief.Title, brief.Company, err)
		return nil
	}

	v = filter.Classify(full, o.criteria)
	o.record(ctx, runID, listing.ScopeFull, full, v)
	if !v.Passed() {
		st.Ignored++
		log.Printf("⏭️ [%s] %s at %s: %s", full.Platform, full.Title, full.Company, v)
		return nil
	}

	// Another platform may have taken the same job since the Seen check.
	if !session.Claim(id) {
		st.Duplicates++
		return nil
	}
	if err := o.applier.Apply(ctx, full); err != nil {
		session.Release(id)
		st.Failed++
		log.Printf("❌ [%s] Hand-off failed for %s at %s: %v", full.Platform, full.Title, full.Company, err)
		return nil
	}
	st.Applied++
	log.Printf("✅ [%s] Applied: %s at %s", full.Platform, full.Title, full.Company)

	if o.store != nil {
		if _, err := o.store.RecordApplication(ctx, runID, full); err != nil {
			log.Printf("⚠️ Failed to record application: %v", err)
		}
	}
	return nil
}

func (o *Orchestrator) record(ctx context.Context, runID uuid.UUID, scope listing.Scope, rec listing.Record, v filter.Verdict) {
	if o.store == nil {
		return
	}
	if err := o.store.RecordVerdict(ctx, runID, scope, rec, v); err != nil {
		log.Printf("⚠️ Failed to record %s verdict: %v", scope, err)
	}
}
