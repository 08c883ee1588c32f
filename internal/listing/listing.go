// Package listing defines the normalized job listing record every platform
// adapter produces and the classifier consumes.
package listing

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is returned by Validate for records a scraper must not hand on.
var ErrInvalid = errors.New("invalid listing")

type Platform string

const (
	LinkedIn  Platform = "LinkedIn"
	Indeed    Platform = "Indeed"
	Glassdoor Platform = "Glassdoor"
)

// ParsePlatform accepts any casing of a supported platform name.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linkedin":
		return LinkedIn, nil
	case "indeed":
		return Indeed, nil
	case "glassdoor":
		return Glassdoor, nil
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

// Scope tells whether a record came from a search-results card (brief) or
// from the opened detail view (full).
type Scope string

const (
	ScopeBrief Scope = "brief"
	ScopeFull  Scope = "full"
)

func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case ScopeBrief:
		return ScopeBrief, nil
	case ScopeFull:
		return ScopeFull, nil
	}
	return "", fmt.Errorf("unknown listing scope %q", s)
}

// Record is a single scraped listing. Pay is annualized. Description and the
// years-of-experience bounds are only set on full records.
type Record struct {
	Title    string
	Company  string
	Location string
	MinPay   *float64
	MaxPay   *float64

	MinYoe      *int
	MaxYoe      *int
	Description *string

	SourceURL string
	Platform  Platform

	// Why the listing was ignored. Written only through Annotate.
	IgnoreCategory *string
	IgnoreTerm     *string
}

// IsFull reports whether the extended fields were scraped.
func (r Record) IsFull() bool {
	return r.Description != nil
}

func (r Record) Scope() Scope {
	if r.IsFull() {
		return ScopeFull
	}
	return ScopeBrief
}

// Validate checks the fields a fully-constructed record must carry.
func (r Record) Validate() error {
	switch {
	case strings.TrimSpace(r.Title) == "":
		return fmt.Errorf("%w: empty title", ErrInvalid)
	case strings.TrimSpace(r.Company) == "":
		return fmt.Errorf("%w: empty company", ErrInvalid)
	case strings.TrimSpace(r.Location) == "":
		return fmt.Errorf("%w: empty location", ErrInvalid)
	}
	if r.MinPay != nil && r.MaxPay != nil && *r.MinPay > *r.MaxPay {
		return fmt.Errorf("%w: min pay %v above max pay %v", ErrInvalid, *r.MinPay, *r.MaxPay)
	}
	if r.MinYoe != nil && r.MaxYoe != nil && *r.MinYoe > *r.MaxYoe {
		return fmt.Errorf("%w: min yoe %d above max yoe %d", ErrInvalid, *r.MinYoe, *r.MaxYoe)
	}
	return nil
}

// WithDetails returns the full record built on top of a brief one.
func (r Record) WithDetails(description string, minYoe, maxYoe *int) Record {
	r.Description = &description
	r.MinYoe = minYoe
	r.MaxYoe = maxYoe
	r.IgnoreCategory = nil
	r.IgnoreTerm = nil
	return r
}

// Annotate returns a copy carrying the ignore reason. Empty values clear it.
func (r Record) Annotate(category, term string) Record {
	r.IgnoreCategory = nil
	r.IgnoreTerm = nil
	if category != "" {
		r.IgnoreCategory = &category
	}
	if term != "" {
		r.IgnoreTerm = &term
	}
	return r
}

func Float(v float64) *float64 { return &v }

func Int(v int) *int { return &v }

func String(v string) *string { return &v }
