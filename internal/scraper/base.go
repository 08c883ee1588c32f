package scraper

import (
	"context"
	"errors"
	"time"

	"go-jobapply-automation/internal/listing"
)

var (
	// ErrRateLimited means the platform served a block or verification page.
	ErrRateLimited = errors.New("rate limited by platform")
	// ErrIncomplete means a required field could not be scraped. The
	// listing is dropped before it reaches the classifier.
	ErrIncomplete = errors.New("incomplete listing")
)

// Query holds the search settings shared by every platform.
type Query struct {
	Location  string
	Remote    bool
	MaxAge    time.Duration
	EasyApply bool
	MinSalary int
	MaxSalary int
	MinRating float64
	// Limit caps the result cards read per search term; 0 means no cap.
	Limit int
}

// Source is one job board.
type Source interface {
	Platform() listing.Platform
	// Search runs one search term and returns the result cards in page order.
	Search(ctx context.Context, term string) ([]Candidate, error)
}

// Candidate is a search result that has been read from its card but not
// yet opened.
type Candidate interface {
	Brief() listing.Record
	// Full opens the detail view and returns the full record.
	Full(ctx context.Context) (listing.Record, error)
}

// DetailFunc scrapes the detail view of brief.
type DetailFunc func(ctx context.Context, brief listing.Record) (listing.Record, error)

type candidate struct {
	brief  listing.Record
	detail DetailFunc
}

func NewCandidate(brief listing.Record, detail DetailFunc) Candidate {
	return &candidate{brief: brief, detail: detail}
}

func (c *candidate) Brief() listing.Record {
	return c.brief
}

func (c *candidate) Full(ctx context.Context) (listing.Record, error) {
	if err := ctx.Err(); err != nil {
		return listing.Record{}, err
	}
	full, err := c.detail(ctx, c.brief)
	if err != nil {
		return listing.Record{}, err
	}
	if err := full.Validate(); err != nil {
		return listing.Record{}, errors.Join(ErrIncomplete, err)
	}
	return full, nil
}

// NewBrief builds and validates a brief record from card text.
func NewBrief(platform listing.Platform, title, company, location, pay, sourceURL string) (listing.Record, error) {
	minPay, maxPay := ParsePay(pay)
	r := listing.Record{
		Title:     CleanText(title),
		Company:   CleanText(company),
		Location:  CleanText(location),
		MinPay:    minPay,
		MaxPay:    maxPay,
		SourceURL: sourceURL,
		Platform:  platform,
	}
	if err := r.Validate(); err != nil {
		return listing.Record{}, errors.Join(ErrIncomplete, err)
	}
	return r, nil
}

// WithDescription turns brief into a full record from the detail text,
// deriving the experience bounds from it.
func WithDescription(brief listing.Record, description string) (listing.Record, error) {
	if description == "" {
		return listing.Record{}, errors.Join(ErrIncomplete, errors.New("empty description"))
	}
	minYoe, maxYoe := ParseYoe(description)
	return brief.WithDetails(description, minYoe, maxYoe), nil
}
