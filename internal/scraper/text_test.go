package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobapply-automation/internal/listing"
)

func TestHTMLText(t *testing.T) {
	fragment := `<div id="job-details">
		<h2>About the job</h2>
		<p>We build <strong>Go</strong> services.</p>
		<script>track()</script><style>.x{}</style>
		<ul><li>3+ years of experience</li><li>Postgres</li></ul>
	</div>`

	text, err := HTMLText(fragment)
	require.NoError(t, err)
	assert.Equal(t, "About the job\nWe build\nGo\nservices.\n3+ years of experience\nPostgres", text)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Senior Go Engineer", CleanText("\n  Senior   Go\tEngineer \n"))
}

func TestNewBrief(t *testing.T) {
	r, err := NewBrief(listing.LinkedIn, " Go  Engineer ", "Initech", "Austin, TX (Remote)", "$120K/yr - $150K/yr", "https://x/1")
	require.NoError(t, err)
	assert.Equal(t, "Go Engineer", r.Title)
	assert.Equal(t, listing.LinkedIn, r.Platform)
	require.NotNil(t, r.MinPay)
	assert.Equal(t, 120000.0, *r.MinPay)
	assert.False(t, r.IsFull())

	_, err = NewBrief(listing.Indeed, "Go Engineer", "  ", "Remote", "", "")
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.ErrorIs(t, err, listing.ErrInvalid)
}

func TestCandidate_Full(t *testing.T) {
	brief, err := NewBrief(listing.Glassdoor, "Go Engineer", "Initech", "Remote", "", "https://x/2")
	require.NoError(t, err)

	c := NewCandidate(brief, func(_ context.Context, b listing.Record) (listing.Record, error) {
		return WithDescription(b, "Requires 4-6 years of experience")
	})
	assert.Equal(t, brief, c.Brief())

	full, err := c.Full(context.Background())
	require.NoError(t, err)
	assert.True(t, full.IsFull())
	assert.Equal(t, 4, *full.MinYoe)
	assert.Equal(t, 6, *full.MaxYoe)

	empty := NewCandidate(brief, func(_ context.Context, b listing.Record) (listing.Record, error) {
		return WithDescription(b, "")
	})
	_, err = empty.Full(context.Background())
	assert.ErrorIs(t, err, ErrIncomplete)

	blocked := NewCandidate(brief, func(context.Context, listing.Record) (listing.Record, error) {
		return listing.Record{}, ErrRateLimited
	})
	_, err = blocked.Full(context.Background())
	assert.True(t, errors.Is(err, ErrRateLimited))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Full(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
