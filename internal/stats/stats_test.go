package stats

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobapply-automation/internal/listing"
)

type fakeSource struct {
	rows      []TermCount
	err       error
	gotScope  listing.Scope
	gotLimit  int
	callCount int
}

func (f *fakeSource) TopIgnoreTerms(_ context.Context, scope listing.Scope, limit int) ([]TermCount, error) {
	f.callCount++
	f.gotScope = scope
	f.gotLimit = limit
	return append([]TermCount(nil), f.rows...), f.err
}

func TestIgnoreStatistics_Top(t *testing.T) {
	src := &fakeSource{rows: []TermCount{
		{Category: "Title", Term: "senior", Count: 3},
		{Category: "Company", Term: "acme", Count: 9},
		{Category: "Location", Term: "onsite", Count: 3},
	}}
	s := New(src, listing.ScopeFull)

	rows, err := s.Top(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, listing.ScopeFull, src.gotScope)
	assert.Equal(t, 2, src.gotLimit)
	require.Len(t, rows, 2)
	assert.Equal(t, "acme", rows[0].Term)
	assert.Equal(t, "senior", rows[1].Term, "ties keep storage order")
}

func TestIgnoreStatistics_TopNonPositive(t *testing.T) {
	src := &fakeSource{}
	rows, err := New(src, listing.ScopeBrief).Top(context.Background(), 0)

	assert.NoError(t, err)
	assert.Empty(t, rows)
	assert.Zero(t, src.callCount)
}

func TestIgnoreStatistics_TopError(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}
	_, err := New(src, listing.ScopeBrief).Top(context.Background(), 5)

	assert.ErrorContains(t, err, "top brief ignore terms")
	assert.ErrorIs(t, err, src.err)
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "000,000"},
		{5, "000,005"},
		{42, "000,042"},
		{1234, "001,234"},
		{123456, "123,456"},
		{1234567, "1,234,567"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatCount(tt.n), "n=%d", tt.n)
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, "Job Listing Ignore Terms", []TermCount{
		{Category: "Title", Term: "senior", Count: 42},
		{Category: "Greedy Non-Inclusion", Term: "go developer", Count: 1},
	})
	require.NoError(t, err)

	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 6)
	assert.Equal(t, "", lines[0])
	assert.Equal(t, "Job Listing Ignore Terms", strings.TrimSpace(lines[1]))
	assert.Equal(t, "   Category   Term                 Count", lines[2])
	assert.Equal(t, strings.Repeat("─", 50), lines[3])
	assert.Equal(t, "      Title   senior               000,042", lines[4])
	assert.Equal(t, "Greedy Non-Inclusion   go developer         000,001", lines[5])
}
