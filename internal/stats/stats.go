// Package stats reports which ignore rules fire most often.
package stats

import (
	"context"
	"fmt"
	"sort"

	"go-jobapply-automation/internal/listing"
)

// TermCount is one row of the grouped ignore-term query.
type TermCount struct {
	Category string `json:"category"`
	Term     string `json:"term"`
	Count    int64  `json:"count"`
}

// Source runs the grouped-count query. Rows come back ordered by count
// descending, ties in storage order.
type Source interface {
	TopIgnoreTerms(ctx context.Context, scope listing.Scope, limit int) ([]TermCount, error)
}

// IgnoreStatistics is a read-only view over the recorded verdicts of one
// scope.
type IgnoreStatistics struct {
	src   Source
	scope listing.Scope
}

func New(src Source, scope listing.Scope) *IgnoreStatistics {
	return &IgnoreStatistics{src: src, scope: scope}
}

func (s *IgnoreStatistics) Scope() listing.Scope {
	return s.scope
}

// Top returns at most n rows. n <= 0 returns nothing without a query.
func (s *IgnoreStatistics) Top(ctx context.Context, n int) ([]TermCount, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := s.src.TopIgnoreTerms(ctx, s.scope, n)
	if err != nil {
		return nil, fmt.Errorf("top %s ignore terms: %w", s.scope, err)
	}
	// The stable sort keeps the source's tie order.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows, nil
}
