package filter

import (
	"fmt"

	"go-jobapply-automation/internal/listing"
)

type Outcome string

const (
	OutcomePass   Outcome = "pass"
	OutcomeIgnore Outcome = "ignore"
)

// Ignore categories, as persisted in ignore_category.
const (
	CategoryTitle              = "Title"
	CategoryCompany            = "Company"
	CategoryLocation           = "Location"
	CategoryDescription        = "Description"
	CategoryMinPay             = "Min Pay"
	CategoryMaxPay             = "Max Pay"
	CategoryMinYoe             = "Min YoE"
	CategoryMaxYoe             = "Max YoE"
	CategoryGreedyNonInclusion = "Greedy Non-Inclusion"
)

// Verdict is the classifier's decision and the rule that fired, if any.
type Verdict struct {
	Outcome  Outcome
	Category string
	Term     string
}

func Pass() Verdict {
	return Verdict{Outcome: OutcomePass}
}

func Ignore(category, term string) Verdict {
	return Verdict{Outcome: OutcomeIgnore, Category: category, Term: term}
}

func (v Verdict) Passed() bool {
	return v.Outcome == OutcomePass
}

// Stamp returns a copy of r annotated with this verdict's reason.
func (v Verdict) Stamp(r listing.Record) listing.Record {
	if v.Passed() {
		return r.Annotate("", "")
	}
	return r.Annotate(v.Category, v.Term)
}

func (v Verdict) String() string {
	if v.Passed() {
		return string(OutcomePass)
	}
	return fmt.Sprintf("%s (%s: %s)", v.Outcome, v.Category, v.Term)
}
