package filter

import "go-jobapply-automation/internal/listing"

// Classify decides whether r should be surfaced under c. It does not touch
// r; callers stamp the returned verdict onto their own copy.
func Classify(r listing.Record, c *Criteria) Verdict {
	if c == nil {
		c = &Criteria{}
	}
	switch c.Policy.orDefault() {
	case PolicyIgnoreOnly:
		return PassesIgnoreFilters(r, c)
	case PolicyIdealOnly:
		if IsIdeal(r, c) {
			return Pass()
		}
		return notIdeal(r)
	case PolicyIdealAndClean:
		if !IsIdeal(r, c) {
			return notIdeal(r)
		}
		return PassesIgnoreFilters(r, c)
	default:
		if IsIdeal(r, c) {
			return Pass()
		}
		return PassesIgnoreFilters(r, c)
	}
}

// IsIdeal reports whether any ideal rule matches the title, company,
// location or, on full records, the description.
func IsIdeal(r listing.Record, c *Criteria) bool {
	if anyMatch(c.Ideal.Titles, normalizeText(r.Title)) ||
		anyMatch(c.Ideal.Companies, normalizeText(r.Company)) ||
		anyMatch(c.Ideal.Locations, normalizeText(r.Location)) {
		return true
	}
	return r.Description != nil && anyMatch(c.Ideal.Descriptions, normalizeText(*r.Description))
}

// PassesIgnoreFilters runs the ignore checks in order (title, company,
// location, pay, then YoE and description for full records) and returns the
// first one that fails.
func PassesIgnoreFilters(r listing.Record, c *Criteria) Verdict {
	fields := []struct {
		category string
		rules    []Phrase
		text     string
	}{
		{CategoryTitle, c.Ignore.Titles, r.Title},
		{CategoryCompany, c.Ignore.Companies, r.Company},
		{CategoryLocation, c.Ignore.Locations, r.Location},
	}
	for _, f := range fields {
		if rule, ok := firstMatch(f.rules, normalizeText(f.text)); ok {
			return Ignore(f.category, rule.String())
		}
	}

	if v, out := PayOutOfRange(r.MinPay, r.MaxPay, c.Salary); out {
		return v
	}
	if !r.IsFull() {
		return Pass()
	}

	if v, out := YoeOutOfRange(r.MinYoe, r.MaxYoe, c.Experience); out {
		return v
	}
	if rule, ok := firstMatch(c.Ignore.Descriptions, normalizeText(*r.Description)); ok {
		return Ignore(CategoryDescription, rule.String())
	}
	return Pass()
}

// notIdeal is the verdict for a listing dropped by a terminal ideal gate.
// The title stands in as the term since no single rule fired.
func notIdeal(r listing.Record) Verdict {
	return Ignore(CategoryGreedyNonInclusion, normalizeText(r.Title))
}
