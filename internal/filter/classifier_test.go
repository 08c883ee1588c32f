package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobapply-automation/internal/listing"
)

func brief(title, company, location string) listing.Record {
	return listing.Record{
		Title:    title,
		Company:  company,
		Location: location,
		Platform: listing.LinkedIn,
	}
}

func full(r listing.Record, description string, minYoe, maxYoe *int) listing.Record {
	return r.WithDetails(description, minYoe, maxYoe)
}

func TestClassify_IgnoreOnlyTitle(t *testing.T) {
	c := &Criteria{
		Ignore: Terms{Titles: Literals("backend")},
		Policy: PolicyIgnoreOnly,
	}
	r := brief("Senior Backend Engineer", "Acme Corp", "Remote")

	v := Classify(r, c)

	assert.Equal(t, Ignore(CategoryTitle, "backend"), v)
	assert.Nil(t, r.IgnoreCategory, "Classify must not modify its input")

	stamped := v.Stamp(r)
	require.NotNil(t, stamped.IgnoreCategory)
	require.NotNil(t, stamped.IgnoreTerm)
	assert.Equal(t, "Title", *stamped.IgnoreCategory)
	assert.Equal(t, "backend", *stamped.IgnoreTerm)
}

func TestClassify_NilCriteriaPasses(t *testing.T) {
	assert.True(t, Classify(brief("Anything", "Anyone", "Anywhere"), nil).Passed())
}

func TestPassesIgnoreFilters_CheckOrder(t *testing.T) {
	c := &Criteria{
		Ignore: Terms{
			Titles:       Literals("intern"),
			Companies:    Literals("acme"),
			Locations:    Literals("onsite"),
			Descriptions: Literals("clearance"),
		},
		Salary:     salary(90000, 150000),
		Experience: experience(0, 5),
	}
	desc := "Requires active clearance"

	everything := brief("Intern", "Acme", "Onsite")
	everything.MaxPay = listing.Float(50000)
	everything = full(everything, desc, listing.Int(10), nil)
	assert.Equal(t, CategoryTitle, PassesIgnoreFilters(everything, c).Category)

	everything.Title = "Engineer"
	assert.Equal(t, CategoryCompany, PassesIgnoreFilters(everything, c).Category)

	everything.Company = "Initech"
	assert.Equal(t, CategoryLocation, PassesIgnoreFilters(everything, c).Category)

	everything.Location = "Remote"
	assert.Equal(t, CategoryMaxPay, PassesIgnoreFilters(everything, c).Category)

	everything.MaxPay = nil
	assert.Equal(t, CategoryMinYoe, PassesIgnoreFilters(everything, c).Category)

	everything.MinYoe = nil
	v := PassesIgnoreFilters(everything, c)
	assert.Equal(t, Ignore(CategoryDescription, "clearance"), v)

	everything.Description = listing.String("Go and Postgres")
	assert.True(t, PassesIgnoreFilters(everything, c).Passed())
}

func TestPassesIgnoreFilters_BriefSkipsFullOnlyChecks(t *testing.T) {
	c := &Criteria{
		Ignore:     Terms{Descriptions: Literals("clearance")},
		Experience: experience(0, 2),
	}
	r := brief("Engineer", "Initech", "Remote")
	r.MinYoe = listing.Int(10) // ignored until the record is full

	assert.True(t, PassesIgnoreFilters(r, c).Passed())

	r = full(r, "needs clearance", listing.Int(10), nil)
	assert.Equal(t, CategoryMinYoe, PassesIgnoreFilters(r, c).Category)
}

func TestPassesIgnoreFilters_GroupTermIsRendered(t *testing.T) {
	c := &Criteria{Ignore: Terms{Titles: []Phrase{All(Literal("senior"), Literal("java"))}}}

	v := PassesIgnoreFilters(brief("Senior Java Developer", "Initech", "Remote"), c)
	assert.Equal(t, Ignore(CategoryTitle, "['senior', 'java']"), v)

	assert.True(t, PassesIgnoreFilters(brief("Java Developer", "Initech", "Remote"), c).Passed())
}

func TestIsIdeal(t *testing.T) {
	c := &Criteria{Ideal: Terms{
		Titles:       Literals("golang"),
		Companies:    Literals("initech"),
		Locations:    Literals("remote"),
		Descriptions: Literals("kubernetes"),
	}}

	assert.True(t, IsIdeal(brief("Golang Engineer", "X", "Y"), c))
	assert.True(t, IsIdeal(brief("Engineer", "Initech", "Y"), c))
	assert.True(t, IsIdeal(brief("Engineer", "X", "US (Remote)"), c))
	assert.False(t, IsIdeal(brief("Engineer", "X", "Y"), c))

	r := full(brief("Engineer", "X", "Y"), "We run Kubernetes", nil, nil)
	assert.True(t, IsIdeal(r, c))
}

func TestClassify_Policies(t *testing.T) {
	ignore := Terms{Titles: Literals("senior")}
	ideal := Terms{Companies: Literals("initech")}

	idealAndIgnored := brief("Senior Engineer", "Initech", "Remote")
	idealClean := brief("Engineer", "Initech", "Remote")
	plainIgnored := brief("Senior Engineer", "Acme", "Remote")
	plainClean := brief("Engineer", "Acme", "Remote")

	greedy := func(title string) Verdict { return Ignore(CategoryGreedyNonInclusion, title) }
	title := Ignore(CategoryTitle, "senior")

	tests := []struct {
		policy Policy
		want   [4]Verdict
	}{
		{PolicyIgnoreOnly, [4]Verdict{title, Pass(), title, Pass()}},
		{PolicyIdealOnly, [4]Verdict{Pass(), Pass(), greedy("senior engineer"), greedy("engineer")}},
		{PolicyIdealAndNotIgnore, [4]Verdict{Pass(), Pass(), title, Pass()}},
		{PolicyIdealAndClean, [4]Verdict{title, Pass(), greedy("senior engineer"), greedy("engineer")}},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			c := &Criteria{Ignore: ignore, Ideal: ideal, Policy: tt.policy}
			records := []listing.Record{idealAndIgnored, idealClean, plainIgnored, plainClean}
			for i, r := range records {
				assert.Equal(t, tt.want[i], Classify(r, c), "record %q at %q", r.Title, r.Company)
			}
		})
	}
}

func TestClassify_EmptyIdealMakesDefaultEqualIgnoreOnly(t *testing.T) {
	ignore := Terms{Titles: Literals("php"), Locations: Literals("onsite")}
	records := []listing.Record{
		brief("PHP Developer", "Acme", "Remote"),
		brief("Go Developer", "Acme", "Onsite"),
		brief("Go Developer", "Acme", "Remote"),
	}

	for _, r := range records {
		ignoreOnly := Classify(r, &Criteria{Ignore: ignore, Policy: PolicyIgnoreOnly})
		def := Classify(r, &Criteria{Ignore: ignore})
		assert.Equal(t, ignoreOnly, def, r.Title)
	}
}

func TestClassify_IsDeterministic(t *testing.T) {
	c := &Criteria{
		Ignore: Terms{Descriptions: Literals("on-call")},
		Ideal:  Terms{Titles: Literals("staff")},
		Policy: PolicyIdealAndClean,
	}
	r := full(brief("Staff Engineer", "Initech", "Remote"), "24/7 on-call rotation", nil, nil)

	first := Classify(r, c)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Classify(r, c))
	}
	assert.Equal(t, Ignore(CategoryDescription, "on-call"), first)
}

func TestVerdict_StampPassClearsReason(t *testing.T) {
	r := brief("Engineer", "Initech", "Remote").Annotate(CategoryTitle, "old")

	stamped := Pass().Stamp(r)
	assert.Nil(t, stamped.IgnoreCategory)
	assert.Nil(t, stamped.IgnoreTerm)
	assert.Equal(t, "pass", Pass().String())
	assert.Equal(t, "ignore (Title: backend)", Ignore(CategoryTitle, "backend").String())
}
