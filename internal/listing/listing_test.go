package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlatform(t *testing.T) {
	for in, want := range map[string]Platform{
		"linkedin":   LinkedIn,
		" LinkedIn ": LinkedIn,
		"INDEED":     Indeed,
		"Glassdoor":  Glassdoor,
	} {
		got, err := ParsePlatform(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParsePlatform("monster")
	assert.Error(t, err)
}

func TestParseScope(t *testing.T) {
	s, err := ParseScope("Brief")
	require.NoError(t, err)
	assert.Equal(t, ScopeBrief, s)

	s, err = ParseScope("full")
	require.NoError(t, err)
	assert.Equal(t, ScopeFull, s)

	_, err = ParseScope("partial")
	assert.Error(t, err)
}

func TestRecord_Validate(t *testing.T) {
	valid := Record{Title: "Engineer", Company: "Acme", Location: "Remote"}

	tests := []struct {
		name    string
		mutate  func(r *Record)
		wantErr bool
	}{
		{name: "valid", mutate: func(r *Record) {}},
		{name: "blank title", mutate: func(r *Record) { r.Title = "   " }, wantErr: true},
		{name: "blank company", mutate: func(r *Record) { r.Company = "" }, wantErr: true},
		{name: "blank location", mutate: func(r *Record) { r.Location = "\t" }, wantErr: true},
		{name: "inverted pay", mutate: func(r *Record) {
			r.MinPay, r.MaxPay = Float(100), Float(50)
		}, wantErr: true},
		{name: "one-sided pay", mutate: func(r *Record) { r.MaxPay = Float(50) }},
		{name: "inverted yoe", mutate: func(r *Record) {
			r.MinYoe, r.MaxYoe = Int(5), Int(2)
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRecord_ScopeAndDetails(t *testing.T) {
	brief := Record{Title: "Engineer", Company: "Acme", Location: "Remote"}
	brief = brief.Annotate("Title", "engineer")
	assert.False(t, brief.IsFull())
	assert.Equal(t, ScopeBrief, brief.Scope())

	full := brief.WithDetails("Go and Postgres", Int(2), nil)
	assert.True(t, full.IsFull())
	assert.Equal(t, ScopeFull, full.Scope())
	assert.Equal(t, 2, *full.MinYoe)
	assert.Nil(t, full.IgnoreCategory, "details start with a clean annotation")
	assert.NotNil(t, brief.IgnoreCategory, "brief copy is untouched")
}

func TestRecord_Annotate(t *testing.T) {
	r := Record{Title: "Engineer"}

	stamped := r.Annotate("Min Pay", "200000.0")
	require.NotNil(t, stamped.IgnoreCategory)
	require.NotNil(t, stamped.IgnoreTerm)
	assert.Equal(t, "Min Pay", *stamped.IgnoreCategory)
	assert.Equal(t, "200000.0", *stamped.IgnoreTerm)
	assert.Nil(t, r.IgnoreCategory)

	cleared := stamped.Annotate("", "")
	assert.Nil(t, cleared.IgnoreCategory)
	assert.Nil(t, cleared.IgnoreTerm)
}

func TestIdentityOf(t *testing.T) {
	a := IdentityOf(Record{Title: "  Senior  Backend Engineer ", Company: "ACME Corp", Location: "Austin, TX"})
	b := IdentityOf(Record{Title: "senior backend engineer", Company: "acme corp", Location: "austin,   tx"})
	c := IdentityOf(Record{Title: "senior backend engineer", Company: "Globex", Location: "austin, tx"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "senior backend engineer | acme corp | austin, tx", a.String())
}

func TestIdentityOf_IgnoresPlatform(t *testing.T) {
	a := IdentityOf(Record{Title: "Engineer", Company: "Acme", Location: "Remote", Platform: LinkedIn})
	b := IdentityOf(Record{Title: "Engineer", Company: "Acme", Location: "Remote", Platform: Indeed})
	assert.Equal(t, a, b)
}

func TestIdentityOf_FoldsUnicode(t *testing.T) {
	a := NewIdentity("Ingénieur Logiciel", "Müller GmbH", "Köln")
	b := NewIdentity("INGÉNIEUR LOGICIEL", "MÜLLER GMBH", "KÖLN")
	assert.Equal(t, a, b)
}
