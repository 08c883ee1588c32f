package listing

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Identity is the dedup key of a listing. Platform is not part of it, so a
// job cross-posted on two boards is one job.
type Identity struct {
	Title    string
	Company  string
	Location string
}

// IdentityOf builds the normalized identity of r.
func IdentityOf(r Record) Identity {
	return NewIdentity(r.Title, r.Company, r.Location)
}

func NewIdentity(title, company, location string) Identity {
	return Identity{
		Title:    normalize(title),
		Company:  normalize(company),
		Location: normalize(location),
	}
}

func (id Identity) String() string {
	return id.Title + " | " + id.Company + " | " + id.Location
}

// normalize case-folds and collapses whitespace. A Caser holds state, so a
// fresh one is built per call.
func normalize(s string) string {
	s = norm.NFKC.String(s)
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}
