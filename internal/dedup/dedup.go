package dedup

import (
	mapset "github.com/deckarep/golang-set/v2"

	"go-jobapply-automation/internal/listing"
)

// Session remembers which listings were already acted on during one run.
// It lives only as long as the process; cross-run duplicates are left to
// the store. The underlying set is thread-safe, so scrapers running per
// platform in parallel may share one Session.
type Session struct {
	seen mapset.Set[listing.Identity]
}

func NewSession() *Session {
	return &Session{seen: mapset.NewSet[listing.Identity]()}
}

// Seen reports whether id was recorded earlier in this run.
func (s *Session) Seen(id listing.Identity) bool {
	return s.seen.Contains(id)
}

// Record marks id as acted on. Recording twice is a no-op.
func (s *Session) Record(id listing.Identity) {
	s.seen.Add(id)
}

// Claim records id and reports whether it was new. Drivers use it to
// check-and-mark in one step when several goroutines share the session.
func (s *Session) Claim(id listing.Identity) bool {
	return s.seen.Add(id)
}

// Release forgets id, so a listing whose hand-off failed can be tried again.
func (s *Session) Release(id listing.Identity) {
	s.seen.Remove(id)
}

func (s *Session) Len() int {
	return s.seen.Cardinality()
}
