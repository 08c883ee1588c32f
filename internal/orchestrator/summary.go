package orchestrator

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"go-jobapply-automation/internal/listing"
)

// PlatformStats counts what happened to the listings of one platform. Only
// the goroutine running that platform writes to it.
type PlatformStats struct {
	Platform    listing.Platform `json:"platform"`
	Seen        int              `json:"seen"`
	Applied     int              `json:"applied"`
	Ignored     int              `json:"ignored"`
	Duplicates  int              `json:"duplicates"`
	Failed      int              `json:"failed"`
	Skipped     bool             `json:"skipped"`
	RateLimited bool             `json:"rate_limited"`
}

type Summary struct {
	RunID     uuid.UUID        `json:"run_id"`
	Started   time.Time        `json:"started"`
	Duration  time.Duration    `json:"duration"`
	Platforms []*PlatformStats `json:"platforms"`
}

// Applied is the total across platforms.
func (s *Summary) Applied() int {
	n := 0
	for _, p := range s.Platforms {
		n += p.Applied
	}
	return n
}

func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run %s finished in %s, %s applied\n",
		s.RunID, s.Duration.Round(time.Second), humanize.Comma(int64(s.Applied())))
	for _, p := range s.Platforms {
		switch {
		case p.Skipped:
			fmt.Fprintf(&sb, "%s: skipped (cooling down)\n", p.Platform)
			continue
		case p.RateLimited:
			fmt.Fprintf(&sb, "%s (rate limited): ", p.Platform)
		default:
			fmt.Fprintf(&sb, "%s: ", p.Platform)
		}
		fmt.Fprintf(&sb, "%d seen, %d applied, %d ignored, %d duplicate, %d failed\n",
			p.Seen, p.Applied, p.Ignored, p.Duplicates, p.Failed)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
