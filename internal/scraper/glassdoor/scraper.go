package glassdoor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"

	"go-jobapply-automation/internal/browser"
	"go-jobapply-automation/internal/listing"
	"go-jobapply-automation/internal/scraper"
)

const baseURL = "https://www.glassdoor.com"

var selectors = scraper.Selectors{
	ResultList: "ul[aria-label='Jobs List']",
	Card:       "li[data-test='jobListing']",
	Title:      "a[data-test='job-title'], [class*='JobCard_jobTitle']",
	Company:    "[class*='EmployerProfile_compactEmployerName']",
	Location:   "[data-test='emp-location'], [class*='JobCard_location']",
	Pay:        "[data-test='detailSalary']",
	Link:       "a[data-test='job-title'], a[class*='JobCard_trackingLink']",

	NoResults:     "h1:has-text('No jobs found')",
	Blocked:       "#px-captcha",
	BlockedTitles: []string{"Help Us Protect Glassdoor", "Too many requests", "Security | Glassdoor"},

	Description:       "[class*='JobDetails_jobDescription']",
	ExpandDescription: "button[class*='JobDetails_showMore']",
}

func New(page playwright.Page, q scraper.Query, shots *browser.Screenshots) *scraper.Board {
	return scraper.NewBoard(scraper.BoardConfig{
		Platform:  listing.Glassdoor,
		BaseURL:   baseURL,
		Selectors: selectors,
		SearchURL: SearchURL,
	}, page, q, shots)
}

// SearchURL builds the path-encoded search Glassdoor expects:
//
//	/Job/<location>-<term>-jobs-SRCH_IL.0,<a>_IN1_KO<b>,<c>.htm?remoteWorkType=..
//
// where IL spans the location slug and KO spans the term slug within
// "<location>-<term>".
func SearchURL(term string, q scraper.Query) string {
	loc := slug(q.Location)
	kw := slug(term)

	var path string
	if loc == "" {
		path = fmt.Sprintf("%s-jobs-SRCH_KO0,%d.htm", kw, len(kw))
	} else {
		start := len(loc) + 1
		path = fmt.Sprintf("%s-%s-jobs-SRCH_IL.0,%d_IN1_KO%d,%d.htm", loc, kw, len(loc), start, start+len(kw))
	}

	remote := 0
	if q.Remote {
		remote = 1
	}
	query := fmt.Sprintf("remoteWorkType=%d&minRating=%s&fromAge=%d&minSalary=%d&maxSalary=%d",
		remote, formatRating(q.MinRating), int(q.MaxAge.Hours()/24), q.MinSalary, q.MaxSalary)

	return baseURL + "/Job/" + path + "?" + query
}

func slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

func formatRating(r float64) string {
	if r == math.Trunc(r) {
		return strconv.FormatFloat(r, 'f', 1, 64)
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
