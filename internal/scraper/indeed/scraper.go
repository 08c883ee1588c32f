package indeed

import (
	"net/url"
	"strconv"

	"github.com/playwright-community/playwright-go"

	"go-jobapply-automation/internal/browser"
	"go-jobapply-automation/internal/listing"
	"go-jobapply-automation/internal/scraper"
)

const (
	baseURL = "https://www.indeed.com"
	// remoteFilter is Indeed's "Remote" attribute filter.
	remoteFilter = "0kf:attr(DSQF7);"
)

var selectors = scraper.Selectors{
	ResultList: "#mosaic-provider-jobcards",
	Card:       "div.job_seen_beacon",
	Title:      "h2.jobTitle span[title], h2.jobTitle span",
	Company:    "[data-testid='company-name']",
	Location:   "[data-testid='text-location']",
	Pay:        "[data-testid='attribute_snippet_testid'], .salary-snippet-container",
	Link:       "h2.jobTitle a",

	NoResults:     "text=did not match any jobs",
	Blocked:       "#challenge-running, iframe[src*='challenges.cloudflare.com']",
	BlockedTitles: []string{"Just a moment", "Additional Verification Required", "Blocked"},

	Description: "#jobDescriptionText",
}

func New(page playwright.Page, q scraper.Query, shots *browser.Screenshots) *scraper.Board {
	return scraper.NewBoard(scraper.BoardConfig{
		Platform:  listing.Indeed,
		BaseURL:   baseURL,
		Selectors: selectors,
		SearchURL: SearchURL,
	}, page, q, shots)
}

// SearchURL builds /jobs?q=&l=&fromage=<days>&sc=<remote filter>.
func SearchURL(term string, q scraper.Query) string {
	v := url.Values{}
	v.Set("q", term)
	v.Set("l", q.Location)
	if days := int(q.MaxAge.Hours() / 24); days > 0 {
		v.Set("fromage", strconv.Itoa(days))
	}
	if q.Remote {
		v.Set("sc", remoteFilter)
	}
	return baseURL + "/jobs?" + v.Encode()
}
