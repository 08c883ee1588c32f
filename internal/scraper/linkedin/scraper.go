package linkedin

import (
	"net/url"
	"strconv"

	"github.com/playwright-community/playwright-go"

	"go-jobapply-automation/internal/browser"
	"go-jobapply-automation/internal/listing"
	"go-jobapply-automation/internal/scraper"
)

const baseURL = "https://www.linkedin.com"

var selectors = scraper.Selectors{
	ResultList: ".scaffold-layout__list > div, .jobs-search-results-list",
	Card:       "li.scaffold-layout__list-item, li.jobs-search-results__list-item",
	Title:      ".job-card-list__title--link strong, .job-card-list__title strong, .artdeco-entity-lockup__title",
	Company:    ".artdeco-entity-lockup__subtitle, .job-card-container__primary-description",
	Location:   ".artdeco-entity-lockup__caption, .job-card-container__metadata-item",
	Pay:        ".artdeco-entity-lockup__metadata",
	Link:       "a.job-card-container__link, a.job-card-list__title--link",

	NoResults: "h2:has-text('No matching jobs found')",
	Blocked:   ".error-code",

	Description:       "#job-details, .jobs-description__content",
	ExpandDescription: "button[data-testid=\"expandable-text-button\"], button.jobs-description__footer-button",
}

// New returns the LinkedIn job search. The page must carry a logged-in
// session.
func New(page playwright.Page, q scraper.Query, shots *browser.Screenshots) *scraper.Board {
	return scraper.NewBoard(scraper.BoardConfig{
		Platform:   listing.LinkedIn,
		BaseURL:    baseURL,
		Selectors:  selectors,
		SearchURL:  SearchURL,
		StripQuery: true,
	}, page, q, shots)
}

// SearchURL builds the job search URL: keywords and location, remote only
// (f_WT=2), posted within MaxAge (f_TPR=r<seconds>) and Easy Apply only
// (f_AL=true).
func SearchURL(term string, q scraper.Query) string {
	v := url.Values{}
	v.Set("keywords", term)
	if q.Location != "" {
		v.Set("location", q.Location)
	}
	if q.Remote {
		v.Set("f_WT", "2")
	}
	if secs := int64(q.MaxAge.Seconds()); secs > 0 {
		v.Set("f_TPR", "r"+strconv.FormatInt(secs, 10))
	}
	if q.EasyApply {
		v.Set("f_AL", "true")
	}
	return baseURL + "/jobs/search/?" + v.Encode()
}
