package scraper

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-jobapply-automation/internal/browser"
	"go-jobapply-automation/internal/listing"
)

const (
	navigationTimeout = 30000
	cardsTimeout      = 15000
	detailTimeout     = 10000
	fieldTimeout      = 2000
	scrollSteps       = 4
)

// Selectors locate the parts of a job board's pages.
type Selectors struct {
	ResultList string
	Card       string
	Title      string
	Company    string
	Location   string
	Pay        string
	Link       string

	// NoResults is shown instead of cards when a search has no match.
	NoResults string
	// Blocked matches elements only present on block or verification pages.
	Blocked       string
	BlockedTitles []string

	Description       string
	ExpandDescription string
}

// BoardConfig describes one job board.
type BoardConfig struct {
	Platform  listing.Platform
	BaseURL   string
	Selectors Selectors
	SearchURL func(term string, q Query) string
	// StripQuery drops tracking parameters from listing links.
	StripQuery bool
}

// Board drives a job board's search and detail pages in a browser.
type Board struct {
	cfg   BoardConfig
	page  playwright.Page
	query Query
	shots *browser.Screenshots
}

func NewBoard(cfg BoardConfig, page playwright.Page, query Query, shots *browser.Screenshots) *Board {
	return &Board{cfg: cfg, page: page, query: query, shots: shots}
}

func (b *Board) Platform() listing.Platform {
	return b.cfg.Platform
}

func (b *Board) Search(ctx context.Context, term string) ([]Candidate, error) {
	searchURL := b.cfg.SearchURL(term, b.query)
	log.Printf("  🌐 %s search %q: %s", b.cfg.Platform, term, searchURL)

	if err := gotoPage(ctx, b.page, searchURL); err != nil {
		return nil, fmt.Errorf("failed to load %s search: %w", b.cfg.Platform, err)
	}
	if b.blocked(b.page) {
		b.capture(b.page, "search-blocked", "Block page on search")
		return nil, ErrRateLimited
	}
	if b.cfg.Selectors.NoResults != "" && visible(b.page.Locator(b.cfg.Selectors.NoResults)) {
		log.Printf("    ℹ️ No matching jobs for %q", term)
		return nil, nil
	}

	if _, err := b.page.WaitForSelector(b.cfg.Selectors.Card, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(cardsTimeout),
	}); err != nil {
		b.capture(b.page, "search-empty", "Job list not found or empty")
		return nil, nil
	}
	if err := browser.ScrollResults(ctx, b.page, b.cfg.Selectors.ResultList, scrollSteps); err != nil {
		return nil, err
	}

	cards, err := b.page.Locator(b.cfg.Selectors.Card).All()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s cards: %w", b.cfg.Platform, err)
	}
	if b.query.Limit > 0 && len(cards) > b.query.Limit {
		cards = cards[:b.query.Limit]
	}
	log.Printf("    📄 Found %d cards", len(cards))

	out := make([]Candidate, 0, len(cards))
	for i, card := range cards {
		brief, err := b.readCard(card)
		if err != nil {
			log.Printf("    ⚠️ Skipping card %d: %v", i+1, err)
			continue
		}
		out = append(out, NewCandidate(brief, b.detail))
	}
	return out, nil
}

func (b *Board) readCard(card playwright.Locator) (listing.Record, error) {
	sel := b.cfg.Selectors
	href := attrOf(card, sel.Link, "href")
	if href == "" {
		return listing.Record{}, fmt.Errorf("%w: no link", ErrIncomplete)
	}
	link, err := ResolveURL(b.cfg.BaseURL, href, b.cfg.StripQuery)
	if err != nil {
		return listing.Record{}, fmt.Errorf("%w: %v", ErrIncomplete, err)
	}
	return NewBrief(b.cfg.Platform,
		textOf(card, sel.Title),
		textOf(card, sel.Company),
		textOf(card, sel.Location),
		textOf(card, sel.Pay),
		link)
}

// detail opens the listing in its own tab and reads the description.
func (b *Board) detail(ctx context.Context, brief listing.Record) (listing.Record, error) {
	page, err := b.page.Context().NewPage()
	if err != nil {
		return listing.Record{}, fmt.Errorf("failed to open tab: %w", err)
	}
	defer page.Close()

	if err := gotoPage(ctx, page, brief.SourceURL); err != nil {
		return listing.Record{}, fmt.Errorf("failed to load listing: %w", err)
	}
	if b.blocked(page) {
		b.capture(page, "detail-blocked", "Block page on listing")
		return listing.Record{}, ErrRateLimited
	}

	sel := b.cfg.Selectors
	if _, err := page.WaitForSelector(sel.Description, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(detailTimeout),
	}); err != nil {
		return listing.Record{}, fmt.Errorf("%w: description not found", ErrIncomplete)
	}

	if sel.ExpandDescription != "" {
		more := page.Locator(sel.ExpandDescription).First()
		if visible(more) {
			_ = more.Click(playwright.LocatorClickOptions{Force: playwright.Bool(true)})
			if err := browser.Pause(ctx, 300*time.Millisecond, 600*time.Millisecond); err != nil {
				return listing.Record{}, err
			}
		}
	}

	fragment, err := page.Locator(sel.Description).First().InnerHTML()
	if err != nil {
		return listing.Record{}, fmt.Errorf("%w: %v", ErrIncomplete, err)
	}
	text, err := HTMLText(fragment)
	if err != nil {
		return listing.Record{}, fmt.Errorf("%w: %v", ErrIncomplete, err)
	}
	return WithDescription(brief, text)
}

func (b *Board) blocked(page playwright.Page) bool {
	if b.cfg.Selectors.Blocked != "" {
		if n, err := page.Locator(b.cfg.Selectors.Blocked).Count(); err == nil && n > 0 {
			return true
		}
	}
	if len(b.cfg.Selectors.BlockedTitles) == 0 {
		return false
	}
	title, err := page.Title()
	if err != nil {
		return false
	}
	for _, t := range b.cfg.Selectors.BlockedTitles {
		if strings.Contains(title, t) {
			return true
		}
	}
	return false
}

func (b *Board) capture(page playwright.Page, name, message string) {
	_, _ = b.shots.Capture(page, strings.ToLower(string(b.cfg.Platform))+"-"+name, message)
}

func gotoPage(ctx context.Context, page playwright.Page, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := page.Goto(target, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(navigationTimeout),
	})
	return err
}

func visible(loc playwright.Locator) bool {
	ok, err := loc.First().IsVisible()
	return err == nil && ok
}

func textOf(parent playwright.Locator, selector string) string {
	if selector == "" {
		return ""
	}
	loc := parent.Locator(selector).First()
	if n, err := loc.Count(); err != nil || n == 0 {
		return ""
	}
	s, err := loc.InnerText(playwright.LocatorInnerTextOptions{Timeout: playwright.Float(fieldTimeout)})
	if err != nil {
		return ""
	}
	return s
}

func attrOf(parent playwright.Locator, selector, name string) string {
	loc := parent
	if selector != "" {
		loc = parent.Locator(selector)
	}
	loc = loc.First()
	if n, err := loc.Count(); err != nil || n == 0 {
		return ""
	}
	v, err := loc.GetAttribute(name, playwright.LocatorGetAttributeOptions{Timeout: playwright.Float(fieldTimeout)})
	if err != nil {
		return ""
	}
	return v
}

// ResolveURL makes href absolute against base. With stripQuery the query
// and fragment are dropped, which turns tracking-decorated links into the
// canonical listing URL.
func ResolveURL(base, href string, stripQuery bool) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", err
	}
	u := b.ResolveReference(ref)
	if stripQuery {
		u.RawQuery = ""
		u.Fragment = ""
	}
	return u.String(), nil
}
