package browser

import (
	"context"
	"fmt"
	"log"

	"github.com/playwright-community/playwright-go"
)

// Options configure the launched browser.
type Options struct {
	Headless  bool
	UserAgent string
	Width     int
	Height    int
}

type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewPlaywright starts the driver and a Chromium instance.
func NewPlaywright(ctx context.Context, opts Options) (*PlaywrightManager, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch chromium: %w", err)
	}

	log.Printf("🌐 Chromium launched (headless=%v)", opts.Headless)
	return &PlaywrightManager{pw: pw, browser: b}, nil
}

// NewContext opens an isolated browser context preloaded with cookies.
func (pm *PlaywrightManager) NewContext(cookies []playwright.OptionalCookie, opts Options) (playwright.BrowserContext, error) {
	ctxOpts := playwright.BrowserNewContextOptions{}
	if opts.UserAgent != "" {
		ctxOpts.UserAgent = playwright.String(opts.UserAgent)
	}
	if opts.Width > 0 && opts.Height > 0 {
		ctxOpts.Viewport = &playwright.Size{Width: opts.Width, Height: opts.Height}
	}

	bctx, err := pm.browser.NewContext(ctxOpts)
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}

	if len(cookies) > 0 {
		if err := bctx.AddCookies(cookies); err != nil {
			_ = bctx.Close()
			return nil, fmt.Errorf("could not add cookies: %w", err)
		}
	}
	return bctx, nil
}

func (pm *PlaywrightManager) Close() error {
	var firstErr error
	if pm.browser != nil {
		if err := pm.browser.Close(); err != nil {
			firstErr = err
		}
	}
	if pm.pw != nil {
		if err := pm.pw.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
