package browser

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Screenshots saves full-page captures when a scrape goes wrong.
type Screenshots struct {
	outputDir string
}

func NewScreenshots(dir string) *Screenshots {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("⚠️ Failed to create screenshot directory: %v", err)
	}
	return &Screenshots{outputDir: dir}
}

// Capture writes <name>_<timestamp>.png and returns its path. A nil
// receiver is a no-op so adapters can run without a capture directory.
func (s *Screenshots) Capture(page playwright.Page, name, message string) (string, error) {
	if s == nil || page == nil {
		return "", nil
	}
	path := filepath.Join(s.outputDir, fileName(name, time.Now()))
	log.Printf("📸 %s", message)

	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		log.Printf("⚠️ Failed to capture screenshot: %v", err)
		return "", err
	}

	log.Printf("   Screenshot saved: %s", path)
	return path, nil
}

func fileName(name string, at time.Time) string {
	return fmt.Sprintf("%s_%s.png", name, at.Format("2006-01-02_15-04-05"))
}
