package browser

import (
	"context"
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Pause waits a random duration in [min, max], or until ctx is done.
func Pause(ctx context.Context, min, max time.Duration) error {
	d := jitter(min, max)
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func jitter(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)+1))
}

// ScrollResults scrolls the element matched by selector in steps so that
// lazily rendered result cards get attached. With no match the window
// scrolls instead.
func ScrollResults(ctx context.Context, page playwright.Page, selector string, steps int) error {
	for i := 0; i < steps; i++ {
		if _, err := page.Evaluate(`(sel) => {
			const el = document.querySelector(sel);
			if (el) { el.scrollBy(0, el.clientHeight); } else { window.scrollBy(0, window.innerHeight); }
		}`, selector); err != nil {
			return err
		}
		if err := Pause(ctx, 300*time.Millisecond, 800*time.Millisecond); err != nil {
			return err
		}
	}
	return nil
}
