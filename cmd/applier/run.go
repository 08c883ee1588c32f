package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/redis/go-redis/v9"

	"go-jobapply-automation/internal/browser"
	"go-jobapply-automation/internal/config"
	"go-jobapply-automation/internal/database"
	"go-jobapply-automation/internal/listing"
	"go-jobapply-automation/internal/orchestrator"
	"go-jobapply-automation/internal/ratelimit"
	"go-jobapply-automation/internal/scraper"
	"go-jobapply-automation/internal/scraper/glassdoor"
	"go-jobapply-automation/internal/scraper/indeed"
	"go-jobapply-automation/internal/scraper/linkedin"
	"go-jobapply-automation/internal/telegram"
)

// deps are the long-lived connections shared by every scheduled run.
type deps struct {
	repo    *database.Repository
	rdb     *redis.Client
	bot     *telegram.Bot
	tracker ratelimit.Tracker
}

func connect(ctx context.Context, cfg *config.Config) (*deps, error) {
	d := &deps{}

	if cfg.DatabaseURL != "" {
		repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		d.repo = repo
		if err := repo.Migrate(ctx); err != nil {
			d.Close()
			return nil, err
		}
		d.tracker = repo
		log.Println("🗄️ Database connected.")
	} else {
		log.Println("⚠️ DATABASE_URL not set, verdicts will not be stored.")
	}

	// Redis takes over rate-limit tracking when both are configured.
	if cfg.RedisURL != "" {
		rdb, err := ratelimit.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.rdb = rdb
		d.tracker = ratelimit.NewRedisTracker(rdb, 2*cfg.RateLimitCooldown)
		log.Println("🧰 Redis connected.")
	}

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.bot = bot
		log.Println("🤖 Telegram Bot initialized.")
	}
	return d, nil
}

func (d *deps) Close() {
	if d.rdb != nil {
		_ = d.rdb.Close()
	}
	if d.repo != nil {
		d.repo.Close()
	}
}

func (d *deps) applier() orchestrator.Applier {
	if d.bot == nil {
		return orchestrator.LogApplier
	}
	return d.bot
}

func (d *deps) store() orchestrator.Store {
	if d.repo == nil {
		return nil
	}
	return d.repo
}

func runOnce(ctx context.Context, cfg *config.Config, d *deps) error {
	log.Println("🚀 Starting job application run...")

	platforms, err := cfg.PlatformList()
	if err != nil {
		return err
	}

	opts := browser.Options{
		Headless:  cfg.Browser.Headless,
		UserAgent: cfg.Browser.UserAgent,
		Width:     1366,
		Height:    900,
	}
	pwManager, err := browser.NewPlaywright(ctx, opts)
	if err != nil {
		return err
	}
	defer pwManager.Close()

	var allCookies []playwright.OptionalCookie
	for _, p := range platforms {
		cookieFile := filepath.Join(cfg.Browser.CookiesPath, "cookies-"+strings.ToLower(string(p))+".json")
		cookies, err := browser.LoadCookies(cookieFile)
		if err != nil {
			log.Printf("⚠️ Could not load %s cookies: %v. Continuing.", p, err)
			continue
		}
		log.Printf("🍪 Loaded %s cookies (%d)", p, len(cookies))
		allCookies = append(allCookies, cookies...)
	}

	browserCtx, err := pwManager.NewContext(allCookies, opts)
	if err != nil {
		return err
	}
	defer browserCtx.Close()

	shots := browser.NewScreenshots(cfg.Browser.ScreenshotDir)
	query := cfg.Query()
	sources := make([]scraper.Source, 0, len(platforms))
	for _, p := range platforms {
		// One page per platform so platforms can run side by side.
		page, err := browserCtx.NewPage()
		if err != nil {
			return fmt.Errorf("failed to create page for %s: %w", p, err)
		}
		sources = append(sources, newSource(p, page, query, shots))
	}
	log.Println("✅ Browser initialized successfully!")

	o := orchestrator.New(&cfg.Criteria, d.store(), d.tracker, d.applier(), orchestrator.Options{
		Host:        cfg.Host,
		Terms:       cfg.Search.Terms,
		Cooldown:    cfg.RateLimitCooldown,
		Parallelism: cfg.Parallelism,
	})
	summary, runErr := o.Run(ctx, sources)
	if summary != nil {
		log.Printf("🏁 %s", summary)
		saveSummary(summary)
		if d.repo != nil {
			if n, err := d.repo.CountApplications(context.WithoutCancel(ctx), summary.RunID); err == nil {
				log.Printf("💾 %d new application(s) stored", n)
			}
		}
		if d.bot != nil {
			if err := d.bot.SendStatus(summary.String()); err != nil {
				log.Printf("⚠️ Failed to send status to Telegram: %v", err)
			}
		}
	}
	if runErr != nil && d.bot != nil && !errors.Is(runErr, context.Canceled) {
		_ = d.bot.SendError(runErr)
	}
	return runErr
}

func newSource(p listing.Platform, page playwright.Page, q scraper.Query, shots *browser.Screenshots) scraper.Source {
	switch p {
	case listing.Indeed:
		return indeed.New(page, q, shots)
	case listing.Glassdoor:
		return glassdoor.New(page, q, shots)
	default:
		return linkedin.New(page, q, shots)
	}
}

// saveSummary writes logs/run-YYYY-MM-DD_HH-MM-SS.json.
func saveSummary(summary *orchestrator.Summary) {
	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create logs directory: %v", err)
		return
	}

	filename := fmt.Sprintf("run-%s.json", summary.Started.Format("2006-01-02_15-04-05"))
	filePath := filepath.Join(logDir, filename)

	data, err := json.MarshalIndent(summary, "", " ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal run summary: %v", err)
		return
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write run summary: %v", err)
		return
	}
	log.Printf("📁 Run summary saved to %s", filePath)
}
