package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobapply-automation/internal/config"
	"go-jobapply-automation/internal/database"
	"go-jobapply-automation/internal/listing"
	"go-jobapply-automation/internal/scheduler"
	"go-jobapply-automation/internal/stats"
	"go-jobapply-automation/internal/telegram"
)

const usage = `Usage:
  applier apply  [-config path] [-every 6h] [-timeout 30m]
  applier output -ignore-terms N [-config path] [-telegram]
  applier check  [config path]
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "apply":
		err = runApply(ctx, os.Args[2:])
	case "output":
		err = runOutput(ctx, os.Args[2:])
	case "check":
		err = runCheck(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func runApply(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath, "path to the YAML config")
	every := fs.Duration("every", 0, "repeat the run on this interval; 0 runs once")
	timeout := fs.Duration("timeout", 30*time.Minute, "limit for a single run")
	_ = fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	log.Printf("🔧 Config loaded. Platforms: %v, terms: %q, policy: %s",
		cfg.Platforms, cfg.Search.Terms, cfg.Criteria.Policy)

	deps, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	once := func(ctx context.Context) error {
		runCtx, cancel := context.WithTimeout(ctx, *timeout)
		defer cancel()
		return runOnce(runCtx, cfg, deps)
	}

	if *every <= 0 {
		return once(ctx)
	}

	s := scheduler.New(ctx, *every, once)
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	log.Println("🛑 Shutting down...")
	s.Stop()
	return nil
}

func runOutput(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("output", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath, "path to the YAML config")
	n := fs.Int("ignore-terms", 0, "print the N most frequent ignore terms")
	toTelegram := fs.Bool("telegram", false, "also send the tables to the Telegram chat")
	_ = fs.Parse(args)

	if *n <= 0 {
		return fmt.Errorf("output: -ignore-terms must be a positive number")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("output: DATABASE_URL is required")
	}

	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer repo.Close()

	brief, err := stats.New(repo, listing.ScopeBrief).Top(ctx, *n)
	if err != nil {
		return err
	}
	full, err := stats.New(repo, listing.ScopeFull).Top(ctx, *n)
	if err != nil {
		return err
	}

	if err := stats.Render(os.Stdout, "Brief Job Listing Ignore Terms", brief); err != nil {
		return err
	}
	if err := stats.Render(os.Stdout, "Job Listing Ignore Terms", full); err != nil {
		return err
	}

	if *toTelegram {
		if cfg.TelegramToken == "" {
			return fmt.Errorf("output: TELEGRAM_BOT_TOKEN is required with -telegram")
		}
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			return err
		}
		return bot.SendIgnoreReport(brief, full)
	}
	return nil
}
