package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"go-jobapply-automation/internal/browser"
	"go-jobapply-automation/internal/config"
)

// runCheck loads the config and every platform's cookie file and prints
// what it found, without opening a browser.
func runCheck(args []string) error {
	cfgPath := config.DefaultPath
	if len(args) > 0 {
		cfgPath = args[0]
	}

	fmt.Println("🔧 Checking config...")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	fmt.Printf("✅ Config loaded from %s\n", cfgPath)
	fmt.Printf("   Telegram Token: %s\n", mask(cfg.TelegramToken))
	fmt.Printf("   Telegram Chat ID: %d\n", cfg.TelegramChatID)
	fmt.Printf("   Database: %t, Redis: %t\n", cfg.DatabaseURL != "", cfg.RedisURL != "")
	fmt.Printf("   Search terms: %q\n", cfg.Search.Terms)
	fmt.Printf("   Policy: %s\n", cfg.Criteria.Policy)

	platforms, err := cfg.PlatformList()
	if err != nil {
		return err
	}
	fmt.Println("🍪 Checking cookies...")
	for _, p := range platforms {
		path := filepath.Join(cfg.Browser.CookiesPath, "cookies-"+strings.ToLower(string(p))+".json")
		cookies, err := browser.LoadCookies(path)
		if err != nil {
			fmt.Printf("   ⚠️ %s: %v\n", p, err)
			continue
		}
		fmt.Printf("   ✅ %s: %d cookies\n", p, len(cookies))
	}
	return nil
}

func mask(secret string) string {
	if len(secret) <= 10 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:10] + "..."
}
