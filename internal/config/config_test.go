package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobapply-automation/internal/filter"
	"go-jobapply-automation/internal/listing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	for _, key := range []string{"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "DATABASE_URL", "REDIS_URL", "JOBAPPLY_HOST", "PORT"} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
telegram_token: file-token
telegram_chat_id: 42
platforms: [Indeed, linkedin, indeed]
search:
  terms: [golang, "platform engineer"]
  location: Austin, TX
  remote: true
  max_age_days: 7
  easy_apply: true
  min_company_rating: 3.5
  results_per_term: 25
criteria:
  ignore:
    titles: [intern, [senior, java]]
  gold_star:
    companies: [initech]
  desired_salary: {min: 90000, max: 150000}
  desired_experience: {max: 5}
  selection_policy: platinum
browser:
  headless: false
rate_limit_cooldown: 2h30m
parallelism: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.TelegramToken)
	assert.Equal(t, int64(42), cfg.TelegramChatID)
	assert.Equal(t, filter.PolicyIdealAndClean, cfg.Criteria.Policy)
	assert.Equal(t, filter.Literals("initech"), cfg.Criteria.Ideal.Companies)
	assert.Equal(t, "['senior', 'java']", cfg.Criteria.Ignore.Titles[1].String())
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 150*time.Minute, cfg.RateLimitCooldown)
	assert.Equal(t, 2, cfg.Parallelism)

	platforms, err := cfg.PlatformList()
	require.NoError(t, err)
	assert.Equal(t, []listing.Platform{listing.Indeed, listing.LinkedIn}, platforms)

	q := cfg.Query()
	assert.Equal(t, "Austin, TX", q.Location)
	assert.Equal(t, 7*24*time.Hour, q.MaxAge)
	assert.Equal(t, 90000, q.MinSalary)
	assert.Equal(t, 150000, q.MaxSalary)
	assert.Equal(t, 3.5, q.MinRating)
	assert.Equal(t, 25, q.Limit)
	assert.True(t, q.EasyApply)
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"linkedin", "indeed", "glassdoor"}, cfg.Platforms)
	assert.Equal(t, []string{""}, cfg.Search.Terms)
	assert.Equal(t, 6*time.Hour, cfg.RateLimitCooldown)
	assert.Equal(t, 1, cfg.Parallelism)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, ".cookies", cfg.Browser.CookiesPath)
	assert.NotEmpty(t, cfg.Host)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")
	t.Setenv("DATABASE_URL", "postgres://localhost/jobs")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JOBAPPLY_HOST", "10.0.0.7")
	t.Setenv("PORT", "9090")

	cfg, err := Load(writeConfig(t, "telegram_token: file-token\nhost: from-file\n"))
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.TelegramToken)
	assert.Equal(t, int64(-100123), cfg.TelegramChatID)
	assert.Equal(t, "postgres://localhost/jobs", cfg.DatabaseURL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "10.0.0.7", cfg.Host)
	assert.Equal(t, "9090", cfg.ServerPort)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
		want string
	}{
		{name: "non-string phrase", body: "criteria: {ignore: {titles: [3]}}", want: "must be a string"},
		{name: "unknown field", body: "platfroms: [linkedin]", want: "platfroms"},
		{name: "misspelled criteria key", body: "criteria: {selection_polcy: ideal_only}", want: "selection_polcy"},
		{name: "misspelled terms key", body: "criteria: {ignore: {title: [backend]}}", want: "title"},
		{name: "misspelled range key", body: "criteria: {desired_experience: {maximum: 3}}", want: "maximum"},
		{name: "unknown platform", body: "platforms: [monster]", want: `unknown platform "monster"`},
		{name: "ideal policy without ideal rules", body: "criteria: {selection_policy: ideal_only}", want: "ideal rule"},
		{name: "inverted salary", body: "criteria: {desired_salary: {min: 10, max: 1}}", want: "desired_salary"},
		{name: "token without chat", body: "telegram_token: x", want: "TELEGRAM_CHAT_ID"},
		{name: "bad chat id", body: "", env: map[string]string{"TELEGRAM_CHAT_ID": "abc"}, want: "invalid TELEGRAM_CHAT_ID"},
		{name: "negative parallelism", body: "parallelism: -1", want: "parallelism"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoad_ExampleConfig(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join("..", "..", "configs", "config.example.yaml"))
	require.NoError(t, err)

	platforms, err := cfg.PlatformList()
	require.NoError(t, err)
	assert.Equal(t, []listing.Platform{listing.LinkedIn, listing.Indeed, listing.Glassdoor}, platforms)
	assert.Equal(t, filter.PolicyIdealAndNotIgnore, cfg.Criteria.Policy)
	assert.Equal(t, 6*time.Hour, cfg.RateLimitCooldown)
	assert.True(t, cfg.Criteria.Ignore.Titles[2].IsGroup())
}
