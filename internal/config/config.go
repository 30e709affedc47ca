package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DatabaseURL string
	AdminIDs    []int64 // кто может править справочник (комнаты/вопросы/ученики)
	HTTPAddr    string
	LogLevel    string
	Env         string // dev|prod
	SentryDSN   string
	RedisAddr   string        // пусто — кэш лидерборда выключен
	CacheTTL    time.Duration // TTL записи в кэше лидерборда
	StrictRanks bool          // запрещать оценщику один rank двум ученикам в рамках вопроса
}

func Load() (*Config, error) {
	adminIDs, err := parseIDs(os.Getenv("ADMIN_IDS"))
	if err != nil {
		return nil, fmt.Errorf("ADMIN_IDS: %w", err)
	}

	cacheTTL := 30 * time.Second
	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("CACHE_TTL: %w", err)
		}
		cacheTTL = d
	}

	cfg := &Config{
		DatabaseURL: mustEnv("DATABASE_URL"),
		AdminIDs:    adminIDs,
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		Env:         getenv("ENV", "dev"),
		SentryDSN:   os.Getenv("SENTRY_DSN"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		CacheTTL:    cacheTTL,
		StrictRanks: getenv("STRICT_RANKS", "false") == "true",
	}
	return cfg, nil
}

func (c *Config) IsAdmin(id int64) bool {
	for _, a := range c.AdminIDs {
		if a == id {
			return true
		}
	}
	return false
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("required env " + k + " is empty")
	}
	return v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func parseIDs(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad id %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}
