package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config keeps runtime settings for the service.
type Config struct {
	HTTPAddr           string
	DatabaseURL        string
	Store              string
	LogLevel           string
	LogFormat          string
	GinMode            string
	ReportInterval     time.Duration
	ReportAt           string
	StrictCategoryRefs bool
}

// Load reads PROMPTWIZARD_* environment variables with sane defaults.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("promptwizard")
	v.AutomaticEnv()

	v.SetDefault("http_addr", ":8300")
	v.SetDefault("database_url", "prompts.db")
	v.SetDefault("store", StoreSQLite)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("report_interval_minutes", "")
	v.SetDefault("report_at", "")
	v.SetDefault("strict_category_refs", "false")

	interval, err := parseInterval(strings.TrimSpace(v.GetString("report_interval_minutes")))
	if err != nil {
		return Config{}, err
	}
	strict, err := parseBool(strings.TrimSpace(v.GetString("strict_category_refs")))
	if err != nil {
		return Config{}, fmt.Errorf("PROMPTWIZARD_STRICT_CATEGORY_REFS: %w", err)
	}

	cfg := Config{
		HTTPAddr:           strings.TrimSpace(v.GetString("http_addr")),
		DatabaseURL:        strings.TrimSpace(v.GetString("database_url")),
		Store:              strings.ToLower(strings.TrimSpace(v.GetString("store"))),
		LogLevel:           strings.TrimSpace(v.GetString("log_level")),
		LogFormat:          strings.TrimSpace(v.GetString("log_format")),
		GinMode:            strings.TrimSpace(v.GetString("gin_mode")),
		ReportInterval:     interval,
		ReportAt:           strings.TrimSpace(v.GetString("report_at")),
		StrictCategoryRefs: strict,
	}

	if cfg.HTTPAddr == "" {
		return cfg, fmt.Errorf("PROMPTWIZARD_HTTP_ADDR must not be empty")
	}
	switch cfg.Store {
	case StoreSQLite, StoreMemory:
	default:
		return cfg, fmt.Errorf("unknown store %q, expected %s or %s", cfg.Store, StoreSQLite, StoreMemory)
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return cfg, fmt.Errorf("unknown gin mode %q", cfg.GinMode)
	}
	switch cfg.LogFormat {
	case "console", "json":
	default:
		return cfg, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return cfg, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	if cfg.ReportAt != "" {
		if err := checkClock(cfg.ReportAt); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

// parseInterval reads a whole number of minutes; empty disables the report.
func parseInterval(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("PROMPTWIZARD_REPORT_INTERVAL_MINUTES: %q is not a non-negative number of minutes", raw)
	}
	return time.Duration(minutes) * time.Minute, nil
}

func parseBool(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}

// checkClock validates an HH:MM wall-clock time.
func checkClock(raw string) error {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return fmt.Errorf("PROMPTWIZARD_REPORT_AT: invalid time %q, expected HH:MM", raw)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return fmt.Errorf("PROMPTWIZARD_REPORT_AT: invalid hour in %q", raw)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return fmt.Errorf("PROMPTWIZARD_REPORT_AT: invalid minute in %q", raw)
	}
	return nil
}
