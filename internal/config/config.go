package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string

	// DB
	Env    string // "dev" | "prod"
	DBPath string // e.g. "./data/karty.db"

	// Timezone days and months are cut at for attendance reports.
	// Empty means the process-local zone.
	Timezone string

	// VoucherMinPresence is the minimum first-to-last scan spread a day
	// needs to earn a meal voucher.
	VoucherMinPresence time.Duration

	// Audit trail retention
	AuditRetentionDays int // 0 = keep forever
	PruneIntervalHours int // how often the pruner runs (default 6)
}

func FromEnv() Config {
	addr := getenvDefault("KARTY_HTTP_ADDR", ":8080")

	env := strings.ToLower(getenvDefault("KARTY_ENV", "dev"))
	if env != "dev" && env != "prod" {
		// fail-soft: treat unknown as dev
		env = "dev"
	}

	dbPath := getenvDefault("KARTY_DB_PATH", "./data/karty.db")
	tz := strings.TrimSpace(os.Getenv("KARTY_TZ"))

	minPresence := getenvDuration("KARTY_VOUCHER_MIN_PRESENCE", 3*time.Hour)
	retentionDays := getenvInt("KARTY_AUDIT_RETENTION_DAYS", 90)
	pruneInterval := getenvInt("KARTY_PRUNE_INTERVAL_HOURS", 6)

	return Config{
		HTTPAddr: addr,
		Env:      env,
		DBPath:   dbPath,
		Timezone: tz,

		VoucherMinPresence: minPresence,

		AuditRetentionDays: retentionDays,
		PruneIntervalHours: pruneInterval,
	}
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
