package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const (
	DATE_PARSE_FORMAT  = "2006-01-02"
	MONTH_PARSE_FORMAT = "2006-01"
	CLOCK_PARSE_FORMAT = "15:04"
)

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

// DepositMinPercent/DepositMaxPercent bound the caller-supplied deposit
// percent; DepositDefaultPercent applies when no percent is supplied at all.
// An explicit 0 disables the deposit and the full total falls due upfront.
func DepositMinPercent() int     { return envInt("DEPOSIT_MIN_PERCENT", 20) }
func DepositMaxPercent() int     { return envInt("DEPOSIT_MAX_PERCENT", 70) }
func DepositDefaultPercent() int { return envInt("DEPOSIT_DEFAULT_PERCENT", 30) }

// HoldTTL is how long an unpaid transfer reservation holds its interval
// before the sweeper cancels it.
func HoldTTL() time.Duration {
	return time.Duration(envInt("HOLD_TTL_MINUTES", 120)) * time.Minute
}

// SameDayCutoffHour: overnight check-ins dated today are rejected from this
// local hour onward.
func SameDayCutoffHour() int { return envInt("SAME_DAY_CUTOFF_HOUR", 14) }

func SweepInterval() time.Duration {
	return time.Duration(envInt("SWEEP_INTERVAL_SECONDS", 60)) * time.Second
}

func CalendarCacheTTL() time.Duration {
	return time.Duration(envInt("CALENDAR_CACHE_TTL_SECONDS", 600)) * time.Second
}

func LookupRecentLimit() int { return envInt("LOOKUP_RECENT_LIMIT", 5) }

func WebhookAPIKey() string { return os.Getenv("PAYMENT_WEBHOOK_APIKEY") }

func BankName() string          { return os.Getenv("BANK_NAME") }
func BankAccountNumber() string { return os.Getenv("BANK_ACCOUNT_NUMBER") }
func BankAccountHolder() string { return os.Getenv("BANK_ACCOUNT_HOLDER") }
