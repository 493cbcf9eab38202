package config

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string `validate:"required"`
	IsProduction  bool
	EnableDBCheck bool

	// DBDriver selects the storage backend: "postgres" or "sqlite".
	DBDriver   string `validate:"oneof=postgres sqlite"`
	SQLitePath string `validate:"required_if=DBDriver sqlite"`

	RateLimit     string `validate:"required"` // ulule/limiter formatted rate, e.g. "100-M"
	EnableMetrics bool

	// OverdueSweepSchedule is a cron spec for the background interest sweep.
	// An empty value disables the worker.
	OverdueSweepSchedule string

	// Society policy knobs. Parsed here so the rest of the app never touches
	// raw environment strings.
	LoanInterestRate          decimal.Decimal
	LoanDueDay                int `validate:"min=1,max=28"`
	InitialDepositAmount      decimal.Decimal
	MonthlySubscriptionAmount decimal.Decimal
	CurrencyCode              string `validate:"required,alpha,len=3"`
}

var validate = validator.New()

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("SQLITE_PATH", "data/sla.db")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("ENABLE_METRICS", true)
	viper.SetDefault("OVERDUE_SWEEP_SCHEDULE", "0 2 * * *")
	viper.SetDefault("LOAN_INTEREST_RATE", "0.20")
	viper.SetDefault("LOAN_DUE_DAY", 5)
	viper.SetDefault("INITIAL_DEPOSIT_AMOUNT", "1000")
	viper.SetDefault("MONTHLY_SUBSCRIPTION_AMOUNT", "500")
	viper.SetDefault("CURRENCY_CODE", "SZL")

	// Environment variables override defaults and any .env values.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.DBDriver = viper.GetString("DB_DRIVER")
	cfg.SQLitePath = viper.GetString("SQLITE_PATH")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.EnableMetrics = viper.GetBool("ENABLE_METRICS")
	cfg.OverdueSweepSchedule = viper.GetString("OVERDUE_SWEEP_SCHEDULE")

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		log.Printf("Warning: Invalid value for DB_DRIVER ('%s'). Defaulting to postgres.\n", cfg.DBDriver)
		cfg.DBDriver = "postgres"
	}

	if cfg.DBDriver == "postgres" && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.LoanInterestRate = decimalOrDefault("LOAN_INTEREST_RATE", "0.20")
	cfg.InitialDepositAmount = decimalOrDefault("INITIAL_DEPOSIT_AMOUNT", "1000")
	cfg.MonthlySubscriptionAmount = decimalOrDefault("MONTHLY_SUBSCRIPTION_AMOUNT", "500")
	cfg.CurrencyCode = viper.GetString("CURRENCY_CODE")

	cfg.LoanDueDay = viper.GetInt("LOAN_DUE_DAY")
	if cfg.LoanDueDay < 1 || cfg.LoanDueDay > 28 {
		log.Printf("Warning: Invalid value for LOAN_DUE_DAY (%d). Defaulting to 5.\n", cfg.LoanDueDay)
		cfg.LoanDueDay = 5
	}

	// Defaults above cover absent keys; explicit overrides can still be
	// nonsense (PORT="", CURRENCY_CODE="lilangeni"). Reject those outright
	// rather than booting a server that misprices every loan.
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// decimalOrDefault reads a decimal-valued key, falling back to def when the
// value does not parse.
func decimalOrDefault(key, def string) decimal.Decimal {
	raw := viper.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		d, _ = decimal.NewFromString(def)
	}
	return d
}
