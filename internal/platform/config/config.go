package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends selectable with STORAGE_BACKEND.
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

const (
	defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTIssuer = "pos-ledger-app"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Snapshot persistence
	StorageBackend  string
	DatabaseURL     string
	SQLitePath      string
	SnapshotKey     string
	PersistDebounce time.Duration
	PersistTimeout  time.Duration

	// Store calendar
	StoreTimezone        string
	Location             *time.Location
	DefaultBankAccountID string

	// Background jobs
	RecurringExpenseSchedule string
	RecurringExpenseAtStart  bool

	// Auth
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	APITokenHash      string

	// External OAuth Providers
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// HTTP surface
	PosthogAPIKey      string
	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_BACKEND", StorageSQLite)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "pos_ledger.db")
	v.SetDefault("SNAPSHOT_KEY", "pos_erp_state_v1")
	v.SetDefault("PERSIST_DEBOUNCE", "1s")
	v.SetDefault("PERSIST_TIMEOUT", "5s")
	v.SetDefault("STORE_TIMEZONE", "Local")
	v.SetDefault("DEFAULT_BANK_ACCOUNT_ID", "bank")
	v.SetDefault("RECURRING_EXPENSE_SCHEDULE", "@hourly")
	v.SetDefault("RECURRING_EXPENSE_AT_START", true)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "12h")
	v.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	v.SetDefault("POS_API_TOKEN_HASH", "")
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URL", "")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.AutomaticEnv()

	cfg := &Config{
		Port:                 v.GetString("PORT"),
		IsProduction:         v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:        v.GetBool("ENABLE_DB_CHECK"),
		StorageBackend:       strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_BACKEND"))),
		DatabaseURL:          v.GetString("PGSQL_URL"),
		SQLitePath:           v.GetString("SQLITE_PATH"),
		SnapshotKey:          v.GetString("SNAPSHOT_KEY"),
		StoreTimezone:        v.GetString("STORE_TIMEZONE"),
		DefaultBankAccountID: v.GetString("DEFAULT_BANK_ACCOUNT_ID"),
		JWTSecret:            v.GetString("JWT_SECRET"),

		RecurringExpenseSchedule: strings.TrimSpace(v.GetString("RECURRING_EXPENSE_SCHEDULE")),
		RecurringExpenseAtStart:  v.GetBool("RECURRING_EXPENSE_AT_START"),

		JWTIssuer:            v.GetString("JWT_ISSUER"),
		APITokenHash:         v.GetString("POS_API_TOKEN_HASH"),
		GoogleClientID:       v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:   v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:    v.GetString("GOOGLE_REDIRECT_URL"),
		PosthogAPIKey:        v.GetString("POSTHOG_API_KEY"),
		RateLimit:            v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins:   splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageBackend {
	case StorageSQLite, StorageMemory:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: STORAGE_BACKEND is postgres but PGSQL_URL is not set.")
		}
	default:
		log.Printf("Warning: Unknown STORAGE_BACKEND ('%s'). Defaulting to %s.\n", cfg.StorageBackend, StorageSQLite)
		cfg.StorageBackend = StorageSQLite
	}

	if cfg.SnapshotKey == "" {
		cfg.SnapshotKey = "pos_erp_state_v1"
	}
	if cfg.DefaultBankAccountID == "" {
		cfg.DefaultBankAccountID = "bank"
	}
	if cfg.RecurringExpenseSchedule == "" {
		cfg.RecurringExpenseSchedule = "@hourly"
	}

	cfg.PersistDebounce = durationOr(v.GetString("PERSIST_DEBOUNCE"), time.Second, "PERSIST_DEBOUNCE")
	cfg.PersistTimeout = durationOr(v.GetString("PERSIST_TIMEOUT"), 5*time.Second, "PERSIST_TIMEOUT")
	cfg.JWTExpiryDuration = durationOr(v.GetString("JWT_EXPIRY_DURATION"), 12*time.Hour, "JWT_EXPIRY_DURATION")

	cfg.Location = time.Local
	if cfg.StoreTimezone != "" && cfg.StoreTimezone != "Local" {
		loc, err := time.LoadLocation(cfg.StoreTimezone)
		if err != nil {
			log.Printf("Warning: Invalid STORE_TIMEZONE ('%s'): %v. Using the host time zone.\n", cfg.StoreTimezone, err)
		} else {
			cfg.Location = loc
		}
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	// Log warnings for missing critical OAuth ENV variables
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google OAuth will not function.")
	}
	if cfg.GoogleClientSecret == "" {
		log.Println("Warning: GOOGLE_CLIENT_SECRET not set. Google OAuth will not function.")
	}
	if cfg.GoogleRedirectURL == "" {
		log.Println("Warning: GOOGLE_REDIRECT_URL not set. Google OAuth will not function.")
	}
	if cfg.APITokenHash == "" {
		log.Println("Warning: POS_API_TOKEN_HASH not set. Terminal x-api-key access is disabled.")
	}

	return cfg, nil
}

func durationOr(raw string, fallback time.Duration, name string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", name, raw, fallback)
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
