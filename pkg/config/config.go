package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// RS data source (dalinaum/rs raw files)
	RSData RSDataConfig

	// Lookback windows for the latest-date search
	Lookback LookbackConfig

	// Scheduler
	Scheduler SchedulerConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// RSDataConfig holds the locations of the external RS datasets
type RSDataConfig struct {
	// PostsBaseURL hosts the daily markdown posts
	// ({date}-krx-rs.markdown, {date}-krx-trend-template.markdown)
	PostsBaseURL string

	// PriceBaseURL hosts per-stock daily price CSVs ({date}/{code}-{name}.csv)
	PriceBaseURL string

	// StockListURL is the KRX reference table (krx-list.csv)
	StockListURL string
}

// LookbackConfig bounds how far back the date locator searches
type LookbackConfig struct {
	AnalyzeDays int // interactive analysis path
	ListDays    int // daily trend-template list path
}

// SchedulerConfig holds scheduler configuration
type SchedulerConfig struct {
	Enabled bool
	// ListRefreshCron is a 6-field cron expression (with seconds)
	ListRefreshCron string
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		RSData: RSDataConfig{
			PostsBaseURL: getEnv("RS_POSTS_BASE_URL", "https://raw.githubusercontent.com/dalinaum/rs/main/docs/_posts"),
			PriceBaseURL: getEnv("RS_PRICE_BASE_URL", "https://raw.githubusercontent.com/dalinaum/rs/main/DATA"),
			StockListURL: getEnv("RS_STOCK_LIST_URL", "https://raw.githubusercontent.com/dalinaum/rs/main/krx-list.csv"),
		},

		Lookback: LookbackConfig{
			AnalyzeDays: getEnvAsInt("LOOKBACK_ANALYZE_DAYS", 30),
			ListDays:    getEnvAsInt("LOOKBACK_LIST_DAYS", 14),
		},

		Scheduler: SchedulerConfig{
			Enabled: getEnvAsBool("SCHEDULER_ENABLED", true),
			// 평일 오후 6시 (장 마감 후 데이터 발행 시점)
			ListRefreshCron: getEnv("LIST_REFRESH_CRON", "0 0 18 * * MON-FRI"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.RSData.PostsBaseURL == "" || c.RSData.PriceBaseURL == "" || c.RSData.StockListURL == "" {
		return fmt.Errorf("RS data URLs must not be empty")
	}

	if c.Lookback.AnalyzeDays <= 0 || c.Lookback.ListDays <= 0 {
		return fmt.Errorf("lookback windows must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
