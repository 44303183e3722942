package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	TargetURL string

	SubmissionThreshold int
	FilterCategory      string
	CategoryColumn      int
	SubmissionTotals    []int

	MaxPages  int
	MaxStalls int
	PageSize  int

	LoadWaitMs          int
	SettleDelayMs       int
	ProcessingTimeoutMs int
	TableWaitMs         int
	RateLimitMs         int
	MaxRetries          int

	CSVOutputPath   string
	ChromeBin       string
	Headless        bool
	PauseBeforeExit bool
	LogDebug        bool

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		TargetURL: getEnv("TARGET_URL", "https://sih.gov.in/sih2025PS"),

		SubmissionThreshold: getEnvInt("SUBMISSION_THRESHOLD", 200),
		FilterCategory:      getEnv("FILTER_CATEGORY", "software"),
		CategoryColumn:      getEnvInt("CATEGORY_COLUMN", 3),
		SubmissionTotals:    getEnvIntList("SUBMISSION_TOTALS", []int{500, 1000}),

		MaxPages:  getEnvInt("MAX_PAGES", 20),
		MaxStalls: getEnvInt("MAX_STALLS", 3),
		PageSize:  getEnvInt("PAGE_SIZE", 100),

		LoadWaitMs:          getEnvInt("LOAD_WAIT_MS", 5000),
		SettleDelayMs:       getEnvInt("SETTLE_DELAY_MS", 1000),
		ProcessingTimeoutMs: getEnvInt("PROCESSING_TIMEOUT_MS", 10000),
		TableWaitMs:         getEnvInt("TABLE_WAIT_MS", 5000),
		RateLimitMs:         getEnvInt("RATE_LIMIT_MS", 1000),
		MaxRetries:          getEnvInt("MAX_RETRIES", 3),

		CSVOutputPath:   getEnv("CSV_OUTPUT_PATH", "./output/sih_problem_statements_under_200.csv"),
		ChromeBin:       getEnv("CHROME_BIN", ""),
		Headless:        getEnvBool("HEADLESS", false),
		PauseBeforeExit: getEnvBool("PAUSE_BEFORE_EXIT", true),
		LogDebug:        getEnvBool("LOG_DEBUG", false),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "sih_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func (c *Config) LoadWait() time.Duration    { return ms(c.LoadWaitMs) }
func (c *Config) SettleDelay() time.Duration { return ms(c.SettleDelayMs) }
func (c *Config) TableWait() time.Duration   { return ms(c.TableWaitMs) }
func (c *Config) RateLimit() time.Duration   { return ms(c.RateLimitMs) }

func (c *Config) ProcessingTimeout() time.Duration {
	return ms(c.ProcessingTimeoutMs)
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

// getEnvIntList parses a comma separated list such as "500,1000".
// Any malformed element discards the whole value.
func getEnvIntList(key string, fallback []int) []int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []int
	for _, part := range strings.Split(val, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fallback
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
