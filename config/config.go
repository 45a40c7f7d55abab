package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	ListPath   string
	CatalogURL string

	SearchDebounceMs      int
	RouletteDelayMs       int
	ScrollTopThreshold    int
	ScrollBottomTolerance int

	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int
	PageTimeoutSec int

	ReportCSVPath string
	ChromeBin     string

	LogLevel string
	LogFile  string

	Keys KeyConfig
}

// KeyConfig lists the keys bound to each browser control. An empty list
// leaves the control unbound.
type KeyConfig struct {
	Search       []string
	Filter       []string
	Open         []string
	Close        []string
	Roulette     []string
	ScrollTop    []string
	ScrollBottom []string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "placebook"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "placebook"),
		PostgresDB:       getEnv("POSTGRES_DB", "placebook"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		ListPath:   getEnv("LIST_PATH", "list.json"),
		CatalogURL: getEnv("CATALOG_URL", ""),

		SearchDebounceMs:      getEnvInt("SEARCH_DEBOUNCE_MS", 300),
		RouletteDelayMs:       getEnvInt("ROULETTE_DELAY_MS", 1400),
		ScrollTopThreshold:    getEnvInt("SCROLL_TOP_THRESHOLD", 16),
		ScrollBottomTolerance: getEnvInt("SCROLL_BOTTOM_TOLERANCE", 3),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 2),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 1000),
		MaxRetries:     getEnvInt("MAX_RETRIES", 2),
		PageTimeoutSec: getEnvInt("PAGE_TIMEOUT_SEC", 20),

		ReportCSVPath: getEnv("REPORT_CSV_PATH", "./output/crawl_report.csv"),
		ChromeBin:     getEnv("CHROME_BIN", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", "./output/placebook.log"),

		Keys: KeyConfig{
			Search:       getEnvKeys("KEY_SEARCH", "/"),
			Filter:       getEnvKeys("KEY_FILTER", "tab"),
			Open:         getEnvKeys("KEY_OPEN", "enter"),
			Close:        getEnvKeys("KEY_CLOSE", "x"),
			Roulette:     getEnvKeys("KEY_ROULETTE", "r"),
			ScrollTop:    getEnvKeys("KEY_SCROLL_TOP", "g,home"),
			ScrollBottom: getEnvKeys("KEY_SCROLL_BOTTOM", "G,end"),
		},
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

// getEnvKeys splits a comma separated key list. A variable that is set but
// empty yields no keys, which is how optional controls are switched off.
func getEnvKeys(key, fallback string) []string {
	val, ok := os.LookupEnv(key)
	if !ok {
		val = fallback
	}
	var keys []string
	for _, k := range strings.Split(val, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
