package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogFile  string
	LogLevel string

	StoreDriver string // sqlite | redis | memory
	DBDSN       string
	RedisAddr   string
	RedisPass   string
	RedisDB     int
	RedisPrefix string

	PredictURL     string
	PredictTimeout time.Duration
	MaxUploadBytes int

	GenAIKey     string
	GenAIModel   string
	GenAITimeout time.Duration

	StockPolicy  string // clamp | reject
	CSRF         bool
	CookieSecure bool

	RateMax      int // requests per minute per IP
	LoginRateMax int // login attempts per 10 minutes per IP
}

// Load reads an optional .env file, then the environment, falling back to defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] could not read .env: %v", err)
	}

	cfg := Config{
		Port:     getEnv("PORT", "8080"),
		LogFile:  os.Getenv("LOG_FILE"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", "sqlite")),
		DBDSN:       getEnv("DB_DSN", "cottoncare.db"), // sqlite file in project root
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:     getInt("REDIS_DB", 0),
		RedisPrefix: getEnv("REDIS_PREFIX", "cottoncare:"),

		PredictURL:     getEnv("PREDICT_URL", "https://api-cotton.onrender.com/predict"),
		PredictTimeout: getDuration("PREDICT_TIMEOUT", 30*time.Second),
		MaxUploadBytes: getInt("MAX_UPLOAD_BYTES", 8<<20),

		GenAIKey:     firstEnv("GENAI_API_KEY", "GOOGLE_API_KEY"),
		GenAIModel:   getEnv("GENAI_MODEL", "gemini-2.0-flash"),
		GenAITimeout: getDuration("GENAI_TIMEOUT", 60*time.Second),

		StockPolicy:  strings.ToLower(getEnv("CART_STOCK_POLICY", "clamp")),
		CSRF:         getBool("CSRF_ENABLED", true),
		CookieSecure: getBool("COOKIE_SECURE", false),

		RateMax:      getInt("RATE_MAX", 120),
		LoginRateMax: getInt("LOGIN_RATE_MAX", 5),
	}

	log.Printf("[config] PORT=%s STORE_DRIVER=%s DB_DSN=%s REDIS_ADDR=%s PREDICT_URL=%s GENAI_MODEL=%s CART_STOCK_POLICY=%s LOG_FILE=%s",
		cfg.Port, cfg.StoreDriver, cfg.DBDSN, cfg.RedisAddr, cfg.PredictURL, cfg.GenAIModel, cfg.StockPolicy, cfg.LogFile)
	return cfg
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return b
}

// getDuration accepts Go durations ("45s") or plain seconds ("45"). "0" disables the timeout.
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}
