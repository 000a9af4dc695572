package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBDSN  string
	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string

	GenAIProvider   string
	GeminiAPIKey    string
	GeminiModel     string
	GeminiBaseURL   string
	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIBaseURL   string
	GenAITimeout    time.Duration
	GenAIRatePerMin int
	GenAIRateBurst  int

	CORSAllowedOrigins []string
	ProfileCacheTTL    time.Duration
}

// LoadEnv reads the process environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[CONFIG] .env not loaded: %v", err)
	}

	return Env{
		AppAddr: getenv("APP_ADDR", ":8080"),
		GinMode: getenv("GIN_MODE", ""),

		DBDSN:  getenv("DB_DSN", ""),
		DBUser: getenv("DB_USER", "root"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: getenv("DB_HOST", "127.0.0.1:3306"),
		DBName: getenv("DB_NAME", "trip_planner"),

		JWTSecret: getenv("JWT_SECRET", "dev-secret-change-me"),

		GenAIProvider:   strings.ToLower(getenv("GENAI_PROVIDER", "gemini")),
		GeminiAPIKey:    getenv("GEMINI_API_KEY", ""),
		GeminiModel:     getenv("GEMINI_MODEL", "gemini-1.5-pro"),
		GeminiBaseURL:   getenv("GEMINI_BASE_URL", ""),
		OpenAIAPIKey:    getenv("OPENAI_API_KEY", ""),
		OpenAIModel:     getenv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:   getenv("OPENAI_BASE_URL", ""),
		GenAITimeout:    getDuration("GENAI_TIMEOUT", 60*time.Second),
		GenAIRatePerMin: getInt("GENAI_RATE_PER_MIN", 10),
		GenAIRateBurst:  getInt("GENAI_RATE_BURST", 3),

		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		ProfileCacheTTL:    getDuration("PROFILE_CACHE_TTL", 10*time.Minute),
	}
}

// DSN builds the MySQL connection string unless DB_DSN overrides it.
func (e Env) DSN() string {
	if e.DBDSN != "" {
		return e.DBDSN
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
		e.DBUser,
		e.DBPass,
		e.DBHost,
		e.DBName,
	)
}

// GenAIKey returns the API key of the selected provider.
func (e Env) GenAIKey() string {
	if e.GenAIProvider == "openai" {
		return e.OpenAIAPIKey
	}
	return e.GeminiAPIKey
}

func (e Env) GenAIModel() string {
	if e.GenAIProvider == "openai" {
		return e.OpenAIModel
	}
	return e.GeminiModel
}

func (e Env) GenAIBaseURL() string {
	if e.GenAIProvider == "openai" {
		return e.OpenAIBaseURL
	}
	return e.GeminiBaseURL
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[CONFIG] invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[CONFIG] invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

func splitList(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
