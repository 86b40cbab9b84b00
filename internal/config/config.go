package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr             string
	DatabaseURL          string
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
	Debug                bool

	JWTSecret string

	// LinkedIn OAuth app credentials. Opaque secrets, only threaded
	// through to the API client.
	LinkedInClientID     string
	LinkedInClientSecret string
	LinkedInRedirectURI  string
	LinkedInAPIBase      string

	// Mention search backend used by reputation scans. Empty disables
	// external fetching (scans still run and record neutral scores).
	SearchAPIURL string

	// AI provider key, reserved for content generation. Opaque.
	AIProviderKey string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		DatabaseURL:          mustGetenv("DATABASE_URL"),
		CORSAllowCredentials: getBoolEnv("CORS_ALLOW_CREDENTIALS", false),
		Debug:                getBoolEnv("DEBUG", false),

		LinkedInClientID:     getenv("LINKEDIN_CLIENT_ID", ""),
		LinkedInClientSecret: getenv("LINKEDIN_CLIENT_SECRET", ""),
		LinkedInRedirectURI:  getenv("LINKEDIN_REDIRECT_URI", ""),
		LinkedInAPIBase:      getenv("LINKEDIN_API_BASE", "https://api.linkedin.com"),

		SearchAPIURL:  getenv("SEARCH_API_URL", ""),
		AIProviderKey: getenv("AI_PROVIDER_KEY", ""),
	}

	origins := strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ",")
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	cfg.JWTSecret = mustGetenv("JWT_SECRET")
	return cfg, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func mustGetenv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		panic("missing env: " + key)
	}
	return v
}

func getBoolEnv(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
