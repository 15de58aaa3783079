package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Remote document store
	StoreBackend       string // firestore, postgres or redis
	FirestoreProjectID string
	GoogleCredentials  string
	DatabaseURL        string
	TablePrefix        string
	RedisURL           string
	RemoteTimeout      time.Duration
	// Identity provider
	AuthJWKSURL    string
	AuthIssuer     string
	AuthAudience   string
	IdentityAPIKey string
	IdentityURL    string
	// Design advice
	AdviceProvider  string
	AdviceModel     string
	GeminiAPIKey    string
	AnthropicAPIKey string
	// Media uploads (S3 compatible)
	MediaEndpoint      string
	MediaAccessKey     string
	MediaSecretKey     string
	MediaBucket        string
	MediaPublicBaseURL string
	MediaUseSSL        bool
	// Logging
	LogDir      string
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	projectID := getEnv("FIRESTORE_PROJECT_ID", "")
	provider := getEnv("ADVICE_PROVIDER", "gemini")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		// Remote document store
		StoreBackend:       getEnv("STORE_BACKEND", "firestore"),
		FirestoreProjectID: projectID,
		GoogleCredentials:  getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		TablePrefix:        getTablePrefix(env),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RemoteTimeout:      time.Duration(getEnvInt("REMOTE_TIMEOUT_SECONDS", 10)) * time.Second,
		// Identity provider - Firebase Auth by default, any JWKS issuer works
		AuthJWKSURL:    getEnv("AUTH_JWKS_URL", "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"),
		AuthIssuer:     getEnv("AUTH_ISSUER", "https://securetoken.google.com/"+projectID),
		AuthAudience:   getEnv("AUTH_AUDIENCE", projectID),
		IdentityAPIKey: getEnv("IDENTITY_API_KEY", ""),
		IdentityURL:    getEnv("IDENTITY_URL", "https://identitytoolkit.googleapis.com"),
		// Design advice
		AdviceProvider:  provider,
		AdviceModel:     getEnv("ADVICE_MODEL", defaultAdviceModel(provider)),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		// Media uploads - disabled when MEDIA_ENDPOINT is empty
		MediaEndpoint:      getEnv("MEDIA_ENDPOINT", ""),
		MediaAccessKey:     getEnv("MEDIA_ACCESS_KEY", ""),
		MediaSecretKey:     getEnv("MEDIA_SECRET_KEY", ""),
		MediaBucket:        getEnv("MEDIA_BUCKET", "atelier-media"),
		MediaPublicBaseURL: getEnv("MEDIA_PUBLIC_BASE_URL", ""),
		MediaUseSSL:        getEnv("MEDIA_USE_SSL", "true") == "true",
		// Logging
		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getEnvInt("LOG_MAX_FILES", 10),
	}
}

// defaultAdviceModel returns the model used when ADVICE_MODEL is not set
func defaultAdviceModel(provider string) string {
	switch provider {
	case "anthropic":
		return "claude-haiku-4-5-20251001"
	case "lorem":
		return "lorem-fast"
	default:
		return "gemini-2.5-flash"
	}
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
