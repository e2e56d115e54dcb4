package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ServerConfig holds HTTP transport settings.
type ServerConfig struct {
	BodyLimitBytes     int
	ReadTimeoutSec     int
	WriteTimeoutSec    int
	ShutdownTimeoutSec int
	CORSAllowOrigins   string
	// CORSAllowCredentials is ignored when CORSAllowOrigins is "*".
	CORSAllowCredentials bool
}

// SecretsConfig selects where the verification API key comes from.
// Provider is "env" (read APIKeyEnv) or "file" (read the YAML file at File).
type SecretsConfig struct {
	Provider  string
	File      string
	APIKeyEnv string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost        string
	Port           string
	ServiceName    string
	ServiceVersion string
	Location       string
	Server         ServerConfig
	Secrets        SecretsConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:        getEnv("APP_HOST", "localhost:8080"),
		Port:           getEnv("PORT", "8080"),
		ServiceName:    getEnv("SERVICE_NAME", "docverify"),
		ServiceVersion: getEnv("SERVICE_VERSION", "1.0.0"),
		Location:       getEnv("TZ_LOCATION", "UTC"),
		Server: ServerConfig{
			// Leaves headroom above the 10 MiB document ceiling for multipart framing.
			BodyLimitBytes:       getEnvInt("BODY_LIMIT_BYTES", 16*1024*1024),
			ReadTimeoutSec:       getEnvInt("READ_TIMEOUT_SEC", 60),
			WriteTimeoutSec:      getEnvInt("WRITE_TIMEOUT_SEC", 60),
			ShutdownTimeoutSec:   getEnvInt("SHUTDOWN_TIMEOUT_SEC", 30),
			CORSAllowOrigins:     getEnv("CORS_ALLOW_ORIGINS", "*"),
			CORSAllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", false),
		},
		Secrets: SecretsConfig{
			Provider:  strings.ToLower(getEnv("SECRETS_PROVIDER", "env")),
			File:      getEnv("SECRETS_FILE", ""),
			APIKeyEnv: getEnv("VERIFICATION_API_KEY_ENV", "VERIFICATION_API_KEY"),
		},
	}
}

// TimeLocation resolves Location, falling back to UTC when it is unknown.
func (c *AppConfig) TimeLocation() *time.Location {
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
