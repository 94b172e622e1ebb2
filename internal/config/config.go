// internal/config/config.go
//
// Process configuration read from the environment (after godotenv has
// loaded any .env file in main).
//
// Variables and defaults:
//   PORT=5175  LOG_LEVEL=info  DB_PATH=./data/app.db
//   JWT_SECRET=dev_secret_change_me  JWT_EXPIRES_DAYS=14  COOKIE_NAME=glyphword_token
//   CLIENT_ORIGIN=http://localhost:5173  DAILY_SALT=glyphword
//   GLYPH_CATALOG_FILE (optional path; WORDS_FILE is read by words.Init)
//   LEGACY_MIRROR=false  NODE_ENV (production enables Secure cookies)

package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the resolved server configuration.
type Config struct {
	Port             string
	LogLevel         string
	DBPath           string
	JWTSecret        string
	JWTTTL           time.Duration
	CookieName       string
	ClientOrigin     string
	DailySalt        string
	GlyphCatalogFile string
	LegacyMirror     bool
	Production       bool
}

// Load reads the environment.
func Load() Config {
	return Config{
		Port:             getEnv("PORT", "5175"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DBPath:           getEnv("DB_PATH", "./data/app.db"),
		JWTSecret:        getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTTTL:           time.Duration(envInt("JWT_EXPIRES_DAYS", 14)) * 24 * time.Hour,
		CookieName:       getEnv("COOKIE_NAME", "glyphword_token"),
		ClientOrigin:     getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		DailySalt:        getEnv("DAILY_SALT", "glyphword"),
		GlyphCatalogFile: os.Getenv("GLYPH_CATALOG_FILE"),
		LegacyMirror:     envBool("LEGACY_MIRROR", false),
		Production:       os.Getenv("NODE_ENV") == "production",
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(k string, def bool) bool {
	switch strings.ToLower(os.Getenv(k)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}
