package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port      string `yaml:"port"`
	DBPath    string `yaml:"db_path"`
	UploadDir string `yaml:"upload_dir"`
	// BaseURL is the public URL of this server, used to build image URLs and
	// PayPal return/cancel redirects.
	BaseURL   string `yaml:"base_url"`
	JWTSecret []byte `yaml:"-"`

	PayPalClientID string `yaml:"paypal_client_id"`
	PayPalSecret   string `yaml:"-"`
	PayPalAPIBase  string `yaml:"paypal_api_base"`
}

// LoadConfig builds the configuration from an optional YAML file (CONFIG_FILE)
// overlaid with environment variables. Environment always wins so deployments
// can override a checked-in file.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:          "3002",
		DBPath:        "./moobile.db",
		UploadDir:     "./uploads",
		BaseURL:       "http://localhost:3002",
		PayPalAPIBase: "https://api-m.sandbox.paypal.com",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.UploadDir = getEnv("UPLOAD_DIR", cfg.UploadDir)
	cfg.BaseURL = getEnv("BASE_URL", cfg.BaseURL)
	cfg.PayPalClientID = getEnv("PAYPAL_CLIENT_ID", cfg.PayPalClientID)
	cfg.PayPalSecret = getEnv("PAYPAL_SECRET", cfg.PayPalSecret)
	cfg.PayPalAPIBase = getEnv("PAYPAL_API_BASE", cfg.PayPalAPIBase)

	// JWT secret (critical for security)
	secretStr := os.Getenv("JWT_SECRET_KEY")
	switch {
	case secretStr == "":
		slog.Warn("JWT_SECRET_KEY environment variable not set. Generating a random key for development. Issued tokens will be invalid on restart. PLEASE SET JWT_SECRET_KEY IN PRODUCTION!")
		cfg.JWTSecret = generateRandomBytes(32)
	default:
		decoded, err := base64.StdEncoding.DecodeString(secretStr)
		if err == nil && len(decoded) >= 32 {
			cfg.JWTSecret = decoded
		} else if len(secretStr) >= 32 {
			// Accept a raw (non-base64) secret as long as it is long enough.
			cfg.JWTSecret = []byte(secretStr)
		} else {
			slog.Warn("JWT_SECRET_KEY is invalid or too short (min 32 bytes recommended). Generating a random key for development. PLEASE SET A SECURE JWT_SECRET_KEY IN PRODUCTION!")
			cfg.JWTSecret = generateRandomBytes(32)
		}
	}

	if cfg.PayPalClientID == "" || cfg.PayPalSecret == "" {
		slog.Warn("PayPal credentials not configured; payment endpoints will return upstream errors")
	}

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "3002"
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// generateRandomBytes generates a random byte slice of specified length
// Uses crypto/rand for secure random numbers.
func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		slog.Error("Failed to read random bytes", "error", err)
		os.Exit(1)
	}
	return b
}
