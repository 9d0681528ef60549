// Package config loads application settings from the environment.
package config

import (
	"os"
	"strconv"
)

// Config holds everything the API needs to run.
type Config struct {
	AppEnv   string
	LogLevel string

	HTTPAddr string
	TLSCert  string
	TLSKey   string

	RedisAddr   string
	DatabaseURL string
	OtelHost    string

	MenuPath string
	// MaxCartItems bounds distinct items per cart. Default 50.
	MaxCartItems int

	Cafe Cafe
}

// Cafe is the static info block served by the info endpoint.
type Cafe struct {
	Name      string `json:"name"`
	Tagline   string `json:"tagline"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Hours     string `json:"hours"`
	Website   string `json:"website"`
	Instagram string `json:"instagram"`
}

// Load reads the configuration from the environment, falling back to
// development defaults.
func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		HTTPAddr: getEnv("HTTP_ADDR", ":8443"),
		TLSCert:  getEnv("TLS_CERT", "certs/server.crt"),
		TLSKey:   getEnv("TLS_KEY", "certs/server.key"),

		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		OtelHost:    os.Getenv("OTEL_HOST"),

		MenuPath:     getEnv("MENU_PATH", "menu_data.json"),
		MaxCartItems: getEnvInt("MAX_CART_ITEMS", 50),

		Cafe: Cafe{
			Name:      getEnv("CAFE_NAME", "The Artisan Cafe"),
			Tagline:   getEnv("CAFE_TAGLINE", "Crafting Perfect Moments, One Cup at a Time"),
			Phone:     getEnv("CAFE_PHONE", "+1 (555) 123-CAFE"),
			Email:     getEnv("CAFE_EMAIL", "hello@artisancafe.com"),
			Address:   getEnv("CAFE_ADDRESS", "123 Coffee Street, Brew City, BC 12345"),
			Hours:     getEnv("CAFE_HOURS", "Mon-Fri 6:30-20:00, Sat-Sun 7:00-21:00"),
			Website:   getEnv("CAFE_WEBSITE", "www.artisancafe.com"),
			Instagram: getEnv("CAFE_INSTAGRAM", "@artisancafe"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
