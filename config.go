package main

import (
	"log"
	"os"
	"strings"
)

// Config holds all process-wide settings. It is built once in main from the
// environment and never mutated afterwards.
type Config struct {
	DatabaseURL string
	Origins     []string
	TokenSecret string
	Env         string
	Port        string
}

var AppConfig *Config

// LoadConfig reads configuration from the environment. DATABASE_URL is
// mandatory; everything else has a fallback.
func LoadConfig() *Config {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		// Insecure fallback, matches the deployed default. Set TOKEN_SECRET
		// in production.
		secret = "secret"
	}

	origins := []string{"http://localhost:5173"}
	if raw := os.Getenv("ORIGIN"); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		DatabaseURL: dsn,
		Origins:     origins,
		TokenSecret: secret,
		Env:         os.Getenv("APP_ENV"),
		Port:        port,
	}
}

// IsDevelopment gates stack-trace exposure in error responses.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
