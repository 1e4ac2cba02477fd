package config

import (
	"log/slog"
	"os"
)

type Config struct {
	Port             string
	Env              string
	DatabaseDSN      string
	JWTAccessSecret  string
	JWTRefreshSecret string
}

// Load reads configuration from the environment. The two JWT signing
// secrets are mandatory and must differ; a missing or shared secret is a
// fatal configuration error.
func Load() Config {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		DatabaseDSN:      getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/weighttrack?parseTime=true"),
		JWTAccessSecret:  os.Getenv("JWT_ACCESS_SECRET"),
		JWTRefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
	}

	if cfg.JWTAccessSecret == "" || cfg.JWTRefreshSecret == "" {
		slog.Error("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must both be set")
		os.Exit(1)
	}
	if cfg.JWTAccessSecret == cfg.JWTRefreshSecret {
		slog.Error("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be distinct")
		os.Exit(1)
	}

	return cfg
}

// IsProduction reports whether the server runs in the production environment.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
