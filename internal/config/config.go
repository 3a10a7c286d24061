package config

import "os"

type Config struct {
	Env           string
	Port          string
	DBPath        string
	SessionSecret string
	Origin        string // CORS, for the JSON API
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() Config {
	return Config{
		Env:           env("APP_ENV", "dev"),
		Port:          env("APP_PORT", "8080"),
		DBPath:        env("DB_PATH", "data/resolvewise.db"),
		SessionSecret: env("SESSION_SECRET", "dev-only-insecure-secret"),
		Origin:        env("CORS_ORIGIN", "http://localhost:3000"),
	}
}
