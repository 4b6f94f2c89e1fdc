package config

import (
	"os"
	"strings"
)

type Env struct {
	AppAddr string
	GinMode string

	MySQLHost     string
	MySQLPort     string
	MySQLUser     string
	MySQLPassword string
	MySQLDatabase string

	RedisAddr     string
	RedisPassword string

	OAuthTokenURL     string
	OAuthClientID     string
	OAuthClientSecret string

	ExternalAPIURL string

	CORSOrigins []string
}

func LoadEnv() Env {
	env := Env{
		AppAddr:           getenv("APP_ADDR", ":8080"),
		GinMode:           strings.TrimSpace(os.Getenv("GIN_MODE")),
		MySQLHost:         getenv("MYSQL_HOST", "127.0.0.1"),
		MySQLPort:         getenv("MYSQL_PORT", "3306"),
		MySQLUser:         getenv("MYSQL_USER", "root"),
		MySQLPassword:     strings.TrimSpace(os.Getenv("MYSQL_PASSWORD")),
		MySQLDatabase:     getenv("MYSQL_DATABASE", "catalog"),
		RedisAddr:         getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:     strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		OAuthTokenURL:     strings.TrimSpace(os.Getenv("OAUTH_TOKEN_URL")),
		OAuthClientID:     strings.TrimSpace(os.Getenv("OAUTH_CLIENT_ID")),
		OAuthClientSecret: strings.TrimSpace(os.Getenv("OAUTH_CLIENT_SECRET")),
		ExternalAPIURL:    getenv("EXTERNAL_API_URL", "https://jsonplaceholder.typicode.com/posts/1"),
	}

	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSOrigins = append(env.CORSOrigins, o)
			}
		}
	}

	return env
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
