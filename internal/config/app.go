package config

import (
	"os"
	"strings"
)

const defaultPort = "8080"

// BasePath is the prefix every route is mounted under, e.g. "/api".
func BasePath() string {
	return strings.TrimRight(os.Getenv("APP_BASE_PATH"), "/")
}

func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return defaultPort
	}
	return strings.TrimPrefix(port, ":")
}

func Addr() string {
	return ":" + Port()
}

// CorsOrigins reads CORS_ALLOWED_ORIGINS, a comma separated list.
func CorsOrigins() []string {
	list, ok := os.LookupEnv("CORS_ALLOWED_ORIGINS")
	if !ok {
		return nil
	}
	origins := make([]string, 0)
	for _, origin := range strings.Split(list, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
