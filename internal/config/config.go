package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultAPISecret is the out-of-the-box shared secret. While the secret is
// left at this value the cache-clear auth check is disabled entirely; this is
// an intentionally permissive default for local development.
const DefaultAPISecret = "changeme"

type Config struct {
	Port         string
	CacheBackend string // "memory" or "redis"
	RedisAddr    string

	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	APISecret    string
	AllowedHosts []string

	ActionsConfig string
}

// Load reads configuration from the environment. A .env file in the working
// directory is folded in first, best-effort.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:          getenv("PORT", "8080"),
		CacheBackend:  getenv("CACHE_BACKEND", "memory"),
		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		LLMBaseURL:    getenv("LLM_BASE_URL", "https://api.openai.com"),
		LLMAPIKey:     os.Getenv("LLM_API_KEY"),
		LLMModel:      getenv("LLM_MODEL", "openai/gpt-oss-20b"),
		APISecret:     getenv("API_SECRET", DefaultAPISecret),
		AllowedHosts:  splitHosts(getenv("ALLOWED_HOSTS", "localhost,127.0.0.1")),
		ActionsConfig: getenv("ACTIONS_CONFIG", "actions.json"),
	}
}

// AuthDisabled reports whether the permissive default secret is still in place.
func (c Config) AuthDisabled() bool {
	return c.APISecret == DefaultAPISecret
}

func splitHosts(s string) []string {
	parts := strings.Split(s, ",")
	hosts := make([]string, 0, len(parts))
	for _, p := range parts {
		if h := strings.TrimSpace(p); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

// getenv returns the value of the environment variable key or def if not set.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
