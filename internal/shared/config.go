package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv        string
	LogLevel      string
	HTTPAddr      string
	MetricsAddr   string
	CatalogDriver string // memory | mysql
	MySQLDSN      string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	StorePrefix   string
	CacheTTL      time.Duration
	JWTSecret     string
	JWTTTL        time.Duration
	AdminToken    string
	LoginRPS      float64
	TrustProxy    bool
	CORSOrigins   []string
	FeedURL       string
	FeedKey       string
	FeedRPS       int
	SeedWorkers   int
}

const devJWTSecret = "triply-dev-secret"

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first; real environment variables win.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg(".env not loaded")
	}

	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		LogLevel:      env("LOG_LEVEL", "info"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ":9100"),
		CatalogDriver: strings.ToLower(env("CATALOG_DRIVER", "memory")),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/triply?parseTime=true&charset=utf8mb4&loc=UTC"),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		StorePrefix:   env("STORE_PREFIX", "triply:"),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		JWTSecret:     env("JWT_SECRET", ""),
		JWTTTL:        time.Duration(atoi("JWT_TTL_MINUTES", 60*24)) * time.Minute,
		AdminToken:    env("ADMIN_TOKEN", ""),
		LoginRPS:      atof("LOGIN_RPS", 1),
		TrustProxy:    boolean("TRUST_PROXY", false),
		CORSOrigins:   list(env("CORS_ORIGINS", "*")),
		FeedURL:       env("FEED_URL", ""),
		FeedKey:       env("FEED_API_KEY", ""),
		FeedRPS:       atoi("FEED_RPS", 5),
		SeedWorkers:   atoi("SEED_WORKERS", 4),
	}
	if c.CatalogDriver != "memory" && c.CatalogDriver != "mysql" {
		log.Warn().Str("driver", c.CatalogDriver).Msg("unknown CATALOG_DRIVER, using memory")
		c.CatalogDriver = "memory"
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty, using the development secret")
		c.JWTSecret = devJWTSecret
	}
	if c.AdminToken == "" {
		log.Warn().Msg("ADMIN_TOKEN is empty, admin routes are open")
	}
	if c.SeedWorkers <= 0 {
		c.SeedWorkers = 1
	}
	return c
}

func (c Config) Dev() bool { return c.AppEnv == "dev" || c.AppEnv == "development" }

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
	}
	return def
}

func atof(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not a positive number, using default")
	}
	return def
}

func boolean(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not a boolean, using default")
	}
	return def
}

func list(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
