package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	AmadeusBase   string
	AmadeusID     string
	AmadeusSecret string
	AmadeusRPS    int
	KiwiBase      string
	KiwiKey       string
	Provider      string // amadeus|kiwi

	Origins        []string
	CacheTTL       time.Duration
	DealsBudget    time.Duration
	RefreshSpec    string
	RefreshWorkers int

	ResendKey   string
	ContactFrom string
	ContactTo   string
	SheetID     string
	CORSOrigins []string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", ""),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),

		AmadeusBase:   env("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),
		AmadeusID:     env("AMADEUS_CLIENT_ID", ""),
		AmadeusSecret: env("AMADEUS_CLIENT_SECRET", ""),
		AmadeusRPS:    atoi("AMADEUS_RPS", 8),
		KiwiBase:      env("KIWI_BASE_URL", "https://api.tequila.kiwi.com"),
		KiwiKey:       env("KIWI_API_KEY", ""),
		Provider:      strings.ToLower(env("DEALS_PROVIDER", "amadeus")),

		Origins:        list("DEALS_ORIGINS", "CDG"),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 21600)) * time.Second,
		DealsBudget:    time.Duration(atoi("DEALS_TIMEOUT_SECONDS", 10)) * time.Second,
		RefreshSpec:    env("REFRESH_SPEC", "@every 6h"),
		RefreshWorkers: atoi("REFRESH_WORKERS", 2),

		ResendKey:   env("RESEND_API_KEY", ""),
		ContactFrom: env("CONTACT_FROM", "Portfolio <onboarding@resend.dev>"),
		ContactTo:   env("CONTACT_TO", "fitiatravel@gmail.com"),
		SheetID:     env("GOOGLE_SHEET_ID", ""),
		CORSOrigins: list("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}
	switch c.Provider {
	case "kiwi":
		if c.KiwiKey == "" {
			log.Warn().Msg("KIWI_API_KEY is empty, deals will use the static catalog")
		}
	default:
		c.Provider = "amadeus"
		if c.AmadeusID == "" || c.AmadeusSecret == "" {
			log.Warn().Msg("AMADEUS_CLIENT_ID or AMADEUS_CLIENT_SECRET is empty, deals will use the static catalog")
		}
	}
	if c.ResendKey == "" {
		log.Warn().Msg("RESEND_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// list splits a comma separated variable, dropping blanks.
func list(k, def string) []string {
	var out []string
	for _, p := range strings.Split(env(k, def), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
