package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config centraliza a configuração carregada do ambiente.
type Config struct {
	Port                int
	DirectusURL         string
	DirectusStaticToken string
	SessionSecret       string
	SessionTTL          time.Duration
	SessionUpdateAge    time.Duration
	AccessTokenTTL      time.Duration
	RedisURL            string
	CatalogCacheTTL     time.Duration
	AllowOrigins        []string
	RateLimitPublic     RateLimitConfig
	RateLimitAuth       RateLimitConfig
	TicketWebhookURL    string
}

// RateLimitConfig representa limites simples para throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load carrega variáveis de ambiente e aplica defaults seguros.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return nil, errors.New("PORT inválida")
	}
	cfg.Port = port

	cfg.DirectusURL = strings.TrimRight(strings.TrimSpace(getEnv("DIRECTUS_URL", "")), "/")
	if cfg.DirectusURL == "" {
		return nil, errors.New("DIRECTUS_URL obrigatório")
	}
	if _, err := url.ParseRequestURI(cfg.DirectusURL); err != nil {
		return nil, errors.New("DIRECTUS_URL inválida")
	}

	cfg.DirectusStaticToken = strings.TrimSpace(getEnv("DIRECTUS_STATIC_TOKEN", ""))
	if cfg.DirectusStaticToken == "" {
		return nil, errors.New("DIRECTUS_STATIC_TOKEN obrigatório")
	}

	cfg.SessionSecret = strings.TrimSpace(getEnv("SESSION_SECRET", ""))
	if len(cfg.SessionSecret) < 32 {
		return nil, errors.New("SESSION_SECRET deve ter pelo menos 32 caracteres")
	}

	sessionTTL, err := parseDurationEnv("SESSION_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL = sessionTTL

	updateAge, err := parseDurationEnv("SESSION_UPDATE_AGE", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.SessionUpdateAge = updateAge

	accessTTL, err := parseDurationEnv("ACCESS_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.AccessTokenTTL = accessTTL

	cfg.RedisURL = getEnv("REDIS_URL", "")
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL obrigatório")
	}

	catalogTTL, err := parseDurationEnv("CATALOG_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.CatalogCacheTTL = catalogTTL

	allowOrigins := strings.Split(getEnv("ALLOW_ORIGINS", ""), ",")
	cfg.AllowOrigins = nil
	for _, origin := range allowOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}

	cfg.RateLimitPublic = RateLimitConfig{RequestsPerSecond: 10, Burst: 20}
	cfg.RateLimitAuth = RateLimitConfig{RequestsPerSecond: 10, Burst: 40}

	cfg.TicketWebhookURL = strings.TrimSpace(getEnv("TICKET_WEBHOOK_URL", ""))

	return cfg, nil
}

// DevCookies indica ambiente local sem HTTPS (cookies sem atributo Secure).
func (c *Config) DevCookies() bool {
	for _, origin := range c.AllowOrigins {
		if strings.Contains(origin, "localhost") {
			return true
		}
	}
	return false
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil {
		return 0, errors.New(key + " inválido")
	}
	return dur, nil
}
