package config

import (
	"strings"
	"testing"
	"time"
)

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "8080")
	t.Setenv("DIRECTUS_URL", "https://cms.exemplo.com/")
	t.Setenv("DIRECTUS_STATIC_TOKEN", "token-servico")
	t.Setenv("SESSION_SECRET", strings.Repeat("s", 32))
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("ALLOW_ORIGINS", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("SESSION_UPDATE_AGE", "")
	t.Setenv("ACCESS_TOKEN_TTL", "")
	t.Setenv("CATALOG_CACHE_TTL", "")
	t.Setenv("TICKET_WEBHOOK_URL", "")
}

func TestLoadDefaults(t *testing.T) {
	setValidEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if cfg.DirectusURL != "https://cms.exemplo.com" {
		t.Fatalf("barra final não removida: %q", cfg.DirectusURL)
	}
	if cfg.SessionTTL != 7*24*time.Hour {
		t.Fatalf("SessionTTL padrão inesperado: %v", cfg.SessionTTL)
	}
	if cfg.SessionUpdateAge != 15*time.Minute || cfg.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("janelas padrão inesperadas: %v / %v", cfg.SessionUpdateAge, cfg.AccessTokenTTL)
	}
	if cfg.CatalogCacheTTL != 5*time.Minute {
		t.Fatalf("CatalogCacheTTL padrão inesperado: %v", cfg.CatalogCacheTTL)
	}
	if cfg.DevCookies() {
		t.Fatal("sem origem localhost os cookies devem ser Secure")
	}
}

func TestLoadExigeSegredoForte(t *testing.T) {
	setValidEnv(t)
	t.Setenv("SESSION_SECRET", "curto")

	if _, err := Load(); err == nil {
		t.Fatal("segredo curto deveria falhar")
	}
}

func TestLoadExigeDirectus(t *testing.T) {
	setValidEnv(t)
	t.Setenv("DIRECTUS_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("DIRECTUS_URL ausente deveria falhar")
	}
}

func TestLoadExigeRedis(t *testing.T) {
	setValidEnv(t)
	t.Setenv("REDIS_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("REDIS_URL ausente deveria falhar")
	}
}

func TestLoadDuracoesCustomizadas(t *testing.T) {
	setValidEnv(t)
	t.Setenv("SESSION_TTL", "48h")
	t.Setenv("SESSION_UPDATE_AGE", "5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if cfg.SessionTTL != 48*time.Hour || cfg.SessionUpdateAge != 5*time.Minute {
		t.Fatalf("durações não aplicadas: %v / %v", cfg.SessionTTL, cfg.SessionUpdateAge)
	}

	t.Setenv("SESSION_TTL", "não-é-duração")
	if _, err := Load(); err == nil {
		t.Fatal("duração inválida deveria falhar")
	}
}

func TestDevCookiesComLocalhost(t *testing.T) {
	setValidEnv(t)
	t.Setenv("ALLOW_ORIGINS", "http://localhost:3000, https://app.exemplo.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if !cfg.DevCookies() {
		t.Fatal("origem localhost deveria habilitar cookies de desenvolvimento")
	}
	if len(cfg.AllowOrigins) != 2 {
		t.Fatalf("origens não normalizadas: %v", cfg.AllowOrigins)
	}
}
