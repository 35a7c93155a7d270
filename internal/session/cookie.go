package session

import (
	"net/http"
	"time"
)

// Variantes do cookie de sessão. A limpeza expira todas, para que nenhum
// envelope assinado sobreviva a um logout forçado.
const (
	cookieName       = "backoffice.session-token"
	cookieNameSecure = "__Secure-backoffice.session-token"
	cookieNameHost   = "__Host-backoffice.session-token"
)

// CookieNames lista todas as variantes conhecidas do cookie de sessão.
func CookieNames() []string {
	return []string{cookieName, cookieNameSecure, cookieNameHost}
}

// ReadCookie devolve o envelope bruto da requisição, tentando cada variante.
func ReadCookie(r *http.Request) (string, bool) {
	for _, name := range CookieNames() {
		if c, err := r.Cookie(name); err == nil && c.Value != "" {
			return c.Value, true
		}
	}
	return "", false
}

// WriteCookie grava o envelope assinado na variante adequada ao ambiente.
func WriteCookie(w http.ResponseWriter, token string, expires time.Time, secure bool) {
	name := cookieName
	if secure {
		name = cookieNameSecure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookies expira todas as variantes, inclusive as prefixadas.
func ClearCookies(w http.ResponseWriter, secure bool) {
	for _, name := range CookieNames() {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   secure || name != cookieName,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
