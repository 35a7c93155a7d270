package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/agencianexo/backoffice/internal/auth"
	"github.com/agencianexo/backoffice/internal/session"
)

type contextKey string

// ContextKeySession guarda a sessão carregada pelo Gate.
const ContextKeySession contextKey = "session"

const (
	loginPath    = "/login"
	staffPrefix  = "/dashboard"
	clientPrefix = "/portal"
)

// DefaultPublicPrefixes lista os caminhos que dispensam o Gate por completo:
// a página de login e as rotas de autenticação, além dos probes de infra.
var DefaultPublicPrefixes = []string{"/login", "/auth", "/health", "/ready"}

// Gate intercepta toda requisição antes de qualquer lógica de página ou API.
// A decisão é função pura do estado da sessão e do caminho, avaliada
// estritamente nesta ordem: bypass público, autenticação, erro terminal,
// partição por papel.
func Gate(manager *session.Manager, publicPrefixes []string) func(http.Handler) http.Handler {
	if publicPrefixes == nil {
		publicPrefixes = DefaultPublicPrefixes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path

			for _, prefix := range publicPrefixes {
				if strings.HasPrefix(path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			s, ok := manager.Load(w, r)
			if !ok {
				redirectToLogin(w, r, path, "")
				return
			}

			// Erro terminal força logout antes de qualquer decisão de papel:
			// todas as variantes de cookie caem junto com o redirect.
			if s.Terminal() {
				manager.Clear(w)
				redirectToLogin(w, r, path, "SessionExpired")
				return
			}

			switch {
			case strings.HasPrefix(path, staffPrefix) && s.Role == auth.RoleClient:
				http.Redirect(w, r, clientPrefix, http.StatusSeeOther)
				return
			case strings.HasPrefix(path, clientPrefix) && s.Role != auth.RoleClient:
				http.Redirect(w, r, staffPrefix, http.StatusSeeOther)
				return
			}

			ctx := WithSession(r.Context(), s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request, callback, errCode string) {
	q := url.Values{}
	q.Set("callbackUrl", callback)
	if errCode != "" {
		q.Set("error", errCode)
	}
	http.Redirect(w, r, loginPath+"?"+q.Encode(), http.StatusSeeOther)
}

// WithSession injeta a sessão no contexto da requisição.
func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, ContextKeySession, s)
}

// GetSession recupera a sessão carregada pelo Gate.
func GetSession(ctx context.Context) *session.Session {
	val, _ := ctx.Value(ContextKeySession).(*session.Session)
	return val
}
