package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agencianexo/backoffice/internal/auth"
	"github.com/agencianexo/backoffice/internal/directus"
	httpmiddleware "github.com/agencianexo/backoffice/internal/http/middleware"
	"github.com/agencianexo/backoffice/internal/session"
	"github.com/agencianexo/backoffice/internal/util"
)

// AuthHandler concentra login, logout e introspecção de sessão.
type AuthHandler struct {
	exchanger *auth.Exchanger
	manager   *session.Manager
	provider  *directus.Client
	elevated  *directus.Client
}

// NewAuthHandler cria o handler de autenticação.
func NewAuthHandler(exchanger *auth.Exchanger, manager *session.Manager, provider, elevated *directus.Client) *AuthHandler {
	return &AuthHandler{
		exchanger: exchanger,
		manager:   manager,
		provider:  provider,
		elevated:  elevated,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionUser struct {
	ID     string `json:"id"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// HandleLogin troca credenciais por uma sessão e grava o cookie de envelope.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido")
		return
	}
	if err := util.ValidateEmail(req.Email); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "e-mail inválido")
		return
	}
	if err := util.RequireString(req.Password, "password"); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "senha obrigatória")
		return
	}

	identity, pair, err := h.exchanger.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidLogin) {
			WriteError(w, http.StatusUnauthorized, "AUTH", "credenciais inválidas")
			return
		}
		WriteUpstreamError(w, err)
		return
	}

	s, err := h.manager.Issue(w, identity, pair)
	if err != nil {
		log.Error().Err(err).Msg("login: falha ao emitir sessão")
		WriteError(w, http.StatusInternalServerError, "INTERNO", "falha ao criar sessão")
		return
	}

	user := sessionUser{
		ID:    identity.UserID,
		Email: identity.Email,
		Name:  identity.DisplayName,
		Role:  identity.Role.String(),
	}
	if identity.AvatarRef != "" {
		user.Avatar = h.elevated.AssetURL(identity.AvatarRef)
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"user":       user,
		"redirectTo": identity.Role.HomePath(),
		"expiresAt":  h.manager.ExpiresAt(s).Format(time.RFC3339),
	})
}

// HandleLogout revoga o refresh token em melhor esforço e destrói a sessão
// local. A resposta é idempotente: sem sessão, só limpa os cookies.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if s, ok := h.manager.Load(w, r); ok && !s.Terminal() {
		if err := h.provider.Logout(r.Context(), s.Tokens.RefreshToken); err != nil {
			log.Warn().Err(err).Msg("logout: revogação no provedor falhou")
		}
	}

	h.manager.Clear(w)
	WriteJSON(w, http.StatusOK, map[string]any{"loggedOut": true})
}

// HandleSession expõe o estado atual da sessão sem exigir o Gate; a resposta
// nunca carrega tokens do provedor.
func (h *AuthHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.manager.Load(w, r)
	if !ok {
		WriteJSON(w, http.StatusOK, nil)
		return
	}

	user := sessionUser{ID: s.UserID}
	if role, ok := s.PublicRole(); ok {
		user.Role = role.String()
	}

	payload := map[string]any{
		"user":      user,
		"expiresAt": h.manager.ExpiresAt(s).Format(time.RFC3339),
	}
	if s.Terminal() {
		payload["error"] = string(s.Error)
	}

	WriteJSON(w, http.StatusOK, payload)
}

// HandleMe devolve o perfil atualizado do usuário autenticado.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	s := httpmiddleware.GetSession(r.Context())
	if s == nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "sessão inválida")
		return
	}

	var users []struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Avatar    string `json:"avatar"`
	}
	err := h.elevated.ListUsers(r.Context(), directus.Query{
		Filter: directus.Eq("id", s.UserID),
		Fields: []string{"id", "email", "first_name", "last_name", "avatar"},
		Limit:  1,
	}, &users)
	if err != nil {
		WriteUpstreamError(w, err)
		return
	}
	if len(users) == 0 {
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "usuário não encontrado")
		return
	}

	u := users[0]
	user := sessionUser{
		ID:    u.ID,
		Email: u.Email,
		Name:  joinName(u.FirstName, u.LastName),
		Role:  s.Role.String(),
	}
	if u.Avatar != "" {
		user.Avatar = h.elevated.AssetURL(u.Avatar)
	}

	WriteJSON(w, http.StatusOK, user)
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
