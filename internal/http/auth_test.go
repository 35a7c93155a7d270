package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/agencianexo/backoffice/internal/auth"
	"github.com/agencianexo/backoffice/internal/directus"
	"github.com/agencianexo/backoffice/internal/session"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeProvider struct {
	t           *testing.T
	roleName    string
	loginFails  bool
	logoutCalls int
}

func (f *fakeProvider) accessToken() string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "user-1", "role": "role-1"})
	signed, err := token.SignedString([]byte("segredo-provedor"))
	if err != nil {
		f.t.Fatalf("assinando token de teste: %v", err)
	}
	return signed
}

func (f *fakeProvider) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/auth/login":
			if f.loginFails {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"errors": []map[string]any{{
						"message":    "Invalid user credentials.",
						"extensions": map[string]string{"code": "INVALID_CREDENTIALS"},
					}},
				})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]string{
					"access_token":  f.accessToken(),
					"refresh_token": "refresh-1",
				},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/auth/logout":
			f.logoutCalls++
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet && r.URL.Path == "/roles":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]string{{"id": "role-1", "name": f.roleName}},
			})
		case r.Method == http.MethodGet && r.URL.Path == "/users":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]string{{
					"id":         "user-1",
					"email":      "ana@exemplo.com",
					"first_name": "Ana",
					"last_name":  "Souza",
				}},
			})
		default:
			f.t.Errorf("rota inesperada: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newAuthHandlerFor(t *testing.T, fake *fakeProvider) (*AuthHandler, *session.Manager) {
	t.Helper()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	base, err := directus.New(server.URL)
	if err != nil {
		t.Fatalf("criando cliente: %v", err)
	}
	elevated := base.WithToken("token-servico")

	exchanger := auth.NewExchanger(base, elevated, 15*time.Minute)
	refresher := auth.NewRefresher(base, 15*time.Minute)
	codec := session.NewCodec(testSecret, 7*24*time.Hour, 15*time.Minute)
	manager := session.NewManager(codec, refresher, false)

	return NewAuthHandler(exchanger, manager, base, elevated), manager
}

func doLogin(t *testing.T, handler *AuthHandler) []*http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"ana@exemplo.com","password":"senha"}`))
	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login falhou: %d %s", rec.Code, rec.Body.String())
	}
	return rec.Result().Cookies()
}

func TestHandleLoginEmiteSessaoERedireciona(t *testing.T) {
	handler, _ := newAuthHandlerFor(t, &fakeProvider{t: t, roleName: "Cliente"})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"ana@exemplo.com","password":"senha"}`))
	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("esperava 200, veio %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data struct {
			User       sessionUser `json:"user"`
			RedirectTo string      `json:"redirectTo"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("envelope ilegível: %v", err)
	}
	if body.Data.User.ID != "user-1" || body.Data.User.Role != "client" {
		t.Fatalf("usuário inesperado: %+v", body.Data.User)
	}
	if body.Data.RedirectTo != "/portal" {
		t.Fatalf("cliente deveria ser enviado ao portal, veio %q", body.Data.RedirectTo)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || !strings.Contains(cookies[0].Name, "session-token") {
		t.Fatalf("cookie de sessão não gravado: %+v", cookies)
	}
}

func TestHandleLoginCredenciaisInvalidas(t *testing.T) {
	handler, _ := newAuthHandlerFor(t, &fakeProvider{t: t, loginFails: true})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"ana@exemplo.com","password":"errada"}`))
	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("esperava 401, veio %d", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("login negado não grava cookie")
	}
}

func TestHandleLoginValidaEntrada(t *testing.T) {
	handler, _ := newAuthHandlerFor(t, &fakeProvider{t: t, roleName: "Cliente"})

	for _, body := range []string{`{}`, `{"email":"sem-arroba","password":"x"}`, `{"email":"ana@exemplo.com"}`} {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.HandleLogin(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("corpo %s: esperava 400, veio %d", body, rec.Code)
		}
	}
}

func TestHandleSessionSemCookie(t *testing.T) {
	handler, _ := newAuthHandlerFor(t, &fakeProvider{t: t, roleName: "Cliente"})

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	rec := httptest.NewRecorder()
	handler.HandleSession(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("esperava 200, veio %d", rec.Code)
	}
	var body SuccessEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("envelope ilegível: %v", err)
	}
	if body.Data != nil {
		t.Fatalf("sem cookie o data deve ser null, veio %v", body.Data)
	}
}

func TestHandleSessionNaoVazaTokens(t *testing.T) {
	fake := &fakeProvider{t: t, roleName: "Cliente"}
	handler, _ := newAuthHandlerFor(t, fake)
	cookies := doLogin(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	handler.HandleSession(rec, req)

	raw := rec.Body.String()
	if strings.Contains(raw, "refresh-1") || strings.Contains(raw, "eyJ") {
		t.Fatalf("resposta de sessão vazou tokens do provedor: %s", raw)
	}

	var body struct {
		Data struct {
			User sessionUser `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		t.Fatalf("envelope ilegível: %v", err)
	}
	if body.Data.User.ID != "user-1" || body.Data.User.Role != "client" {
		t.Fatalf("sessão inesperada: %+v", body.Data.User)
	}
}

func TestHandleSessionTerminalSoExpoeSubjectEFlag(t *testing.T) {
	handler, _ := newAuthHandlerFor(t, &fakeProvider{t: t, roleName: "Cliente"})

	now := time.Now().UTC()
	codec := session.NewCodec(testSecret, 7*24*time.Hour, 15*time.Minute)
	s := &session.Session{
		UserID:   "user-1",
		RoleName: "Cliente",
		Role:     auth.RoleClient,
		Tokens: auth.TokenPair{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			ExpiresAt:    now.Add(time.Hour),
		},
		Error:    session.ErrorRefreshTokenExpired,
		LoginAt:  now,
		IssuedAt: now,
	}
	raw, err := codec.Encode(s, now)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieNames()[0], Value: raw})
	rec := httptest.NewRecorder()
	handler.HandleSession(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("esperava 200, veio %d", rec.Code)
	}

	var body struct {
		Data struct {
			User  sessionUser `json:"user"`
			Error string      `json:"error"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("envelope ilegível: %v", err)
	}
	if body.Data.Error != "RefreshTokenExpired" {
		t.Fatalf("flag terminal ausente: %+v", body.Data)
	}
	if body.Data.User.ID != "user-1" {
		t.Fatalf("subject ausente: %+v", body.Data.User)
	}
	if body.Data.User.Role != "" {
		t.Fatalf("papel exposto com flag terminal: role=%q", body.Data.User.Role)
	}
}

func TestHandleLogoutRevogaELimpa(t *testing.T) {
	fake := &fakeProvider{t: t, roleName: "Cliente"}
	handler, _ := newAuthHandlerFor(t, fake)
	cookies := doLogin(t, handler)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	handler.HandleLogout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("esperava 200, veio %d", rec.Code)
	}
	if fake.logoutCalls != 1 {
		t.Fatalf("refresh token deveria ser revogado no provedor, chamadas=%d", fake.logoutCalls)
	}

	expirados := 0
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge == -1 {
			expirados++
		}
	}
	if expirados != len(session.CookieNames()) {
		t.Fatalf("esperava %d variantes expiradas, vieram %d", len(session.CookieNames()), expirados)
	}
}

func TestHandleLogoutSemSessao(t *testing.T) {
	fake := &fakeProvider{t: t, roleName: "Cliente"}
	handler, _ := newAuthHandlerFor(t, fake)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	handler.HandleLogout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("logout é idempotente, veio %d", rec.Code)
	}
	if fake.logoutCalls != 0 {
		t.Fatal("sem sessão não há o que revogar")
	}
}
