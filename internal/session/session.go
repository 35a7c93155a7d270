package session

import (
	"errors"
	"time"

	"github.com/agencianexo/backoffice/internal/auth"
)

// ErrorFlag sinaliza o estado de erro terminal de uma sessão.
// Uma vez marcado, o flag é pegajoso: a sessão não serve mais para chamadas
// à API e só um novo login a substitui.
type ErrorFlag string

const (
	// ErrorNone: sessão sadia.
	ErrorNone ErrorFlag = ""
	// ErrorRefreshTokenExpired: o refresh token foi recusado em definitivo.
	ErrorRefreshTokenExpired ErrorFlag = "RefreshTokenExpired"
	// ErrorRefreshAccessToken: falha transitória/desconhecida no refresh.
	ErrorRefreshAccessToken ErrorFlag = "RefreshAccessTokenError"
)

// FlagFor classifica um erro de refresh no flag correspondente.
func FlagFor(err error) ErrorFlag {
	switch {
	case err == nil:
		return ErrorNone
	case errors.Is(err, auth.ErrRefreshTokenExpired):
		return ErrorRefreshTokenExpired
	default:
		return ErrorRefreshAccessToken
	}
}

// Session combina identidade, par de tokens e estado de erro.
// Criada no login, mutada a cada requisição que exige refresh e destruída
// no logout ou em erro terminal.
type Session struct {
	UserID   string
	RoleName string
	Role     auth.Role
	Tokens   auth.TokenPair
	Error    ErrorFlag
	LoginAt  time.Time
	IssuedAt time.Time
}

// Terminal indica que a sessão não pode mais ser usada para chamadas à API.
func (s *Session) Terminal() bool {
	return s.Error != ErrorNone
}

// AccessToken devolve o token de acesso apenas para sessões sadias.
func (s *Session) AccessToken() (string, bool) {
	if s.Terminal() {
		return "", false
	}
	return s.Tokens.AccessToken, true
}

// PublicRole devolve o papel apenas para sessões sadias; com flag terminal
// o consumidor só enxerga o subject e o próprio flag.
func (s *Session) PublicRole() (auth.Role, bool) {
	if s.Terminal() {
		return auth.RoleStaff, false
	}
	return s.Role, true
}
