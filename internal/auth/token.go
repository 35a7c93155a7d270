package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPair agrupa access e refresh tokens com a expiração do access token.
// O par é sempre substituído por inteiro; nunca há atualização parcial.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Expired avalia a expiração de forma preguiçosa, sem timers de fundo.
func (p TokenPair) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

// TokenState descreve o ciclo de vida de um par de tokens.
type TokenState int

const (
	// StateValid: o access token ainda não expirou.
	StateValid TokenState = iota
	// StateExpired: expirado, elegível para refresh.
	StateExpired
	// StateRefreshing: refresh em andamento (transitório).
	StateRefreshing
	// StateFailed: terminal; nenhuma nova tentativa de refresh.
	StateFailed
)

func (s TokenState) String() string {
	switch s {
	case StateValid:
		return "valid"
	case StateExpired:
		return "expired"
	case StateRefreshing:
		return "refreshing"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// StateOf avalia o estado atual do par em relação ao instante informado.
func StateOf(p TokenPair, now time.Time) TokenState {
	if p.Expired(now) {
		return StateExpired
	}
	return StateValid
}

// AccessClaims espelha as claims relevantes do JWT emitido pelo Directus.
type AccessClaims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// DecodeAccessToken extrai subject e papel do access token sem validar a
// assinatura: o token foi emitido e é verificado pelo provedor; aqui só
// precisamos dos identificadores embutidos.
func DecodeAccessToken(token string) (subjectID, roleID string, err error) {
	claims := &AccessClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return "", "", err
	}
	if claims.ID == "" {
		return "", "", errors.New("access token sem claim id")
	}
	return claims.ID, claims.Role, nil
}
