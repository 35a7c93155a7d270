package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/agencianexo/backoffice/internal/auth"
)

// Codec assina e verifica o envelope de sessão (JWT HS256).
type Codec struct {
	secret    []byte
	maxAge    time.Duration
	updateAge time.Duration
}

// NewCodec cria o codec com a vida absoluta e a janela de reemissão.
func NewCodec(secret string, maxAge, updateAge time.Duration) *Codec {
	return &Codec{secret: []byte(secret), maxAge: maxAge, updateAge: updateAge}
}

type envelopeClaims struct {
	Role         string `json:"role"`
	AccessToken  string `json:"at"`
	RefreshToken string `json:"rt"`
	AccessExpiry int64  `json:"ate"`
	Error        string `json:"err,omitempty"`
	LoginAt      int64  `json:"lat"`
	jwt.RegisteredClaims
}

// Encode assina o envelope. A expiração é sempre a vida absoluta contada a
// partir do login; reemissões deslizantes renovam apenas o iat.
func (c *Codec) Encode(s *Session, now time.Time) (string, error) {
	if s.UserID == "" {
		return "", errors.New("sessão sem subject")
	}

	claims := envelopeClaims{
		Role:         s.RoleName,
		AccessToken:  s.Tokens.AccessToken,
		RefreshToken: s.Tokens.RefreshToken,
		AccessExpiry: s.Tokens.ExpiresAt.Unix(),
		Error:        string(s.Error),
		LoginAt:      s.LoginAt.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.LoginAt.Add(c.maxAge)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifica assinatura e expiração absoluta e reconstrói a sessão.
func (c *Codec) Decode(tokenString string, now time.Time) (*Session, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	token, err := parser.ParseWithClaims(tokenString, &envelopeClaims{}, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*envelopeClaims)
	if !ok || !token.Valid {
		return nil, errors.New("envelope inválido")
	}

	s := &Session{
		UserID:   claims.Subject,
		RoleName: claims.Role,
		Role:     auth.ResolveRole(claims.Role),
		Tokens: auth.TokenPair{
			AccessToken:  claims.AccessToken,
			RefreshToken: claims.RefreshToken,
			ExpiresAt:    time.Unix(claims.AccessExpiry, 0).UTC(),
		},
		Error:   ErrorFlag(claims.Error),
		LoginAt: time.Unix(claims.LoginAt, 0).UTC(),
	}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	return s, nil
}

// NeedsReissue indica envelope mais velho que a janela deslizante.
func (c *Codec) NeedsReissue(s *Session, now time.Time) bool {
	return now.Sub(s.IssuedAt) >= c.updateAge
}

// ExpiresAt devolve o fim absoluto da sessão.
func (c *Codec) ExpiresAt(s *Session) time.Time {
	return s.LoginAt.Add(c.maxAge)
}
