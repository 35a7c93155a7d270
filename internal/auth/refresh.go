package auth

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agencianexo/backoffice/internal/directus"
)

var (
	// ErrRefreshTokenExpired indica que o refresh token não é mais utilizável
	// (401/403 ou código de credenciais inválidas do provedor).
	ErrRefreshTokenExpired = errors.New("refresh token expirado")
	// ErrRefreshAccessTokenError cobre qualquer outra falha de refresh
	// (rede, payload inesperado). Também terminal para a sessão atual.
	ErrRefreshAccessTokenError = errors.New("falha ao renovar access token")
)

// Refresher renova pares de tokens junto ao provedor.
//
// Transições: EXPIRED→REFRESHING→VALID em caso de sucesso, com o par
// substituído por inteiro; REFRESHING→FAILED em qualquer erro, sem retry.
// FAILED é terminal: a sessão portadora deve ser invalidada pelo consumidor.
type Refresher struct {
	provider  *directus.Client
	accessTTL time.Duration
}

// NewRefresher cria o renovador com o cliente público do provedor.
func NewRefresher(provider *directus.Client, accessTTL time.Duration) *Refresher {
	return &Refresher{provider: provider, accessTTL: accessTTL}
}

// Refresh troca o refresh token por um novo par.
// Quando o provedor omite um novo refresh token, o anterior é mantido.
func (r *Refresher) Refresh(ctx context.Context, pair TokenPair) (TokenPair, error) {
	grant, err := r.provider.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		if directus.IsInvalidCredentials(err) {
			log.Warn().Err(err).Msg("refresh: token recusado pelo provedor")
			return TokenPair{}, ErrRefreshTokenExpired
		}
		log.Warn().Err(err).Msg("refresh: falha transitória ou desconhecida")
		return TokenPair{}, ErrRefreshAccessTokenError
	}
	if grant.AccessToken == "" {
		log.Warn().Msg("refresh: resposta sem access token")
		return TokenPair{}, ErrRefreshAccessTokenError
	}

	refreshed := TokenPair{
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		ExpiresAt:    time.Now().UTC().Add(r.accessTTL),
	}
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = pair.RefreshToken
	}
	return refreshed, nil
}
