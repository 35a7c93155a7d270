package session

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agencianexo/backoffice/internal/auth"
)

// TokenRefresher renova um par de tokens expirado; implementado por
// auth.Refresher.
type TokenRefresher interface {
	Refresh(ctx context.Context, pair auth.TokenPair) (auth.TokenPair, error)
}

// Manager faz a ponte entre o envelope persistido em cookie e os
// consumidores de sessão. Todo estado vive no envelope: nada é guardado
// entre requisições no processo.
type Manager struct {
	codec     *Codec
	refresher TokenRefresher
	secure    bool
	now       func() time.Time
}

// NewManager cria o gerenciador de sessões.
func NewManager(codec *Codec, refresher TokenRefresher, secure bool) *Manager {
	return &Manager{
		codec:     codec,
		refresher: refresher,
		secure:    secure,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Secure informa se os cookies levam o atributo Secure.
func (m *Manager) Secure() bool {
	return m.secure
}

// Issue cria a sessão de login e grava o envelope na resposta.
func (m *Manager) Issue(w http.ResponseWriter, identity *auth.Identity, pair auth.TokenPair) (*Session, error) {
	now := m.now()
	s := &Session{
		UserID:   identity.UserID,
		RoleName: identity.RoleName,
		Role:     identity.Role,
		Tokens:   pair,
		Error:    ErrorNone,
		LoginAt:  now,
		IssuedAt: now,
	}
	if err := m.persist(w, s, now); err != nil {
		return nil, err
	}
	return s, nil
}

// Load lê a sessão da requisição e aplica o ciclo de vida do par de tokens:
// par válido passa intocado; par expirado dispara exatamente um refresh,
// persistido por inteiro; falha de refresh vira flag terminal persistido.
// Envelopes ilegíveis ou expirados contam como ausência de sessão.
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	raw, ok := ReadCookie(r)
	if !ok {
		return nil, false
	}

	now := m.now()
	s, err := m.codec.Decode(raw, now)
	if err != nil {
		log.Debug().Err(err).Msg("sessão: envelope rejeitado")
		return nil, false
	}

	if s.Terminal() {
		return s, true
	}

	if s.Tokens.Expired(now) {
		refreshed, err := m.refresher.Refresh(r.Context(), s.Tokens)
		if err != nil {
			s.Error = FlagFor(err)
			if perr := m.persist(w, s, now); perr != nil {
				log.Error().Err(perr).Msg("sessão: falha ao persistir flag de erro")
			}
			return s, true
		}
		s.Tokens = refreshed
		if err := m.persist(w, s, now); err != nil {
			log.Error().Err(err).Msg("sessão: falha ao persistir par renovado")
		}
		return s, true
	}

	if m.codec.NeedsReissue(s, now) {
		if err := m.persist(w, s, now); err != nil {
			log.Error().Err(err).Msg("sessão: falha na reemissão deslizante")
		}
	}
	return s, true
}

// Clear expira todas as variantes de cookie de sessão.
func (m *Manager) Clear(w http.ResponseWriter) {
	ClearCookies(w, m.secure)
}

// ExpiresAt devolve o fim absoluto da sessão informada.
func (m *Manager) ExpiresAt(s *Session) time.Time {
	return m.codec.ExpiresAt(s)
}

func (m *Manager) persist(w http.ResponseWriter, s *Session, now time.Time) error {
	s.IssuedAt = now
	token, err := m.codec.Encode(s, now)
	if err != nil {
		return err
	}
	WriteCookie(w, token, m.codec.ExpiresAt(s), m.secure)
	return nil
}
