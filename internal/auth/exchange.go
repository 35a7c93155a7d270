package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agencianexo/backoffice/internal/directus"
)

var (
	// ErrInvalidLogin indica falha na autenticação; nenhum detalhe do
	// provedor atravessa esta fronteira.
	ErrInvalidLogin = errors.New("credenciais inválidas")
)

// Identity reúne os atributos resolvidos do usuário autenticado.
type Identity struct {
	UserID      string
	Email       string
	DisplayName string
	RoleName    string
	Role        Role
	AvatarRef   string
}

// Exchanger executa a troca de credenciais contra o provedor.
//
// O cliente elevado existe porque o token recém-emitido pode não ter
// permissão para ler o nome do próprio papel nem campos arbitrários de
// perfil sob o modelo de permissões do provedor. Os dois clientes nunca
// se misturam: o elevado só atende as consultas de papel e perfil.
type Exchanger struct {
	provider  *directus.Client
	elevated  *directus.Client
	accessTTL time.Duration
}

// NewExchanger cria o trocador com os dois escopos de cliente.
func NewExchanger(provider, elevated *directus.Client, accessTTL time.Duration) *Exchanger {
	return &Exchanger{provider: provider, elevated: elevated, accessTTL: accessTTL}
}

// Login autentica e resolve a identidade completa.
// Qualquer falha (credenciais, tokens ausentes, consultas de apoio) resulta
// em ErrInvalidLogin: o chamador trata como login negado, sem sessão criada.
func (e *Exchanger) Login(ctx context.Context, email, password string) (*Identity, TokenPair, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, TokenPair{}, ErrInvalidLogin
	}

	grant, err := e.provider.Login(ctx, email, password)
	if err != nil {
		log.Warn().Err(err).Msg("login: provedor recusou credenciais")
		return nil, TokenPair{}, ErrInvalidLogin
	}
	if grant.AccessToken == "" || grant.RefreshToken == "" {
		log.Warn().Msg("login: provedor não devolveu par de tokens")
		return nil, TokenPair{}, ErrInvalidLogin
	}

	subjectID, roleID, err := DecodeAccessToken(grant.AccessToken)
	if err != nil {
		log.Warn().Err(err).Msg("login: access token indecodificável")
		return nil, TokenPair{}, ErrInvalidLogin
	}

	roleName, err := e.lookupRoleName(ctx, roleID)
	if err != nil {
		log.Warn().Err(err).Msg("login: consulta de papel falhou")
		return nil, TokenPair{}, ErrInvalidLogin
	}

	profile, err := e.lookupProfile(ctx, subjectID)
	if err != nil {
		log.Warn().Err(err).Msg("login: consulta de perfil falhou")
		return nil, TokenPair{}, ErrInvalidLogin
	}

	identity := &Identity{
		UserID:      subjectID,
		Email:       profile.Email,
		DisplayName: strings.TrimSpace(strings.TrimSpace(profile.FirstName) + " " + strings.TrimSpace(profile.LastName)),
		RoleName:    roleName,
		Role:        ResolveRole(roleName),
		AvatarRef:   profile.Avatar,
	}
	if identity.Email == "" {
		identity.Email = email
	}

	pair := TokenPair{
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		ExpiresAt:    time.Now().UTC().Add(e.accessTTL),
	}
	return identity, pair, nil
}

func (e *Exchanger) lookupRoleName(ctx context.Context, roleID string) (string, error) {
	if roleID == "" {
		return "", nil
	}

	var roles []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	err := e.elevated.ListRoles(ctx, directus.Query{
		Filter: directus.Eq("id", roleID),
		Fields: []string{"id", "name"},
		Limit:  1,
	}, &roles)
	if err != nil {
		return "", err
	}
	if len(roles) == 0 {
		return "", nil
	}
	return roles[0].Name, nil
}

type profileFields struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

func (e *Exchanger) lookupProfile(ctx context.Context, userID string) (profileFields, error) {
	var users []profileFields
	err := e.elevated.ListUsers(ctx, directus.Query{
		Filter: directus.Eq("id", userID),
		Fields: []string{"email", "first_name", "last_name", "avatar"},
		Limit:  1,
	}, &users)
	if err != nil {
		return profileFields{}, err
	}
	if len(users) == 0 {
		return profileFields{}, nil
	}
	return users[0], nil
}
