package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/agencianexo/backoffice/internal/directus"
)

// ErrNotFound é retornado quando a entrada de referência não existe.
var ErrNotFound = errors.New("entrada de catálogo não encontrada")

type redisCommander interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Service consulta os dados de referência do provedor (statuses, prioridades,
// categorias, pacotes, diretório de equipe) com cache curto em Redis. Tokens
// e identidades nunca passam por aqui: só dados de catálogo, que mudam raro.
type Service struct {
	elevated *directus.Client
	redis    redisCommander
	ttl      time.Duration
}

// NewService cria o serviço de catálogo.
func NewService(elevated *directus.Client, redisClient redisCommander, ttl time.Duration) *Service {
	return &Service{elevated: elevated, redis: redisClient, ttl: ttl}
}

// ListStatuses devolve os estados do escopo informado.
func (s *Service) ListStatuses(ctx context.Context, scope string) ([]Status, error) {
	var out []Status
	err := s.cached(ctx, "catalog:statuses:"+scope, &out, func(dest any) error {
		return s.elevated.ListItems(ctx, "statuses", directus.Query{
			Filter: directus.Eq("scope", scope),
			Fields: []string{"id", "key", "label", "scope"},
			Sort:   []string{"label"},
		}, dest)
	})
	return out, err
}

// ListPriorities devolve as prioridades do escopo informado.
func (s *Service) ListPriorities(ctx context.Context, scope string) ([]Priority, error) {
	var out []Priority
	err := s.cached(ctx, "catalog:priorities:"+scope, &out, func(dest any) error {
		return s.elevated.ListItems(ctx, "priorities", directus.Query{
			Filter: directus.Eq("scope", scope),
			Fields: []string{"id", "key", "label", "scope"},
		}, dest)
	})
	return out, err
}

// ListTicketCategories devolve as categorias de ticket.
func (s *Service) ListTicketCategories(ctx context.Context) ([]TicketCategory, error) {
	var out []TicketCategory
	err := s.cached(ctx, "catalog:ticket_categories", &out, func(dest any) error {
		return s.elevated.ListItems(ctx, "ticket_categories", directus.Query{
			Fields: []string{"id", "key", "label"},
			Sort:   []string{"label"},
		}, dest)
	})
	return out, err
}

// ListServicePackages devolve os pacotes de serviço.
func (s *Service) ListServicePackages(ctx context.Context) ([]ServicePackage, error) {
	var out []ServicePackage
	err := s.cached(ctx, "catalog:service_packages", &out, func(dest any) error {
		return s.elevated.ListItems(ctx, "service_packages", directus.Query{
			Fields: []string{"id", "name", "code"},
			Sort:   []string{"name"},
		}, dest)
	})
	return out, err
}

// ListStaffUsers devolve o diretório de usuários internos.
func (s *Service) ListStaffUsers(ctx context.Context) ([]StaffUser, error) {
	var out []StaffUser
	err := s.cached(ctx, "catalog:staff_users", &out, func(dest any) error {
		return s.elevated.ListUsers(ctx, directus.Query{
			Fields: []string{"id", "first_name", "last_name", "email", "avatar"},
			Sort:   []string{"first_name"},
		}, dest)
	})
	return out, err
}

// DefaultStatusID resolve o id do estado padrão (ex.: open) de um escopo.
func (s *Service) DefaultStatusID(ctx context.Context, scope, key string) (string, error) {
	statuses, err := s.ListStatuses(ctx, scope)
	if err != nil {
		return "", err
	}
	for _, st := range statuses {
		if st.Key == key {
			return st.ID, nil
		}
	}
	return "", ErrNotFound
}

// DefaultPriorityID resolve o id da prioridade padrão (ex.: medium).
func (s *Service) DefaultPriorityID(ctx context.Context, scope, key string) (string, error) {
	priorities, err := s.ListPriorities(ctx, scope)
	if err != nil {
		return "", err
	}
	for _, p := range priorities {
		if p.Key == key {
			return p.ID, nil
		}
	}
	return "", ErrNotFound
}

// cached tenta o Redis antes do provedor; qualquer falha de cache degrada
// para a consulta direta.
func (s *Service) cached(ctx context.Context, key string, dest any, fetch func(dest any) error) error {
	if s.redis != nil {
		if raw, err := s.redis.Get(ctx, key).Result(); err == nil {
			if err := json.Unmarshal([]byte(raw), dest); err == nil {
				return nil
			}
		}
	}

	if err := fetch(dest); err != nil {
		return err
	}

	if s.redis != nil {
		if raw, err := json.Marshal(dest); err == nil {
			if err := s.redis.Set(ctx, key, raw, s.ttl).Err(); err != nil {
				log.Debug().Err(err).Str("key", key).Msg("catálogo: cache indisponível")
			}
		}
	}
	return nil
}
