package crm

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/agencianexo/backoffice/internal/directus"
)

var (
	accountFields  = []string{"id", "name", "legal_name", "status", "website", "phone", "email", "tax_id", "address", "city", "zip_code", "notes", "account_owner", "country"}
	contactFields  = []string{"id", "first_name", "last_name", "email", "phone", "job_title", "account"}
	dealFields     = []string{"id", "name", "account", "stage", "amount", "expected_close_date", "owner", "notes"}
	activityFields = []string{"id", "owner", "account", "deal", "contact", "type", "subject", "description", "scheduled_at", "completed_at"}
)

type itemsAPI interface {
	ListItems(ctx context.Context, collection string, q directus.Query, out any) error
	GetItem(ctx context.Context, collection, id string, q directus.Query, out any) error
	CreateItem(ctx context.Context, collection string, payload, out any) error
	UpdateItem(ctx context.Context, collection, id string, payload, out any) error
	DeleteItem(ctx context.Context, collection, id string) error
}

// Service executa o CRUD mapeado das coleções de CRM.
//
// Leituras e escritas administrativas usam o cliente elevado; atividades
// carregam autoria e por isso usam o token do próprio usuário, mantendo a
// fronteira de privilégio explícita.
type Service struct {
	elevated itemsAPI
	user     func(token string) itemsAPI
}

// NewService cria o serviço de CRM com os dois escopos de cliente.
func NewService(base, elevated *directus.Client) *Service {
	return &Service{
		elevated: elevated,
		user: func(token string) itemsAPI {
			return base.WithToken(token)
		},
	}
}

// ListAccounts devolve as contas ordenadas por nome.
func (s *Service) ListAccounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	err := s.elevated.ListItems(ctx, "accounts", directus.Query{
		Fields: accountFields,
		Sort:   []string{"name"},
	}, &accounts)
	return accounts, mapError(err)
}

// GetAccount busca uma conta pelo id.
func (s *Service) GetAccount(ctx context.Context, id string) (*Account, error) {
	var account Account
	err := s.elevated.GetItem(ctx, "accounts", id, directus.Query{Fields: accountFields}, &account)
	if err != nil {
		return nil, mapError(err)
	}
	return &account, nil
}

// CreateAccount cria uma conta nova.
func (s *Service) CreateAccount(ctx context.Context, input CreateAccountInput) (*Account, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrValidation
	}
	var account Account
	if err := s.elevated.CreateItem(ctx, "accounts", input, &account); err != nil {
		return nil, mapError(err)
	}
	return &account, nil
}

// UpdateAccount aplica patch parcial em uma conta.
func (s *Service) UpdateAccount(ctx context.Context, id string, patch map[string]any) (*Account, error) {
	var account Account
	if err := s.elevated.UpdateItem(ctx, "accounts", id, patch, &account); err != nil {
		return nil, mapError(err)
	}
	return &account, nil
}

// ListContacts devolve contatos, opcionalmente filtrados por conta.
func (s *Service) ListContacts(ctx context.Context, accountID string) ([]Contact, error) {
	q := directus.Query{
		Fields: contactFields,
		Sort:   []string{"first_name"},
	}
	if accountID != "" {
		q.Filter = directus.Eq("account", accountID)
	}
	var contacts []Contact
	err := s.elevated.ListItems(ctx, "contacts", q, &contacts)
	return contacts, mapError(err)
}

// CreateContact cria um contato.
func (s *Service) CreateContact(ctx context.Context, input CreateContactInput) (*Contact, error) {
	if strings.TrimSpace(input.FirstName) == "" {
		return nil, ErrValidation
	}
	var contact Contact
	if err := s.elevated.CreateItem(ctx, "contacts", input, &contact); err != nil {
		return nil, mapError(err)
	}
	return &contact, nil
}

// ListDeals devolve os negócios.
func (s *Service) ListDeals(ctx context.Context) ([]Deal, error) {
	var deals []Deal
	err := s.elevated.ListItems(ctx, "deals", directus.Query{
		Fields: dealFields,
		Sort:   []string{"-expected_close_date"},
	}, &deals)
	return deals, mapError(err)
}

// GetDeal busca um negócio pelo id.
func (s *Service) GetDeal(ctx context.Context, id string) (*Deal, error) {
	var deal Deal
	if err := s.elevated.GetItem(ctx, "deals", id, directus.Query{Fields: dealFields}, &deal); err != nil {
		return nil, mapError(err)
	}
	return &deal, nil
}

// CreateDeal cria um negócio.
func (s *Service) CreateDeal(ctx context.Context, input CreateDealInput) (*Deal, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrValidation
	}
	var deal Deal
	if err := s.elevated.CreateItem(ctx, "deals", input, &deal); err != nil {
		return nil, mapError(err)
	}
	return &deal, nil
}

// UpdateDeal aplica patch parcial a um negócio.
func (s *Service) UpdateDeal(ctx context.Context, id string, input UpdateDealInput) (*Deal, error) {
	var deal Deal
	if err := s.elevated.UpdateItem(ctx, "deals", id, input, &deal); err != nil {
		return nil, mapError(err)
	}
	return &deal, nil
}

// ListActivities devolve as atividades visíveis ao usuário da sessão.
func (s *Service) ListActivities(ctx context.Context, accessToken string) ([]Activity, error) {
	var activities []Activity
	err := s.user(accessToken).ListItems(ctx, "activities", directus.Query{
		Fields: activityFields,
		Sort:   []string{"-scheduled_at"},
	}, &activities)
	return activities, mapError(err)
}

// CreateActivity cria uma atividade com o usuário da sessão como owner.
func (s *Service) CreateActivity(ctx context.Context, accessToken, ownerID string, input CreateActivityInput) (*Activity, error) {
	if strings.TrimSpace(input.Subject) == "" {
		return nil, ErrValidation
	}

	payload := map[string]any{
		"owner":   ownerID,
		"subject": input.Subject,
	}
	setOptional(payload, "account", input.Account)
	setOptional(payload, "deal", input.Deal)
	setOptional(payload, "contact", input.Contact)
	setOptional(payload, "type", input.Type)
	setOptional(payload, "description", input.Description)
	setOptional(payload, "scheduled_at", input.ScheduledAt)

	var activity Activity
	if err := s.user(accessToken).CreateItem(ctx, "activities", payload, &activity); err != nil {
		return nil, mapError(err)
	}
	return &activity, nil
}

// UpdateActivity aplica patch parcial a uma atividade.
func (s *Service) UpdateActivity(ctx context.Context, accessToken, id string, input UpdateActivityInput) (*Activity, error) {
	var activity Activity
	if err := s.user(accessToken).UpdateItem(ctx, "activities", id, input, &activity); err != nil {
		return nil, mapError(err)
	}
	return &activity, nil
}

// DeleteActivity remove uma atividade.
func (s *Service) DeleteActivity(ctx context.Context, accessToken, id string) error {
	return mapError(s.user(accessToken).DeleteItem(ctx, "activities", id))
}

func setOptional(payload map[string]any, field string, value *string) {
	if value != nil && strings.TrimSpace(*value) != "" {
		payload[field] = *value
	}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *directus.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return err
}
