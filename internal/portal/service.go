package portal

import (
	"context"
	"errors"

	"github.com/agencianexo/backoffice/internal/directus"
	"github.com/agencianexo/backoffice/internal/tickets"
)

// ErrNoAccount indica usuário de portal sem vínculo de conta.
var ErrNoAccount = errors.New("usuário sem conta vinculada")

// ClientAccount resume a conta visível no portal do cliente.
type ClientAccount struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Website      *string `json:"website,omitempty"`
	JobTitle     *string `json:"job_title,omitempty"`
	RoleInPortal *string `json:"role_in_portal,omitempty"`
}

// Service atende a área do cliente. Todas as chamadas usam o token do
// usuário da sessão: o modelo de permissões do provedor é quem restringe o
// portal aos dados da própria conta.
type Service struct {
	base    *directus.Client
	tickets *tickets.Service
}

// NewService cria o serviço do portal.
func NewService(base *directus.Client, ticketService *tickets.Service) *Service {
	return &Service{base: base, tickets: ticketService}
}

type membershipRow struct {
	JobTitle     *string `json:"job_title"`
	RoleInPortal *string `json:"role_in_portal"`
	Account      struct {
		ID      string  `json:"id"`
		Name    string  `json:"name"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		Website *string `json:"website"`
	} `json:"account"`
}

// Account resolve a conta do usuário via vínculo em account_members.
func (s *Service) Account(ctx context.Context, accessToken, userID string) (*ClientAccount, error) {
	var rows []membershipRow
	err := s.base.WithToken(accessToken).ListItems(ctx, "account_members", directus.Query{
		Filter: directus.Eq("user", userID),
		Fields: []string{
			"job_title", "role_in_portal",
			"account.id", "account.name", "account.email", "account.phone", "account.website",
		},
		Limit: 1,
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoAccount
	}

	row := rows[0]
	return &ClientAccount{
		ID:           row.Account.ID,
		Name:         row.Account.Name,
		Email:        row.Account.Email,
		Phone:        row.Account.Phone,
		Website:      row.Account.Website,
		JobTitle:     row.JobTitle,
		RoleInPortal: row.RoleInPortal,
	}, nil
}

// ListTickets devolve os tickets que o provedor permite ao usuário ver.
func (s *Service) ListTickets(ctx context.Context, accessToken string, f tickets.Filter) ([]tickets.Ticket, error) {
	return s.tickets.List(ctx, accessToken, f)
}

// GetTicket devolve um ticket com a linha do tempo.
func (s *Service) GetTicket(ctx context.Context, accessToken, id string) (*tickets.TicketWithMessages, error) {
	return s.tickets.Get(ctx, accessToken, id)
}

// CreateTicket abre um ticket pelo portal. Campos de triagem são descartados:
// o cliente não escolhe atendente, estado nem prioridade.
func (s *Service) CreateTicket(ctx context.Context, accessToken string, input tickets.CreateTicketInput) (*tickets.Ticket, error) {
	input.AssignedTo = ""
	input.Status = ""
	input.Priority = ""
	input.RequesterContact = ""
	input.Channel = tickets.ChannelPortal
	return s.tickets.Create(ctx, accessToken, input)
}

// CreateMessage registra uma mensagem do cliente, sempre pública.
func (s *Service) CreateMessage(ctx context.Context, accessToken string, input tickets.CreateMessageInput) (*tickets.Message, error) {
	input.IsInternal = false
	input.Source = tickets.ChannelPortal
	return s.tickets.CreateMessage(ctx, accessToken, input)
}
