package tickets

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agencianexo/backoffice/internal/directus"
)

var ticketFields = []string{
	"id", "subject", "description", "channel", "first_response_at",
	"date_created", "date_updated",
	"status.id", "status.key", "status.label",
	"priority.id", "priority.key", "priority.label",
	"category.id", "category.key", "category.label",
	"account.id", "account.name",
	"assigned_to.id", "assigned_to.first_name", "assigned_to.last_name",
	"requester_contact.id", "requester_contact.first_name", "requester_contact.last_name", "requester_contact.email",
	"package.id", "package.name", "package.code",
}

var messageFields = []string{
	"id", "ticket", "body", "is_internal", "source", "date_created",
	"author.id", "author.first_name", "author.last_name",
}

type catalogResolver interface {
	DefaultStatusID(ctx context.Context, scope, key string) (string, error)
	DefaultPriorityID(ctx context.Context, scope, key string) (string, error)
}

// Service executa o CRUD de tickets e mensagens com o token do usuário da
// sessão, de modo que o modelo de permissões do provedor decide o que cada
// papel enxerga. Apenas a resolução de padrões de triagem usa o catálogo.
type Service struct {
	base     *directus.Client
	catalog  catalogResolver
	notifier Notifier
}

// NewService cria o serviço de tickets.
func NewService(base *directus.Client, catalog catalogResolver, notifier Notifier) *Service {
	return &Service{base: base, catalog: catalog, notifier: notifier}
}

func (s *Service) user(token string) *directus.Client {
	return s.base.WithToken(token)
}

// List devolve os tickets visíveis ao usuário, com filtros opcionais.
func (s *Service) List(ctx context.Context, accessToken string, f Filter) ([]Ticket, error) {
	var filters []any
	if f.Status != "" {
		filters = append(filters, directus.Eq("status", f.Status))
	}
	if f.Priority != "" {
		filters = append(filters, directus.Eq("priority", f.Priority))
	}
	if f.AssignedTo != "" {
		filters = append(filters, directus.Eq("assigned_to", f.AssignedTo))
	}
	if f.Account != "" {
		filters = append(filters, directus.Eq("account", f.Account))
	}
	if f.Category != "" {
		filters = append(filters, directus.Eq("category", f.Category))
	}

	q := directus.Query{
		Fields: ticketFields,
		Sort:   []string{"-date_created"},
		Search: f.Search,
		Limit:  f.Limit,
		Offset: f.Offset,
	}
	if len(filters) == 1 {
		q.Filter = filters[0]
	} else if len(filters) > 1 {
		q.Filter = directus.And(filters...)
	}

	var out []Ticket
	err := s.user(accessToken).ListItems(ctx, "tickets", q, &out)
	return out, mapError(err)
}

// Get devolve o ticket com a linha do tempo de mensagens.
func (s *Service) Get(ctx context.Context, accessToken, id string) (*TicketWithMessages, error) {
	var ticket Ticket
	if err := s.user(accessToken).GetItem(ctx, "tickets", id, directus.Query{Fields: ticketFields}, &ticket); err != nil {
		return nil, mapError(err)
	}

	messages, err := s.ListMessages(ctx, accessToken, id)
	if err != nil {
		return nil, err
	}
	return &TicketWithMessages{Ticket: ticket, Messages: messages}, nil
}

// Create abre um ticket, resolvendo status e prioridade padrão quando o
// chamador não informa.
func (s *Service) Create(ctx context.Context, accessToken string, input CreateTicketInput) (*Ticket, error) {
	if strings.TrimSpace(input.Subject) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, ErrValidation
	}

	statusID := input.Status
	if statusID == "" {
		resolved, err := s.catalog.DefaultStatusID(ctx, catalogScopeTicket, defaultStatusKey)
		if err != nil {
			return nil, err
		}
		statusID = resolved
	}

	priorityID := input.Priority
	if priorityID == "" {
		resolved, err := s.catalog.DefaultPriorityID(ctx, catalogScopeTicket, defaultPriorityKey)
		if err != nil {
			return nil, err
		}
		priorityID = resolved
	}

	channel := input.Channel
	if channel == "" {
		channel = ChannelPortal
	}

	payload := map[string]any{
		"subject":     input.Subject,
		"description": input.Description,
		"channel":     channel,
		"status":      statusID,
		"priority":    priorityID,
	}
	setOptional(payload, "account", input.Account)
	setOptional(payload, "category", input.Category)
	setOptional(payload, "package", input.Package)
	setOptional(payload, "attachments", input.Attachments)
	setOptional(payload, "assigned_to", input.AssignedTo)
	setOptional(payload, "requester_contact", input.RequesterContact)

	var ticket Ticket
	if err := s.user(accessToken).CreateItem(ctx, "tickets", payload, &ticket); err != nil {
		return nil, mapError(err)
	}

	s.notifyCreated(&ticket)
	return &ticket, nil
}

// Update aplica patch parcial a um ticket.
func (s *Service) Update(ctx context.Context, accessToken, id string, input UpdateTicketInput) (*Ticket, error) {
	var ticket Ticket
	if err := s.user(accessToken).UpdateItem(ctx, "tickets", id, input, &ticket); err != nil {
		return nil, mapError(err)
	}
	return &ticket, nil
}

// MarkFirstResponse registra o carimbo de primeira resposta uma única vez;
// chamadas subsequentes não sobrescrevem o valor original.
func (s *Service) MarkFirstResponse(ctx context.Context, accessToken, id string) (*Ticket, error) {
	client := s.user(accessToken)

	var current struct {
		ID              string  `json:"id"`
		FirstResponseAt *string `json:"first_response_at"`
	}
	if err := client.GetItem(ctx, "tickets", id, directus.Query{Fields: []string{"id", "first_response_at"}}, &current); err != nil {
		return nil, mapError(err)
	}
	if current.FirstResponseAt != nil && *current.FirstResponseAt != "" {
		var ticket Ticket
		if err := client.GetItem(ctx, "tickets", id, directus.Query{Fields: ticketFields}, &ticket); err != nil {
			return nil, mapError(err)
		}
		return &ticket, nil
	}

	patch := map[string]any{"first_response_at": time.Now().UTC().Format(time.RFC3339)}
	var ticket Ticket
	if err := client.UpdateItem(ctx, "tickets", id, patch, &ticket); err != nil {
		return nil, mapError(err)
	}
	return &ticket, nil
}

// ListMessages devolve a linha do tempo de um ticket.
func (s *Service) ListMessages(ctx context.Context, accessToken, ticketID string) ([]Message, error) {
	var messages []Message
	err := s.user(accessToken).ListItems(ctx, "tickets_messages", directus.Query{
		Filter: directus.Eq("ticket", ticketID),
		Fields: messageFields,
		Sort:   []string{"date_created"},
	}, &messages)
	return messages, mapError(err)
}

// CreateMessage registra uma nova interação no ticket.
func (s *Service) CreateMessage(ctx context.Context, accessToken string, input CreateMessageInput) (*Message, error) {
	if strings.TrimSpace(input.Ticket) == "" || strings.TrimSpace(input.Body) == "" {
		return nil, ErrValidation
	}

	var message Message
	if err := s.user(accessToken).CreateItem(ctx, "tickets_messages", input, &message); err != nil {
		return nil, mapError(err)
	}
	return &message, nil
}

// UploadAttachment envia um anexo para o provedor e devolve os metadados.
func (s *Service) UploadAttachment(ctx context.Context, accessToken, filename, contentType string, r io.Reader) (directus.File, error) {
	file, err := s.user(accessToken).UploadFile(ctx, filename, contentType, r)
	return file, mapError(err)
}

// notifyCreated avisa o canal externo em melhor esforço; a abertura do
// ticket nunca falha por causa do webhook.
func (s *Service) notifyCreated(ticket *Ticket) {
	if s.notifier == nil {
		return
	}
	notification := Notification{TicketID: ticket.ID, Subject: ticket.Subject}
	if ticket.Priority != nil {
		notification.Priority = ticket.Priority.Key
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.notifier.Notify(ctx, notification); err != nil {
			log.Warn().Err(err).Str("ticket", notification.TicketID).Msg("tickets: webhook de aviso falhou")
		}
	}()
}

func setOptional(payload map[string]any, field, value string) {
	if strings.TrimSpace(value) != "" {
		payload[field] = value
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
