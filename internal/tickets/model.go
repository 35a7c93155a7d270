package tickets

import "errors"

var (
	// ErrNotFound é retornado quando o ticket ou a mensagem não existe.
	ErrNotFound = errors.New("ticket não encontrado")
	// ErrValidation indica entrada inválida antes de tocar o provedor.
	ErrValidation = errors.New("entrada inválida")
)

// Canais de abertura aceitos pelo provedor.
const (
	ChannelEmail    = "email"
	ChannelPhone    = "phone"
	ChannelWhatsapp = "whatsapp"
	ChannelPortal   = "portal"
	ChannelOther    = "other"
)

// Chaves padrão resolvidas no catálogo quando o chamador não informa.
const (
	defaultStatusKey   = "open"
	defaultPriorityKey = "medium"
	catalogScopeTicket = "ticket"
)

// LabelRef referencia uma entrada de catálogo expandida (status, prioridade,
// categoria).
type LabelRef struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Label string `json:"label"`
}

// AccountRef referencia a conta vinculada ao ticket.
type AccountRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserRef referencia um usuário do provedor.
type UserRef struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
}

// PackageRef referencia o pacote de serviço associado.
type PackageRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Ticket representa um chamado com as relações expandidas.
type Ticket struct {
	ID               string      `json:"id"`
	Subject          string      `json:"subject"`
	Description      string      `json:"description"`
	Channel          string      `json:"channel"`
	Status           *LabelRef   `json:"status,omitempty"`
	Priority         *LabelRef   `json:"priority,omitempty"`
	Category         *LabelRef   `json:"category,omitempty"`
	Account          *AccountRef `json:"account,omitempty"`
	AssignedTo       *UserRef    `json:"assigned_to,omitempty"`
	RequesterContact *UserRef    `json:"requester_contact,omitempty"`
	Package          *PackageRef `json:"package,omitempty"`
	FirstResponseAt  *string     `json:"first_response_at,omitempty"`
	DateCreated      *string     `json:"date_created,omitempty"`
	DateUpdated      *string     `json:"date_updated,omitempty"`
}

// Message representa uma interação registrada no ticket.
type Message struct {
	ID          string   `json:"id"`
	Ticket      string   `json:"ticket"`
	Body        string   `json:"body"`
	IsInternal  bool     `json:"is_internal"`
	Source      string   `json:"source,omitempty"`
	Author      *UserRef `json:"author,omitempty"`
	DateCreated *string  `json:"date_created,omitempty"`
}

// TicketWithMessages agrega o chamado e sua linha do tempo.
type TicketWithMessages struct {
	Ticket
	Messages []Message `json:"messages"`
}

// CreateTicketInput reúne os campos aceitos na abertura de tickets.
// Os campos de triagem (assigned_to, status, priority, requester_contact)
// são ignorados quando a origem é o portal do cliente.
type CreateTicketInput struct {
	Subject          string `json:"subject"`
	Description      string `json:"description"`
	Account          string `json:"account,omitempty"`
	Category         string `json:"category,omitempty"`
	Package          string `json:"package,omitempty"`
	Attachments      string `json:"attachments,omitempty"`
	AssignedTo       string `json:"assigned_to,omitempty"`
	Status           string `json:"status,omitempty"`
	Priority         string `json:"priority,omitempty"`
	Channel          string `json:"channel,omitempty"`
	RequesterContact string `json:"requester_contact,omitempty"`
}

// UpdateTicketInput aplica patch parcial a um ticket.
type UpdateTicketInput struct {
	Subject     *string `json:"subject,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Category    *string `json:"category,omitempty"`
	AssignedTo  *string `json:"assigned_to,omitempty"`
	Package     *string `json:"package,omitempty"`
}

// CreateMessageInput reúne os campos de uma nova mensagem.
type CreateMessageInput struct {
	Ticket     string `json:"ticket"`
	Body       string `json:"body"`
	IsInternal bool   `json:"is_internal,omitempty"`
	Source     string `json:"source,omitempty"`
}

// Filter restringe a listagem de tickets.
type Filter struct {
	Status     string
	Priority   string
	AssignedTo string
	Account    string
	Category   string
	Search     string
	Limit      int
	Offset     int
}
