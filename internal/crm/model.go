package crm

import "errors"

var (
	// ErrNotFound é retornado quando o registro não existe no provedor.
	ErrNotFound = errors.New("registro não encontrado")
	// ErrValidation indica entrada inválida antes de tocar o provedor.
	ErrValidation = errors.New("entrada inválida")
)

// Account representa uma conta (empresa cliente) mapeada da coleção accounts.
type Account struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	LegalName    *string `json:"legal_name,omitempty"`
	Status       *string `json:"status,omitempty"`
	Website      *string `json:"website,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Email        *string `json:"email,omitempty"`
	TaxID        *string `json:"tax_id,omitempty"`
	Address      *string `json:"address,omitempty"`
	City         *string `json:"city,omitempty"`
	ZipCode      *string `json:"zip_code,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	AccountOwner *string `json:"account_owner,omitempty"`
	Country      *string `json:"country,omitempty"`
}

// CreateAccountInput reúne os campos aceitos na criação de contas.
type CreateAccountInput struct {
	Name         string  `json:"name"`
	LegalName    *string `json:"legal_name,omitempty"`
	Status       *string `json:"status,omitempty"`
	Website      *string `json:"website,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Email        *string `json:"email,omitempty"`
	TaxID        *string `json:"tax_id,omitempty"`
	Address      *string `json:"address,omitempty"`
	City         *string `json:"city,omitempty"`
	ZipCode      *string `json:"zip_code,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	AccountOwner *string `json:"account_owner,omitempty"`
	Country      *string `json:"country,omitempty"`
}

// Contact representa um contato vinculado a uma conta.
type Contact struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	JobTitle  *string `json:"job_title,omitempty"`
	Account   *string `json:"account,omitempty"`
}

// CreateContactInput reúne os campos aceitos na criação de contatos.
type CreateContactInput struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	JobTitle  *string `json:"job_title,omitempty"`
	Account   *string `json:"account,omitempty"`
}

// Deal representa um negócio em andamento.
type Deal struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Account           *string  `json:"account,omitempty"`
	Stage             *string  `json:"stage,omitempty"`
	Amount            *float64 `json:"amount,omitempty"`
	ExpectedCloseDate *string  `json:"expected_close_date,omitempty"`
	Owner             *string  `json:"owner,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
}

// CreateDealInput reúne os campos aceitos na criação de negócios.
type CreateDealInput struct {
	Name              string   `json:"name"`
	Account           *string  `json:"account,omitempty"`
	Stage             *string  `json:"stage,omitempty"`
	Amount            *float64 `json:"amount,omitempty"`
	ExpectedCloseDate *string  `json:"expected_close_date,omitempty"`
	Owner             *string  `json:"owner,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
}

// UpdateDealInput aplica patch parcial a um negócio.
type UpdateDealInput struct {
	Name              *string  `json:"name,omitempty"`
	Account           *string  `json:"account,omitempty"`
	Stage             *string  `json:"stage,omitempty"`
	Amount            *float64 `json:"amount,omitempty"`
	ExpectedCloseDate *string  `json:"expected_close_date,omitempty"`
	Owner             *string  `json:"owner,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
}

// Activity representa uma atividade de CRM (tarefa, ligação, reunião).
type Activity struct {
	ID          string  `json:"id"`
	Owner       string  `json:"owner"`
	Account     *string `json:"account,omitempty"`
	Deal        *string `json:"deal,omitempty"`
	Contact     *string `json:"contact,omitempty"`
	Type        *string `json:"type,omitempty"`
	Subject     *string `json:"subject,omitempty"`
	Description *string `json:"description,omitempty"`
	ScheduledAt *string `json:"scheduled_at,omitempty"`
	CompletedAt *string `json:"completed_at,omitempty"`
}

// CreateActivityInput reúne os campos aceitos na criação de atividades.
// O owner é sempre o usuário da sessão; nunca vem do corpo da requisição.
type CreateActivityInput struct {
	Account     *string `json:"account,omitempty"`
	Deal        *string `json:"deal,omitempty"`
	Contact     *string `json:"contact,omitempty"`
	Type        *string `json:"type,omitempty"`
	Subject     string  `json:"subject"`
	Description *string `json:"description,omitempty"`
	ScheduledAt *string `json:"scheduled_at,omitempty"`
}

// UpdateActivityInput aplica patch parcial a uma atividade.
type UpdateActivityInput struct {
	Account     *string `json:"account,omitempty"`
	Deal        *string `json:"deal,omitempty"`
	Contact     *string `json:"contact,omitempty"`
	Type        *string `json:"type,omitempty"`
	Subject     *string `json:"subject,omitempty"`
	Description *string `json:"description,omitempty"`
	ScheduledAt *string `json:"scheduled_at,omitempty"`
	CompletedAt *string `json:"completed_at,omitempty"`
}
