package catalog

// Status representa uma entrada da coleção statuses do provedor.
// O escopo distingue estados de ticket, de conta e de negócio.
type Status struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Label string `json:"label"`
	Scope string `json:"scope"`
}

// Priority representa uma entrada da coleção priorities.
type Priority struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Label string `json:"label"`
	Scope string `json:"scope"`
}

// TicketCategory representa uma categoria de ticket.
type TicketCategory struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ServicePackage representa um pacote de serviço contratável.
type ServicePackage struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// StaffUser descreve um usuário interno listável para atribuições.
type StaffUser struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar,omitempty"`
}
