package auth

import "strings"

// Role particiona identidades entre as duas áreas da aplicação.
// A resolução acontece uma única vez, na troca de credenciais; o resto do
// código nunca compara strings de papel.
type Role int

const (
	// RoleStaff acessa a área interna (/dashboard).
	RoleStaff Role = iota
	// RoleClient acessa o portal do cliente (/portal).
	RoleClient
)

// clientRoleName é o nome de papel que o provedor atribui a usuários de portal.
const clientRoleName = "Cliente"

// ResolveRole converte o nome externo do papel na enumeração fechada.
// Papéis desconhecidos ou vazios caem em RoleStaff; a autorização fina
// fica no modelo de permissões do provedor.
func ResolveRole(name string) Role {
	if strings.TrimSpace(name) == clientRoleName {
		return RoleClient
	}
	return RoleStaff
}

func (r Role) String() string {
	if r == RoleClient {
		return "client"
	}
	return "staff"
}

// HomePath devolve a raiz da área correspondente ao papel.
func (r Role) HomePath() string {
	if r == RoleClient {
		return "/portal"
	}
	return "/dashboard"
}
