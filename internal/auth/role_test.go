package auth

import "testing"

func TestResolveRole(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Role
	}{
		{"cliente exato", "Cliente", RoleClient},
		{"cliente com espaços", "  Cliente  ", RoleClient},
		{"variação de caixa não casa", "cliente", RoleStaff},
		{"prefixo não casa", "Cliente VIP", RoleStaff},
		{"papel interno", "Administrator", RoleStaff},
		{"vazio", "", RoleStaff},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveRole(tc.in); got != tc.want {
				t.Fatalf("ResolveRole(%q) = %v, esperado %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRoleHomePath(t *testing.T) {
	if got := RoleClient.HomePath(); got != "/portal" {
		t.Fatalf("HomePath de cliente = %q", got)
	}
	if got := RoleStaff.HomePath(); got != "/dashboard" {
		t.Fatalf("HomePath de staff = %q", got)
	}
}

func TestRoleString(t *testing.T) {
	if RoleClient.String() != "client" || RoleStaff.String() != "staff" {
		t.Fatalf("String() inesperado: %q / %q", RoleClient.String(), RoleStaff.String())
	}
}
