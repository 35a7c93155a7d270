package util

import "testing"

func TestValidateEmail(t *testing.T) {
	validos := []string{"ana@exemplo.com", "a.b+c@sub.dominio.org"}
	for _, email := range validos {
		if err := ValidateEmail(email); err != nil {
			t.Fatalf("%q deveria ser válido: %v", email, err)
		}
	}

	invalidos := []string{"", "sem-arroba", "@dominio.com", "ana@"}
	for _, email := range invalidos {
		if err := ValidateEmail(email); err == nil {
			t.Fatalf("%q deveria ser inválido", email)
		}
	}
}

func TestRequireString(t *testing.T) {
	if err := RequireString("valor", "campo"); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if err := RequireString("   ", "campo"); err == nil {
		t.Fatal("espaços não contam como valor")
	}
}
