package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedAccessToken(t *testing.T, id, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   id,
		"role": role,
	})
	signed, err := token.SignedString([]byte("segredo-qualquer"))
	if err != nil {
		t.Fatalf("assinando token de teste: %v", err)
	}
	return signed
}

func TestDecodeAccessToken(t *testing.T) {
	raw := signedAccessToken(t, "user-1", "role-9")

	subject, role, err := DecodeAccessToken(raw)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if subject != "user-1" || role != "role-9" {
		t.Fatalf("claims inesperadas: subject=%q role=%q", subject, role)
	}
}

func TestDecodeAccessTokenSemID(t *testing.T) {
	raw := signedAccessToken(t, "", "role-9")
	if _, _, err := DecodeAccessToken(raw); err == nil {
		t.Fatal("esperava erro para token sem claim id")
	}
}

func TestDecodeAccessTokenMalformado(t *testing.T) {
	if _, _, err := DecodeAccessToken("não-é-jwt"); err == nil {
		t.Fatal("esperava erro para token malformado")
	}
}

func TestTokenPairExpired(t *testing.T) {
	now := time.Now().UTC()
	pair := TokenPair{ExpiresAt: now.Add(time.Minute)}

	if pair.Expired(now) {
		t.Fatal("par ainda válido marcado como expirado")
	}
	if !pair.Expired(now.Add(time.Minute)) {
		t.Fatal("expiração exata deve contar como expirado")
	}
	if StateOf(pair, now) != StateValid {
		t.Fatal("estado esperado: valid")
	}
	if StateOf(pair, now.Add(2*time.Minute)) != StateExpired {
		t.Fatal("estado esperado: expired")
	}
}
