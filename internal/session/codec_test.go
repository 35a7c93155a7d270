package session

import (
	"strings"
	"testing"
	"time"

	"github.com/agencianexo/backoffice/internal/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testCodec() *Codec {
	return NewCodec(testSecret, 7*24*time.Hour, 15*time.Minute)
}

func testSession(now time.Time) *Session {
	return &Session{
		UserID:   "user-1",
		RoleName: "Cliente",
		Role:     auth.RoleClient,
		Tokens: auth.TokenPair{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			ExpiresAt:    now.Add(15 * time.Minute),
		},
		LoginAt:  now,
		IssuedAt: now,
	}
}

func TestCodecRoundtrip(t *testing.T) {
	codec := testCodec()
	now := time.Now().UTC().Truncate(time.Second)
	s := testSession(now)

	raw, err := codec.Encode(s, now)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := codec.Decode(raw, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if decoded.UserID != "user-1" || decoded.RoleName != "Cliente" || decoded.Role != auth.RoleClient {
		t.Fatalf("identidade não sobreviveu ao roundtrip: %+v", decoded)
	}
	if decoded.Tokens.AccessToken != "access-1" || decoded.Tokens.RefreshToken != "refresh-1" {
		t.Fatalf("tokens não sobreviveram ao roundtrip: %+v", decoded.Tokens)
	}
	if !decoded.Tokens.ExpiresAt.Equal(s.Tokens.ExpiresAt) {
		t.Fatalf("expiração do access token divergente: %v != %v", decoded.Tokens.ExpiresAt, s.Tokens.ExpiresAt)
	}
	if !decoded.LoginAt.Equal(now) {
		t.Fatalf("loginAt divergente: %v != %v", decoded.LoginAt, now)
	}
	if decoded.Terminal() {
		t.Fatal("sessão sadia decodificada como terminal")
	}
}

func TestCodecPreservaFlagDeErro(t *testing.T) {
	codec := testCodec()
	now := time.Now().UTC().Truncate(time.Second)
	s := testSession(now)
	s.Error = ErrorRefreshTokenExpired

	raw, err := codec.Encode(s, now)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := codec.Decode(raw, now)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Error != ErrorRefreshTokenExpired || !decoded.Terminal() {
		t.Fatalf("flag terminal não sobreviveu: %+v", decoded)
	}
	if _, ok := decoded.AccessToken(); ok {
		t.Fatal("sessão terminal não deve expor access token")
	}
	if _, ok := decoded.PublicRole(); ok {
		t.Fatal("sessão terminal não deve expor papel")
	}
}

func TestPublicRoleSessaoSadia(t *testing.T) {
	s := testSession(time.Now().UTC())

	role, ok := s.PublicRole()
	if !ok || role != auth.RoleClient {
		t.Fatalf("sessão sadia deveria expor o papel: ok=%v role=%v", ok, role)
	}
}

func TestCodecRejeitaAssinaturaAdulterada(t *testing.T) {
	codec := testCodec()
	now := time.Now().UTC()

	raw, err := codec.Encode(testSession(now), now)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	adulterado := raw[:len(raw)-3] + "xyz"
	if _, err := codec.Decode(adulterado, now); err == nil {
		t.Fatal("envelope adulterado deveria ser rejeitado")
	}

	outro := NewCodec(strings.Repeat("z", 32), 7*24*time.Hour, 15*time.Minute)
	if _, err := outro.Decode(raw, now); err == nil {
		t.Fatal("segredo diferente deveria rejeitar o envelope")
	}
}

func TestCodecTetoAbsoluto(t *testing.T) {
	codec := testCodec()
	now := time.Now().UTC()
	s := testSession(now)

	raw, err := codec.Encode(s, now)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	// Reemissões deslizantes renovam só o iat; o exp fica ancorado no login.
	if _, err := codec.Decode(raw, now.Add(7*24*time.Hour+time.Minute)); err == nil {
		t.Fatal("envelope além do teto absoluto deveria ser rejeitado")
	}
	if _, err := codec.Decode(raw, now.Add(6*24*time.Hour)); err != nil {
		t.Fatalf("envelope dentro do teto rejeitado: %v", err)
	}
}

func TestNeedsReissue(t *testing.T) {
	codec := testCodec()
	now := time.Now().UTC()
	s := testSession(now)

	if codec.NeedsReissue(s, now.Add(14*time.Minute)) {
		t.Fatal("reemissão antes da janela")
	}
	if !codec.NeedsReissue(s, now.Add(15*time.Minute)) {
		t.Fatal("janela exata deveria reemitir")
	}
}

func TestEncodeSemSubject(t *testing.T) {
	codec := testCodec()
	now := time.Now().UTC()
	s := testSession(now)
	s.UserID = ""

	if _, err := codec.Encode(s, now); err == nil {
		t.Fatal("sessão sem subject não deve ser assinada")
	}
}
