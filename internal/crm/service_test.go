package crm

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/agencianexo/backoffice/internal/directus"
)

type stubItems struct {
	created   map[string]any
	createdIn string
	lastToken string
	err       error
}

func (s *stubItems) ListItems(ctx context.Context, collection string, q directus.Query, out any) error {
	return s.err
}

func (s *stubItems) GetItem(ctx context.Context, collection, id string, q directus.Query, out any) error {
	return s.err
}

func (s *stubItems) CreateItem(ctx context.Context, collection string, payload, out any) error {
	if s.err != nil {
		return s.err
	}
	s.createdIn = collection
	if m, ok := payload.(map[string]any); ok {
		s.created = m
	}
	return nil
}

func (s *stubItems) UpdateItem(ctx context.Context, collection, id string, payload, out any) error {
	return s.err
}

func (s *stubItems) DeleteItem(ctx context.Context, collection, id string) error {
	return s.err
}

func newStubService(elevated, userClient *stubItems) *Service {
	return &Service{
		elevated: elevated,
		user: func(token string) itemsAPI {
			userClient.lastToken = token
			return userClient
		},
	}
}

func strPtr(v string) *string { return &v }

func TestCreateAccountExigeNome(t *testing.T) {
	svc := newStubService(&stubItems{}, &stubItems{})

	if _, err := svc.CreateAccount(context.Background(), CreateAccountInput{Name: "  "}); !errors.Is(err, ErrValidation) {
		t.Fatalf("esperava ErrValidation, veio %v", err)
	}
}

func TestCreateActivityUsaOwnerDaSessao(t *testing.T) {
	userClient := &stubItems{}
	svc := newStubService(&stubItems{}, userClient)

	_, err := svc.CreateActivity(context.Background(), "token-user", "user-1", CreateActivityInput{
		Subject:     "Ligar para o cliente",
		Account:     strPtr("acc-1"),
		Description: strPtr("Follow-up da proposta"),
	})
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if userClient.lastToken != "token-user" {
		t.Fatalf("atividade deveria usar o token do usuário, veio %q", userClient.lastToken)
	}
	if userClient.createdIn != "activities" {
		t.Fatalf("coleção inesperada: %q", userClient.createdIn)
	}
	if userClient.created["owner"] != "user-1" {
		t.Fatalf("owner não veio da sessão: %+v", userClient.created)
	}
	if userClient.created["account"] != "acc-1" || userClient.created["description"] != "Follow-up da proposta" {
		t.Fatalf("campos opcionais perdidos: %+v", userClient.created)
	}
	if _, ok := userClient.created["deal"]; ok {
		t.Fatalf("campo vazio não deveria entrar no payload: %+v", userClient.created)
	}
}

func TestCreateActivityExigeSubject(t *testing.T) {
	svc := newStubService(&stubItems{}, &stubItems{})

	if _, err := svc.CreateActivity(context.Background(), "token", "user-1", CreateActivityInput{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("esperava ErrValidation, veio %v", err)
	}
}

func TestMapErrorTraduzNotFound(t *testing.T) {
	notFound := &stubItems{err: &directus.APIError{Status: http.StatusNotFound}}
	svc := newStubService(notFound, &stubItems{})

	if _, err := svc.GetAccount(context.Background(), "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("404 deveria virar ErrNotFound, veio %v", err)
	}

	upstream := &stubItems{err: &directus.APIError{Status: http.StatusBadGateway}}
	svc = newStubService(upstream, &stubItems{})
	if _, err := svc.GetAccount(context.Background(), "x"); errors.Is(err, ErrNotFound) {
		t.Fatal("falha de provedor não é NotFound")
	}
}
