package crm

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	httpmiddleware "github.com/agencianexo/backoffice/internal/http/middleware"
	"github.com/agencianexo/backoffice/internal/session"
)

// Handler orquestra as rotas de CRM da área interna.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/accounts", func(r chi.Router) {
		r.Get("/", h.handleListAccounts)
		r.Post("/", h.handleCreateAccount)
		r.Get("/{id}", h.handleGetAccount)
		r.Patch("/{id}", h.handleUpdateAccount)
	})

	r.Route("/contacts", func(r chi.Router) {
		r.Get("/", h.handleListContacts)
		r.Post("/", h.handleCreateContact)
	})

	r.Route("/deals", func(r chi.Router) {
		r.Get("/", h.handleListDeals)
		r.Post("/", h.handleCreateDeal)
		r.Get("/{id}", h.handleGetDeal)
		r.Patch("/{id}", h.handleUpdateDeal)
	})

	r.Route("/activities", func(r chi.Router) {
		r.Get("/", h.handleListActivities)
		r.Post("/", h.handleCreateActivity)
		r.Patch("/{id}", h.handleUpdateActivity)
		r.Delete("/{id}", h.handleDeleteActivity)
	})
}

func (h *Handler) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListAccounts(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *Handler) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var input CreateAccountInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido")
		return
	}

	account, err := h.service.CreateAccount(r.Context(), input)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			writeError(w, http.StatusBadRequest, "VALIDATION", "name obrigatório")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (h *Handler) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.service.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "conta não encontrada")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *Handler) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido")
		return
	}
	delete(patch, "id")

	account, err := h.service.UpdateAccount(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "conta não encontrada")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *Handler) handleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.service.ListContacts(r.Context(), r.URL.Query().Get("account"))
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *Handler) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var input CreateContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido")
		return
	}

	contact, err := h.service.CreateContact(r.Context(), input)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			writeError(w, http.StatusBadRequest, "VALIDATION", "first_name obrigatório")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

func (h *Handler) handleListDeals(w http.ResponseWriter, r *http.Request) {
	deals, err := h.service.ListDeals(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deals)
}

func (h *Handler) handleGetDeal(w http.ResponseWriter, r *http.Request) {
	deal, err := h.service.GetDeal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "negócio não encontrado")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deal)
}

func (h *Handler) handleCreateDeal(w http.ResponseWriter, r *http.Request) {
	var input CreateDealInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido")
		return
	}

	deal, err := h.service.CreateDeal(r.Context(), input)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			writeError(w, http.StatusBadRequest, "VALIDATION", "name obrigatório")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, deal)
}

func (h *Handler) handleUpdateDeal(w http.ResponseWriter, r *http.Request) {
	var input UpdateDealInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido")
		return
	}

	deal, err := h.service.UpdateDeal(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "negócio não encontrado")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deal)
}

func (h *Handler) handleListActivities(w http.ResponseWriter, r *http.Request) {
	s := httpmiddleware.GetSession(r.Context())
	token, ok := sessionToken(s)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AUTH", "sessão inválida")
		return
	}

	activities, err := h.service.ListActivities(r.Context(), token)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

func (h *Handler) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	s := httpmiddleware.GetSession(r.Context())
	token, ok := sessionToken(s)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AUTH", "sessão inválida")
		return
	}

	var input CreateActivityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido")
		return
	}

	activity, err := h.service.CreateActivity(r.Context(), token, s.UserID, input)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			writeError(w, http.StatusBadRequest, "VALIDATION", "subject obrigatório")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, activity)
}

func (h *Handler) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	s := httpmiddleware.GetSession(r.Context())
	token, ok := sessionToken(s)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AUTH", "sessão inválida")
		return
	}

	var input UpdateActivityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido")
		return
	}

	activity, err := h.service.UpdateActivity(r.Context(), token, chi.URLParam(r, "id"), input)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "atividade não encontrada")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

func (h *Handler) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	s := httpmiddleware.GetSession(r.Context())
	token, ok := sessionToken(s)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AUTH", "sessão inválida")
		return
	}

	if err := h.service.DeleteActivity(r.Context(), token, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "atividade não encontrada")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func sessionToken(s *session.Session) (string, bool) {
	if s == nil {
		return "", false
	}
	return s.AccessToken()
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data, "error": nil})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data":  nil,
		"error": map[string]any{"code": code, "message": message},
	})
}

func writeInternalError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("crm: falha no provedor")
	writeError(w, http.StatusBadGateway, "UPSTREAM", "falha ao consultar o provedor de dados")
}
