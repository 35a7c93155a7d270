package portal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	httpmiddleware "github.com/agencianexo/backoffice/internal/http/middleware"
	"github.com/agencianexo/backoffice/internal/session"
	"github.com/agencianexo/backoffice/internal/tickets"
)

// Handler orquestra as rotas da área do cliente.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/account", h.handleAccount)
	r.Get("/tickets", h.handleListTickets)
	r.Post("/tickets", h.handleCreateTicket)
	r.Get("/tickets/{id}", h.handleGetTicket)
	r.Post("/tickets/messages", h.handleCreateMessage)
}

func (h *Handler) handleAccount(w http.ResponseWriter, r *http.Request) {
	s, token, ok := sessionToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AUTH", "sessão inválida")
		return
	}

	account, err := h.service.Account(r.Context(), token, s.UserID)
	if err != nil {
		if errors.Is(err, ErrNoAccount) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "nenhuma conta vinculada ao usuário")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *Handler) handleListTickets(w http.ResponseWriter, r *http.Request) {
	_, token, ok := sessionToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AUTH", "sessão inválida")
		return
	}

	query := r.URL.Query()
	f := tickets.Filter{
		Status: query.Get("status"),
		Search: query.Get("search"),
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil && limit > 0 {
		f.Limit = limit
	}
	if offset, err := strconv.Atoi(query.Get("offset")); err == nil && offset > 0 {
		f.Offset = offset
	}

	list, err := h.service.ListTickets(r.Context(), token, f)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGetTicket(w http.ResponseWriter, r *http.Request) {
	_, token, ok := sessionToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AUTH", "sessão inválida")
		return
	}

	ticket, err := h.service.GetTicket(r.Context(), token, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, tickets.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "ticket não encontrado")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

func (h *Handler) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	_, token, ok := sessionToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AUTH", "sessão inválida")
		return
	}

	var input tickets.CreateTicketInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido")
		return
	}

	ticket, err := h.service.CreateTicket(r.Context(), token, input)
	if err != nil {
		if errors.Is(err, tickets.ErrValidation) {
			writeError(w, http.StatusBadRequest, "VALIDATION", "subject e description obrigatórios")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}

func (h *Handler) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	_, token, ok := sessionToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AUTH", "sessão inválida")
		return
	}

	var input tickets.CreateMessageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido")
		return
	}

	message, err := h.service.CreateMessage(r.Context(), token, input)
	if err != nil {
		if errors.Is(err, tickets.ErrValidation) {
			writeError(w, http.StatusBadRequest, "VALIDATION", "ticket e body obrigatórios")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, message)
}

func sessionToken(r *http.Request) (*session.Session, string, bool) {
	s := httpmiddleware.GetSession(r.Context())
	if s == nil {
		return nil, "", false
	}
	token, ok := s.AccessToken()
	return s, token, ok
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
	log.Error().Err(err).Msg("portal: falha no provedor")
	writeError(w, http.StatusBadGateway, "UPSTREAM", "falha ao consultar o provedor de dados")
}
