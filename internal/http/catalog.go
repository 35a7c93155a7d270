package http

import (
	"net/http"

	"github.com/agencianexo/backoffice/internal/catalog"
)

// CatalogHandler expõe os dados de referência usados pelos formulários da
// área interna.
type CatalogHandler struct {
	service *catalog.Service
}

func NewCatalogHandler(service *catalog.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) HandleListStatuses(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = "ticket"
	}

	statuses, err := h.service.ListStatuses(r.Context(), scope)
	if err != nil {
		WriteUpstreamError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, statuses)
}

func (h *CatalogHandler) HandleListPriorities(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = "ticket"
	}

	priorities, err := h.service.ListPriorities(r.Context(), scope)
	if err != nil {
		WriteUpstreamError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, priorities)
}

func (h *CatalogHandler) HandleListTicketCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListTicketCategories(r.Context())
	if err != nil {
		WriteUpstreamError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) HandleListServicePackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.service.ListServicePackages(r.Context())
	if err != nil {
		WriteUpstreamError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, packages)
}

func (h *CatalogHandler) HandleListStaffUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListStaffUsers(r.Context())
	if err != nil {
		WriteUpstreamError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, users)
}
