package crm

import (
	"github.com/go-chi/chi/v5"
)

// Mount adiciona as rotas de CRM no router da área interna.
func Mount(r chi.Router, handler *Handler) {
	handler.RegisterRoutes(r)
}
