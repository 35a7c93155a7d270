package portal

import (
	"github.com/go-chi/chi/v5"
)

// Mount adiciona as rotas da área do cliente.
func Mount(r chi.Router, handler *Handler) {
	handler.RegisterRoutes(r)
}
