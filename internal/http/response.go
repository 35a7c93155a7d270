package http

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// SuccessEnvelope padroniza respostas de sucesso.
type SuccessEnvelope struct {
	Data  any `json:"data"`
	Error any `json:"error"`
}

// ErrorBody padroniza o corpo de erro.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// WriteJSON envia resposta de sucesso no envelope padrão.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(SuccessEnvelope{Data: data})
}

// WriteError envia resposta de erro no envelope padrão.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data":  nil,
		"error": ErrorBody{Code: code, Message: message},
	})
}

// WriteUpstreamError loga a falha do provedor e devolve 502 genérico.
func WriteUpstreamError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("http: falha no provedor")
	WriteError(w, http.StatusBadGateway, "UPSTREAM", "falha ao consultar o provedor de dados")
}
