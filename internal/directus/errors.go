package directus

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// CodeInvalidCredentials é o código retornado pelo Directus quando as
// credenciais (incluindo refresh tokens) não são mais válidas.
const CodeInvalidCredentials = "INVALID_CREDENTIALS"

// APIError representa uma resposta de erro estruturada do Directus.
type APIError struct {
	Status  int
	Details []ErrorDetail
}

// ErrorDetail descreve uma entrada do array errors da resposta.
type ErrorDetail struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

func (e *APIError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("directus: status %d", e.Status)
	}
	messages := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		messages = append(messages, d.Message)
	}
	return fmt.Sprintf("directus: status %d: %s", e.Status, strings.Join(messages, "; "))
}

// HasCode verifica se algum erro da resposta carrega o código informado.
func (e *APIError) HasCode(code string) bool {
	for _, d := range e.Details {
		if strings.EqualFold(d.Extensions.Code, code) {
			return true
		}
	}
	return false
}

// IsInvalidCredentials identifica respostas que invalidam as credenciais
// apresentadas: 401/403, código INVALID_CREDENTIALS ou a mensagem literal
// emitida pelo provedor.
func IsInvalidCredentials(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden {
		return true
	}
	if apiErr.HasCode(CodeInvalidCredentials) {
		return true
	}
	for _, d := range apiErr.Details {
		if strings.Contains(d.Message, "Invalid user credentials") {
			return true
		}
	}
	return false
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var payload struct {
		Errors []ErrorDetail `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Details = payload.Errors
	}
	return apiErr
}
