package directus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client encapsula chamadas à API REST do Directus.
// Um Client sem token executa apenas rotas públicas (login/refresh);
// WithToken deriva clientes com escopo de usuário ou de serviço.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// New cria um cliente apontando para a instância Directus informada.
func New(baseURL string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("directus: url base obrigatória")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, errors.New("directus: url base inválida")
	}

	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
	}, nil
}

// WithToken deriva um cliente autenticado sem alterar o original.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// BaseURL devolve a URL base configurada.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AssetURL monta a URL pública de um arquivo armazenado no Directus.
func (c *Client) AssetURL(fileID string) string {
	if strings.TrimSpace(fileID) == "" {
		return ""
	}
	return c.baseURL + "/assets/" + fileID
}

// TokenGrant representa o par de tokens emitido pelo Directus.
type TokenGrant struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Expires      int64  `json:"expires"`
}

// Login autentica com e-mail e senha.
func (c *Client) Login(ctx context.Context, email, password string) (TokenGrant, error) {
	body := map[string]string{"email": email, "password": password}

	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+"/auth/login", body)
	if err != nil {
		return TokenGrant{}, err
	}

	var resp struct {
		Data TokenGrant `json:"data"`
	}
	if err := c.do(req, &resp); err != nil {
		return TokenGrant{}, err
	}
	return resp.Data, nil
}

// Refresh troca o refresh token por um novo par de tokens.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (TokenGrant, error) {
	body := map[string]string{"refresh_token": refreshToken, "mode": "json"}

	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+"/auth/refresh", body)
	if err != nil {
		return TokenGrant{}, err
	}

	var resp struct {
		Data TokenGrant `json:"data"`
	}
	if err := c.do(req, &resp); err != nil {
		return TokenGrant{}, err
	}
	return resp.Data, nil
}

// Logout revoga o refresh token junto ao provedor.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}
	body := map[string]string{"refresh_token": refreshToken}

	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+"/auth/logout", body)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body any) (*http.Request, error) {
	var req *http.Request
	var err error

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		req, err = http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, nil)
		if err != nil {
			return nil, err
		}
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, v any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if v == nil {
		return nil
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
