package directus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Query descreve os parâmetros de consulta suportados pela API de itens.
type Query struct {
	Fields []string
	Sort   []string
	Filter any
	Search string
	Limit  int
	Offset int
}

// Eq monta um filtro de igualdade para um campo.
func Eq(field string, value any) map[string]any {
	return map[string]any{field: map[string]any{"_eq": value}}
}

// And combina filtros com o operador _and.
func And(filters ...any) map[string]any {
	return map[string]any{"_and": filters}
}

func (q Query) encode() (url.Values, error) {
	values := url.Values{}
	if len(q.Fields) > 0 {
		values.Set("fields", strings.Join(q.Fields, ","))
	}
	if len(q.Sort) > 0 {
		values.Set("sort", strings.Join(q.Sort, ","))
	}
	if q.Filter != nil {
		raw, err := json.Marshal(q.Filter)
		if err != nil {
			return nil, err
		}
		values.Set("filter", string(raw))
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		values.Set("offset", strconv.Itoa(q.Offset))
	}
	return values, nil
}

// ListItems consulta uma coleção e decodifica o array data em out.
func (c *Client) ListItems(ctx context.Context, collection string, q Query, out any) error {
	return c.list(ctx, "/items/"+collection, q, out)
}

// GetItem busca um item pelo id.
func (c *Client) GetItem(ctx context.Context, collection, id string, q Query, out any) error {
	values, err := q.encode()
	if err != nil {
		return err
	}
	endpoint := c.baseURL + "/items/" + collection + "/" + url.PathEscape(id)
	if encoded := values.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return c.doData(req, out)
}

// CreateItem cria um item na coleção.
func (c *Client) CreateItem(ctx context.Context, collection string, payload, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+"/items/"+collection, payload)
	if err != nil {
		return err
	}
	return c.doData(req, out)
}

// UpdateItem aplica um patch parcial a um item.
func (c *Client) UpdateItem(ctx context.Context, collection, id string, payload, out any) error {
	endpoint := c.baseURL + "/items/" + collection + "/" + url.PathEscape(id)
	req, err := c.newRequest(ctx, http.MethodPatch, endpoint, payload)
	if err != nil {
		return err
	}
	return c.doData(req, out)
}

// DeleteItem remove um item da coleção.
func (c *Client) DeleteItem(ctx context.Context, collection, id string) error {
	endpoint := c.baseURL + "/items/" + collection + "/" + url.PathEscape(id)
	req, err := c.newRequest(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// ListRoles consulta a coleção de sistema de papéis.
func (c *Client) ListRoles(ctx context.Context, q Query, out any) error {
	return c.list(ctx, "/roles", q, out)
}

// ListUsers consulta a coleção de sistema de usuários.
func (c *Client) ListUsers(ctx context.Context, q Query, out any) error {
	return c.list(ctx, "/users", q, out)
}

func (c *Client) list(ctx context.Context, path string, q Query, out any) error {
	values, err := q.encode()
	if err != nil {
		return err
	}
	endpoint := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return c.doData(req, out)
}

// doData decodifica o envelope {"data": ...} direto no destino.
func (c *Client) doData(req *http.Request, out any) error {
	if out == nil {
		return c.do(req, nil)
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := c.do(req, &envelope); err != nil {
		return err
	}
	if len(envelope.Data) == 0 {
		return nil
	}
	return json.Unmarshal(envelope.Data, out)
}
