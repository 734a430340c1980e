package provider

import (
	"context"
	"net/http"
	"net/url"
)

// Data API (PostgREST) sobre /rest/v1/<table>.

const restPrefix = "/rest/v1/"

// Eq arma un filtro PostgREST col=eq.value.
func Eq(col, value string) url.Values {
	return url.Values{col: {"eq." + value}}
}

// Select hace GET con filtros y decodifica el array de filas en out.
func (c *Client) Select(ctx context.Context, table string, filters url.Values, bearer string, out any) error {
	q := url.Values{"select": {"*"}}
	for k, vs := range filters {
		q[k] = vs
	}
	return c.doJSON(ctx, Request{Method: http.MethodGet, Path: restPrefix + table, Query: q, Bearer: bearer}, out)
}

// Insert crea una fila; si ya existe (unique) el provider la ignora y
// devuelve un array vacío.
func (c *Client) Insert(ctx context.Context, table string, row any, bearer string, out any) error {
	return c.doJSON(ctx, Request{
		Method: http.MethodPost,
		Path:   restPrefix + table,
		Body:   row,
		Bearer: bearer,
		Header: http.Header{"Prefer": {"resolution=ignore-duplicates,return=representation"}},
	}, out)
}

// Patch actualiza las filas que matchean filters y devuelve la representación.
func (c *Client) Patch(ctx context.Context, table string, filters url.Values, patch any, bearer string, out any) error {
	return c.doJSON(ctx, Request{
		Method: http.MethodPatch,
		Path:   restPrefix + table,
		Query:  filters,
		Body:   patch,
		Bearer: bearer,
		Header: http.Header{"Prefer": {"return=representation"}},
	}, out)
}
