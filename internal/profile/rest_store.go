package profile

import (
	"context"
	"net/url"
	"time"

	"github.com/dropDatabas3/wizauth/internal/provider"
)

// RESTClient es el subconjunto del gateway que usa RESTStore.
type RESTClient interface {
	Select(ctx context.Context, table string, filters url.Values, bearer string, out any) error
	Insert(ctx context.Context, table string, row any, bearer string, out any) error
	Patch(ctx context.Context, table string, filters url.Values, patch any, bearer string, out any) error
}

// RESTStore guarda perfiles en la tabla del provider vía /rest/v1.
type RESTStore struct {
	client RESTClient
	table  string
}

func NewRESTStore(client RESTClient, table string) *RESTStore {
	if table == "" {
		table = "profiles"
	}
	return &RESTStore{client: client, table: table}
}

func (s *RESTStore) Get(ctx context.Context, id, bearer string) (*Profile, error) {
	var rows []Profile
	if err := s.client.Select(ctx, s.table, provider.Eq("id", id), bearer, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (s *RESTStore) Create(ctx context.Context, p Profile, bearer string) error {
	var rows []Profile
	return s.client.Insert(ctx, s.table, p, bearer, &rows)
}

func (s *RESTStore) Update(ctx context.Context, id string, patch Patch, at time.Time, bearer string) error {
	cols, vals := patch.columns()
	body := make(map[string]any, len(cols)+1)
	for i, c := range cols {
		body[c] = vals[i]
	}
	body["updated_at"] = at
	var rows []Profile
	return s.client.Patch(ctx, s.table, provider.Eq("id", id), body, bearer, &rows)
}
