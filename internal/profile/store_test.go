package profile

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	migrations "github.com/dropDatabas3/wizauth/migrations/postgres"
)

type call struct {
	op      string
	table   string
	filters url.Values
	body    any
	bearer  string
}

type fakeREST struct {
	calls []call
	rows  string
}

func (f *fakeREST) Select(_ context.Context, table string, filters url.Values, bearer string, out any) error {
	f.calls = append(f.calls, call{op: "select", table: table, filters: filters, bearer: bearer})
	return json.Unmarshal([]byte(f.rows), out)
}

func (f *fakeREST) Insert(_ context.Context, table string, row any, bearer string, out any) error {
	f.calls = append(f.calls, call{op: "insert", table: table, body: row, bearer: bearer})
	return json.Unmarshal([]byte(`[]`), out)
}

func (f *fakeREST) Patch(_ context.Context, table string, filters url.Values, patch any, bearer string, out any) error {
	f.calls = append(f.calls, call{op: "patch", table: table, filters: filters, body: patch, bearer: bearer})
	return json.Unmarshal([]byte(f.rows), out)
}

func TestRESTStore(t *testing.T) {
	f := &fakeREST{rows: `[]`}
	s := NewRESTStore(f, "")
	ctx := context.Background()

	p, err := s.Get(ctx, "u-1", "tok")
	require.NoError(t, err)
	assert.Nil(t, p)

	f.rows = `[{"id":"u-1","first_name":"Ana","last_name":null}]`
	p, err = s.Get(ctx, "u-1", "tok")
	require.NoError(t, err)
	assert.Equal(t, "Ana", *p.FirstName)
	assert.Nil(t, p.LastName)

	require.NoError(t, s.Create(ctx, Profile{ID: "u-1"}, "tok"))

	at := time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Update(ctx, "u-1", Patch{LastName: str("Gómez")}, at, "tok"))

	require.Len(t, f.calls, 4)
	assert.Equal(t, "profiles", f.calls[0].table)
	assert.Equal(t, "eq.u-1", f.calls[0].filters.Get("id"))
	assert.Equal(t, "tok", f.calls[2].bearer)

	body := f.calls[3].body.(map[string]any)
	assert.Equal(t, "Gómez", body["last_name"])
	assert.Equal(t, at, body["updated_at"])
	assert.NotContains(t, body, "first_name")
}

func TestBuildUpdate(t *testing.T) {
	at := time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)
	q, args := buildUpdate(`"profiles"`, "u-1", Patch{FirstName: str("Ana"), AvatarURL: str("x")}, at)
	assert.Equal(t, `UPDATE "profiles" SET first_name = $1, avatar_url = $2, updated_at = $3 WHERE id = $4`, q)
	assert.Equal(t, []any{"Ana", "x", at, "u-1"}, args)

	q, args = buildUpdate(`"profiles"`, "u-1", Patch{}, at)
	assert.Equal(t, `UPDATE "profiles" SET updated_at = $1 WHERE id = $2`, q)
	assert.Len(t, args, 2)
}

func TestLoadMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"m/0002_b.sql": {Data: []byte("CREATE INDEX ON {{table}} (x);")},
		"m/0001_a.sql": {Data: []byte("CREATE TABLE {{table}} (id uuid);")},
		"m/README":     {Data: []byte("ignored")},
	}
	got, err := loadMigrations(fsys, "m", `"my_profiles"`)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "0001_a.sql", got[0].name)
	assert.Equal(t, `CREATE TABLE "my_profiles" (id uuid);`, got[0].sql)
	assert.Equal(t, "0002_b.sql", got[1].name)

	embedded, err := loadMigrations(migrations.ProfilesFS, migrations.ProfilesDir, `"profiles"`)
	require.NoError(t, err)
	require.NotEmpty(t, embedded)
	assert.NotContains(t, embedded[0].sql, "{{table}}")
}
