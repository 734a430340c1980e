package provider

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID        string  `json:"id"`
	FirstName *string `json:"first_name"`
}

func TestRest_SelectInsertPatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/profiles", r.URL.Path)
		assert.Equal(t, "Bearer caller", r.Header.Get("Authorization"))
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "*", r.URL.Query().Get("select"))
			assert.Equal(t, "eq.u-1", r.URL.Query().Get("id"))
			_, _ = io.WriteString(w, `[{"id":"u-1","first_name":"Ana"}]`)
		case http.MethodPost:
			assert.Equal(t, "resolution=ignore-duplicates,return=representation", r.Header.Get("Prefer"))
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `[]`)
		case http.MethodPatch:
			assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
			assert.Equal(t, "eq.u-1", r.URL.Query().Get("id"))
			_, _ = io.WriteString(w, `[{"id":"u-1","first_name":"Ana María"}]`)
		}
	})
	ctx := context.Background()

	var rows []row
	require.NoError(t, c.Select(ctx, "profiles", Eq("id", "u-1"), "caller", &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana", *rows[0].FirstName)

	var inserted []row
	require.NoError(t, c.Insert(ctx, "profiles", row{ID: "u-1"}, "caller", &inserted))
	assert.Empty(t, inserted)

	var patched []row
	require.NoError(t, c.Patch(ctx, "profiles", Eq("id", "u-1"), map[string]any{"first_name": "Ana María"}, "caller", &patched))
	assert.Equal(t, "Ana María", *patched[0].FirstName)
}
