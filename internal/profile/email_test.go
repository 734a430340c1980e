package profile

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/wizauth/internal/jwt"
	"github.com/dropDatabas3/wizauth/internal/provider"
)

type fakeLookup struct {
	whoami    *provider.User
	whoamiErr error
	admin     *provider.User
	adminErr  error
	calls     []string
}

func (f *fakeLookup) GetUser(_ context.Context, bearer string) (*provider.User, error) {
	f.calls = append(f.calls, "whoami:"+bearer)
	return f.whoami, f.whoamiErr
}

func (f *fakeLookup) AdminGetUser(_ context.Context, id string) (*provider.User, error) {
	f.calls = append(f.calls, "admin:"+id)
	return f.admin, f.adminErr
}

func TestEmailResolver_Chain(t *testing.T) {
	ctx := context.Background()
	prov := &jwt.Principal{SubjectID: "u-1", RawToken: "tok", Source: jwt.StrategyProvider}

	t.Run("claim wins without lookups", func(t *testing.T) {
		f := &fakeLookup{}
		p := *prov
		p.Email = "claim@example.com"
		res := NewEmailResolver(f).Resolve(ctx, &p)
		assert.Equal(t, EmailResult{Email: "claim@example.com", Known: true, Source: EmailFromClaim}, res)
		assert.Empty(t, f.calls)
	})

	t.Run("who am i", func(t *testing.T) {
		f := &fakeLookup{whoami: &provider.User{ID: "u-1", Email: "me@example.com"}}
		res := NewEmailResolver(f).Resolve(ctx, prov)
		assert.Equal(t, "me@example.com", res.Email)
		assert.Equal(t, EmailFromProvider, res.Source)
		assert.Equal(t, []string{"whoami:tok"}, f.calls)
	})

	t.Run("admin fallback", func(t *testing.T) {
		f := &fakeLookup{
			whoamiErr: &provider.ProviderError{Status: 401, Message: "invalid JWT"},
			admin:     &provider.User{ID: "u-1", Email: "adm@example.com"},
		}
		res := NewEmailResolver(f).Resolve(ctx, prov)
		assert.Equal(t, EmailFromAdmin, res.Source)
		assert.Equal(t, []string{"whoami:tok", "admin:u-1"}, f.calls)
	})

	t.Run("local token skips who am i", func(t *testing.T) {
		f := &fakeLookup{admin: &provider.User{ID: "u-1", Email: "adm@example.com"}}
		local := &jwt.Principal{SubjectID: "u-1", RawToken: "tok", Source: jwt.StrategyLocal}
		res := NewEmailResolver(f).Resolve(ctx, local)
		assert.True(t, res.Known)
		assert.Equal(t, []string{"admin:u-1"}, f.calls)
	})

	t.Run("unknown is explicit", func(t *testing.T) {
		f := &fakeLookup{whoamiErr: errors.New("x"), adminErr: errors.New("y")}
		res := NewEmailResolver(f).Resolve(ctx, prov)
		assert.Equal(t, Unknown, res)
		assert.Nil(t, res.Ptr())

		// usuario sin email (ej: alta por teléfono)
		f = &fakeLookup{whoami: &provider.User{ID: "u-1", Phone: "+54"}}
		assert.False(t, NewEmailResolver(f).Resolve(ctx, prov).Known)
		assert.False(t, NewEmailResolver(nil).Resolve(ctx, prov).Known)
	})
}

func TestMe_MergesIdentityAndProfile(t *testing.T) {
	confirmed := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	f := &fakeLookup{whoami: &provider.User{
		ID: "u-1", Email: "me@example.com", Role: "authenticated", EmailConfirmedAt: &confirmed,
	}}
	st := newMemStore()
	svc := NewService(st, NewEmailResolver(f))
	p := &jwt.Principal{SubjectID: "u-1", RawToken: "tok", Source: jwt.StrategyProvider}
	_, err := svc.Update(context.Background(), "u-1", Patch{FirstName: str("Ana")}, "tok")
	require.NoError(t, err)

	me, err := svc.Me(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "u-1", me.ID)
	require.NotNil(t, me.Email)
	assert.Equal(t, "me@example.com", *me.Email)
	assert.True(t, me.IsVerified)
	assert.Equal(t, "authenticated", me.Role)
	assert.Equal(t, "Ana", *me.FirstName)
}

func TestMe_UnknownEmailRendersNull(t *testing.T) {
	f := &fakeLookup{whoamiErr: errors.New("down"), adminErr: errors.New("down")}
	svc := NewService(newMemStore(), NewEmailResolver(f))
	me, err := svc.Me(context.Background(), &jwt.Principal{SubjectID: "u-1", RawToken: "tok", Source: jwt.StrategyProvider})
	require.NoError(t, err)

	raw, err := json.Marshal(me)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	v, present := m["email"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestMe_ProfileErrorPropagates(t *testing.T) {
	st := newMemStore()
	st.getErr = errors.New("rest down")
	svc := NewService(st, NewEmailResolver(&fakeLookup{}))
	_, err := svc.Me(context.Background(), &jwt.Principal{SubjectID: "u-1"})
	assert.EqualError(t, err, "rest down")
}

func TestBearerFor(t *testing.T) {
	assert.Equal(t, "tok", BearerFor(&jwt.Principal{RawToken: "tok", Source: jwt.StrategyProvider}))
	assert.Empty(t, BearerFor(&jwt.Principal{RawToken: "tok", Source: jwt.StrategyLocal}))
	assert.Empty(t, BearerFor(nil))
}
