package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/wizauth/internal/jwt"
	"github.com/dropDatabas3/wizauth/internal/rate"
)

const secret = "local-secret-0123456789abcdef0123"

func verifier(t *testing.T) (*jwt.Verifier, *jwt.Issuer) {
	t.Helper()
	strategies, err := jwt.DefaultStrategies(jwt.StrategyConfig{LocalSecret: secret})
	require.NoError(t, err)
	v, err := jwt.NewVerifier(strategies)
	require.NoError(t, err)
	iss, err := jwt.NewIssuer(secret, "HS256", time.Minute)
	require.NoError(t, err)
	return v, iss
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	p := GetPrincipal(r.Context())
	if p != nil {
		_, _ = w.Write([]byte(p.SubjectID))
		return
	}
	_, _ = w.Write([]byte("anon"))
})

func TestChain_Order(t *testing.T) {
	var order []string
	mk := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(okHandler, mk("a"), mk("b"), mk("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestRequireAuth(t *testing.T) {
	v, iss := verifier(t)
	h := Chain(okHandler, RequireAuth(v))

	tok, _, err := iss.Issue("user-123", time.Minute)
	require.NoError(t, err)

	for _, header := range []string{"Bearer " + tok, tok} {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		r.Header.Set("Authorization", header)
		h.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-123", rec.Body.String())
	}

	for _, header := range []string{"", "Bearer not.a.validtoken", "Bearer " + tok + "x"} {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		h.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body, "detail")
	}
}

func TestRateKeys(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	r.RemoteAddr = "10.0.0.7:5555"
	assert.Equal(t, "10.0.0.7", IPOnlyRateKey(r))
	assert.Equal(t, "10.0.0.7|/api/v1/auth/login", IPPathRateKey(r))
}

func TestWithRateLimit_429(t *testing.T) {
	h := Chain(okHandler, WithRateLimit(RateLimitConfig{
		Limiter: rate.NewMemoryLimiter(2, time.Minute),
		Scope:   "auth",
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		r.RemoteAddr = "10.0.0.1:5555"
		h.ServeHTTP(rec, r)
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, rec.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	// otra IP no comparte cuota
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	r.Header.Set("X-Forwarded-For", "10.0.0.2, 172.16.0.1")
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWithRequestID(t *testing.T) {
	var seen string
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}), WithRequestID())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, "abc-123", seen)
}

func TestWithRecover(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), WithRecover(), WithLogging())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"Internal server error"}`, rec.Body.String())
}

func TestHeaders(t *testing.T) {
	h := Chain(okHandler, WithSecurityHeaders(), WithNoStore())
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}
