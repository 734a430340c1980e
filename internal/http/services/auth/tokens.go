package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	dto "github.com/dropDatabas3/wizauth/internal/http/dto/auth"
	"github.com/dropDatabas3/wizauth/internal/jwt"
	"github.com/dropDatabas3/wizauth/internal/metrics"
	"github.com/dropDatabas3/wizauth/internal/observability/logger"
	"github.com/dropDatabas3/wizauth/internal/provider"
)

// Modos de emisión.
const (
	ModeLocal       = "local"
	ModePassthrough = "passthrough"
)

// ErrNoIdentity: el provider respondió 2xx sin usuario o sin token.
var ErrNoIdentity = errors.New("auth: provider session without identity")

// TokenMinter convierte una sesión del provider en la respuesta de token.
// En modo local firma un token propio (sub = id del provider); en modo
// passthrough devuelve el access token del provider tal cual.
type TokenMinter struct {
	issuer *jwt.Issuer
	mode   string
	ttl    time.Duration
}

func NewTokenMinter(issuer *jwt.Issuer, mode string, ttl time.Duration) *TokenMinter {
	if mode == "" {
		mode = ModeLocal
	}
	return &TokenMinter{issuer: issuer, mode: mode, ttl: ttl}
}

// Mode devuelve el modo efectivo.
func (m *TokenMinter) Mode() string { return m.mode }

// FromSession emite la respuesta para una sesión ya autenticada.
func (m *TokenMinter) FromSession(ctx context.Context, sess *provider.Session) (*dto.TokenResponse, error) {
	if sess == nil || sess.User == nil || sess.User.ID == "" {
		return nil, ErrNoIdentity
	}

	resp := &dto.TokenResponse{
		TokenType:    "bearer",
		RefreshToken: sess.RefreshToken,
		User:         dto.NewUserSummary(sess.User),
	}

	switch m.mode {
	case ModePassthrough:
		if sess.AccessToken == "" {
			return nil, ErrNoIdentity
		}
		resp.AccessToken = sess.AccessToken
		resp.ExpiresIn = int64(sess.ExpiresIn)

	case ModeLocal:
		if m.issuer == nil {
			return nil, errors.New("auth: local token mode without issuer")
		}
		var extra map[string]any
		if sess.User.Email != "" {
			extra = map[string]any{"email": sess.User.Email}
		}
		tok, _, err := m.issuer.IssueWithClaims(sess.User.ID, m.ttl, extra)
		if err != nil {
			return nil, fmt.Errorf("auth: issue local token: %w", err)
		}
		resp.AccessToken = tok
		resp.ExpiresIn = int64(m.effectiveTTL() / time.Second)

	default:
		return nil, fmt.Errorf("auth: unknown token mode %q", m.mode)
	}

	metrics.TokensIssued.WithLabelValues(m.mode).Inc()
	logger.From(ctx).Debug("token issued",
		logger.Subject(sess.User.ID),
		logger.String("mode", m.mode),
		logger.TokenFingerprint(resp.AccessToken),
	)
	return resp, nil
}

func (m *TokenMinter) effectiveTTL() time.Duration {
	if m.ttl > 0 {
		return m.ttl
	}
	return m.issuer.AccessTTL
}
