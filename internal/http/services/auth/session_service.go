package auth

import (
	"context"
	"net/http"

	dto "github.com/dropDatabas3/wizauth/internal/http/dto/auth"
	"github.com/dropDatabas3/wizauth/internal/jwt"
	"github.com/dropDatabas3/wizauth/internal/observability/logger"
	"github.com/dropDatabas3/wizauth/internal/provider"
)

// SessionService: refresh y logout.
type SessionService interface {
	Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, p *jwt.Principal) error
}

type sessionService struct {
	provider Gateway
	minter   *TokenMinter
}

func NewSessionService(p Gateway, m *TokenMinter) SessionService {
	return &sessionService{provider: p, minter: m}
}

func (s *sessionService) Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.TokenResponse, error) {
	sess, err := s.provider.RefreshGrant(ctx, in.RefreshToken)
	if err != nil {
		return nil, err
	}
	return s.minter.FromSession(ctx, sess)
}

// Logout revoca la sesión del provider con el bearer del llamador.
// Un token local no tiene sesión upstream: no hay nada que revocar.
// Una sesión que el provider ya no reconoce (401/403/404) cuenta como cerrada.
func (s *sessionService) Logout(ctx context.Context, p *jwt.Principal) error {
	log := logger.From(ctx).With(logger.Component("auth.logout"), logger.Subject(p.SubjectID))
	if p.Source != jwt.StrategyProvider {
		log.Debug("local token, nothing to revoke upstream")
		return nil
	}

	err := s.provider.Logout(ctx, p.RawToken)
	switch {
	case err == nil:
	case provider.IsStatus(err, http.StatusUnauthorized),
		provider.IsStatus(err, http.StatusForbidden),
		provider.IsStatus(err, http.StatusNotFound):
		log.Debug("provider session already gone", logger.Err(err))
	default:
		return err
	}
	log.Info("logged out")
	return nil
}
