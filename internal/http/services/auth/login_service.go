package auth

import (
	"context"

	dto "github.com/dropDatabas3/wizauth/internal/http/dto/auth"
	"github.com/dropDatabas3/wizauth/internal/observability/logger"
)

// LoginService autentica con email + password.
type LoginService interface {
	LoginPassword(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error)
}

type loginService struct {
	provider Gateway
	minter   *TokenMinter
}

func NewLoginService(p Gateway, m *TokenMinter) LoginService {
	return &loginService{provider: p, minter: m}
}

func (s *loginService) LoginPassword(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.login"),
		logger.Op("LoginPassword"),
	)

	sess, err := s.provider.PasswordGrant(ctx, in.Email, in.Password)
	if err != nil {
		log.Warn("password grant failed", logger.Email(in.Email), logger.Err(err))
		return nil, err
	}
	if sess == nil {
		log.Info("invalid credentials", logger.Email(in.Email))
		return nil, ErrInvalidCredentials
	}
	return s.minter.FromSession(ctx, sess)
}
