package auth

import (
	"context"

	dto "github.com/dropDatabas3/wizauth/internal/http/dto/auth"
	"github.com/dropDatabas3/wizauth/internal/observability/logger"
	"github.com/dropDatabas3/wizauth/internal/provider"
)

// PasswordlessService cubre magic link y OTP por SMS. El envío es del provider.
type PasswordlessService interface {
	MagicLink(ctx context.Context, in dto.MagicLinkRequest) error
	PhoneLogin(ctx context.Context, in dto.PhoneLoginRequest) error
	PhoneVerify(ctx context.Context, in dto.PhoneVerifyRequest) (*dto.TokenResponse, error)
}

type passwordlessService struct {
	provider Gateway
	minter   *TokenMinter
}

func NewPasswordlessService(p Gateway, m *TokenMinter) PasswordlessService {
	return &passwordlessService{provider: p, minter: m}
}

func (s *passwordlessService) MagicLink(ctx context.Context, in dto.MagicLinkRequest) error {
	if err := s.provider.SendMagicLink(ctx, in.Email, in.RedirectTo); err != nil {
		return err
	}
	logger.From(ctx).Info("magic link requested", logger.Component("auth.passwordless"), logger.Email(in.Email))
	return nil
}

func (s *passwordlessService) PhoneLogin(ctx context.Context, in dto.PhoneLoginRequest) error {
	return s.provider.SendPhoneOTP(ctx, in.Phone)
}

func (s *passwordlessService) PhoneVerify(ctx context.Context, in dto.PhoneVerifyRequest) (*dto.TokenResponse, error) {
	sess, err := s.provider.VerifyOTP(ctx, provider.OTPVerification{
		Phone: in.Phone,
		Token: in.Token,
		Type:  "sms",
	})
	if err != nil {
		return nil, err
	}
	return s.minter.FromSession(ctx, sess)
}
