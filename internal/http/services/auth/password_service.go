package auth

import (
	"context"

	dto "github.com/dropDatabas3/wizauth/internal/http/dto/auth"
)

// PasswordService maneja el reset de contraseña.
type PasswordService interface {
	RequestReset(ctx context.Context, in dto.PasswordResetRequest) error
	ConfirmReset(ctx context.Context, in dto.PasswordResetConfirm) error
}

type passwordService struct {
	provider Gateway
}

func NewPasswordService(p Gateway) PasswordService {
	return &passwordService{provider: p}
}

func (s *passwordService) RequestReset(ctx context.Context, in dto.PasswordResetRequest) error {
	return s.provider.RequestPasswordReset(ctx, in.Email, in.RedirectTo)
}

func (s *passwordService) ConfirmReset(ctx context.Context, in dto.PasswordResetConfirm) error {
	return s.provider.ConfirmPasswordReset(ctx, in.Token, in.Password)
}
