package auth

import (
	"context"

	dto "github.com/dropDatabas3/wizauth/internal/http/dto/auth"
	"github.com/dropDatabas3/wizauth/internal/observability/logger"
	"github.com/dropDatabas3/wizauth/internal/profile"
	"github.com/dropDatabas3/wizauth/internal/provider"
)

// SignUpService da de alta usuarios en el provider.
type SignUpService interface {
	SignUp(ctx context.Context, in dto.SignUpRequest) (*dto.SignUpResponse, error)
}

type signUpService struct {
	provider Gateway
	profiles ProfileWriter
}

func NewSignUpService(p Gateway, profiles ProfileWriter) SignUpService {
	return &signUpService{provider: p, profiles: profiles}
}

const signUpMessage = "User created successfully. Please check your email to confirm your account."

func (s *signUpService) SignUp(ctx context.Context, in dto.SignUpRequest) (*dto.SignUpResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.signup"),
	)

	meta := map[string]any{
		"first_name": in.FirstName,
		"last_name":  in.LastName,
	}
	if in.PhoneNumber != nil {
		meta["phone_number"] = *in.PhoneNumber
	}

	res, err := s.provider.SignUp(ctx, provider.SignUpInput{
		Email:    in.Email,
		Password: in.Password,
		Metadata: meta,
	})
	if err != nil {
		return nil, err
	}
	if res.User == nil || res.User.ID == "" {
		return nil, ErrNoIdentity
	}
	log.Info("user signed up", logger.Subject(res.User.ID), logger.Email(in.Email))

	// Con sesión (confirmación deshabilitada) ya hay bearer para escribir el
	// perfil. Sin sesión se crea perezosamente en el primer /users/me.
	if s.profiles != nil && res.Session != nil && res.Session.AccessToken != "" {
		patch := profile.Patch{FirstName: &in.FirstName, LastName: &in.LastName, PhoneNumber: in.PhoneNumber}
		if _, err := s.profiles.Update(ctx, res.User.ID, patch, res.Session.AccessToken); err != nil {
			log.Warn("profile seed failed", logger.Subject(res.User.ID), logger.Err(err))
		}
	}

	return &dto.SignUpResponse{Message: signUpMessage, User: res.User}, nil
}
