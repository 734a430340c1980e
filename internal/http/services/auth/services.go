// Package auth contiene los services de autenticación: traducen los DTOs del
// borde HTTP a llamadas al provider y emiten la respuesta de token.
package auth

import (
	"context"
	"time"

	"github.com/dropDatabas3/wizauth/internal/jwt"
	"github.com/dropDatabas3/wizauth/internal/profile"
	"github.com/dropDatabas3/wizauth/internal/provider"
)

// Gateway es el subconjunto de *provider.Client que usan los services.
type Gateway interface {
	SignUp(ctx context.Context, in provider.SignUpInput) (*provider.SignUpResult, error)
	PasswordGrant(ctx context.Context, email, password string) (*provider.Session, error)
	SendMagicLink(ctx context.Context, email, redirectTo string) error
	SendPhoneOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, in provider.OTPVerification) (*provider.Session, error)
	RequestPasswordReset(ctx context.Context, email, redirectTo string) error
	ConfirmPasswordReset(ctx context.Context, token, password string) error
	AuthorizeURL(p provider.AuthorizeParams) (string, error)
	ExchangeCode(ctx context.Context, in provider.CodeExchange) (*provider.Session, error)
	IDTokenGrant(ctx context.Context, idp, idToken, nonce string) (*provider.Session, error)
	RefreshGrant(ctx context.Context, refreshToken string) (*provider.Session, error)
	Logout(ctx context.Context, bearer string) error
}

var _ Gateway = (*provider.Client)(nil)

// ProfileWriter siembra el perfil en el alta. Lo implementa *profile.Service.
type ProfileWriter interface {
	Update(ctx context.Context, subjectID string, patch profile.Patch, bearer string) (*profile.Profile, error)
}

// Deps contiene las dependencias del dominio auth.
type Deps struct {
	Provider Gateway
	Issuer   *jwt.Issuer
	// TokenMode: local | passthrough
	TokenMode string
	// AccessTTL de los tokens locales; 0 usa el default del issuer.
	AccessTTL time.Duration
	// Profiles es opcional.
	Profiles ProfileWriter
}

// Services agrupa todos los services del dominio auth.
type Services struct {
	SignUp   SignUpService
	Login    LoginService
	Passless PasswordlessService
	Password PasswordService
	Session  SessionService
	OAuth    OAuthService
}

// NewServices crea el agregador de services auth.
func NewServices(d Deps) Services {
	minter := NewTokenMinter(d.Issuer, d.TokenMode, d.AccessTTL)
	return Services{
		SignUp:   NewSignUpService(d.Provider, d.Profiles),
		Login:    NewLoginService(d.Provider, minter),
		Passless: NewPasswordlessService(d.Provider, minter),
		Password: NewPasswordService(d.Provider),
		Session:  NewSessionService(d.Provider, minter),
		OAuth:    NewOAuthService(d.Provider, minter),
	}
}
