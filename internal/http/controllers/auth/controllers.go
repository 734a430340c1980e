// Package auth contiene los controllers de autenticación.
package auth

import (
	"net/http"

	httperrors "github.com/dropDatabas3/wizauth/internal/http/errors"
	svc "github.com/dropDatabas3/wizauth/internal/http/services/auth"
)

// Controllers agrupa todos los controllers del dominio auth.
type Controllers struct {
	SignUp   *SignUpController
	Login    *LoginController
	Passless *PasswordlessController
	Password *PasswordController
	Session  *SessionController
	OAuth    *OAuthController
}

// NewControllers crea el agregador de controllers auth.
func NewControllers(s svc.Services) *Controllers {
	return &Controllers{
		SignUp:   NewSignUpController(s.SignUp),
		Login:    NewLoginController(s.Login),
		Passless: NewPasswordlessController(s.Passless),
		Password: NewPasswordController(s.Password),
		Session:  NewSessionController(s.Session),
		OAuth:    NewOAuthController(s.OAuth),
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	httperrors.WriteErrorCtx(w, r, svc.ToAppError(err))
}
