package auth

import (
	"errors"

	httperrors "github.com/dropDatabas3/wizauth/internal/http/errors"
)

// Errores de dominio; ToAppError los traduce al catálogo HTTP.
var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrInvalidProvider    = errors.New("auth: invalid oauth provider")
	ErrInvalidRedirect    = errors.New("auth: invalid redirect")
)

// ToAppError mapea errores de este paquete; el resto pasa por FromError.
func ToAppError(err error) *httperrors.AppError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return httperrors.ErrInvalidCredentials.WithCause(err)
	case errors.Is(err, ErrInvalidProvider):
		return httperrors.ErrBadRequest.WithDetail("Unsupported OAuth provider").WithCause(err)
	case errors.Is(err, ErrInvalidRedirect):
		return httperrors.ErrBadRequest.WithDetail("redirect_to must be an absolute http(s) URL").WithCause(err)
	case errors.Is(err, ErrNoIdentity):
		return httperrors.ErrProviderUnavailable.WithDetail("Identity provider returned no session").WithCause(err)
	default:
		return httperrors.FromError(err)
	}
}
