package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dropDatabas3/wizauth/internal/jwt"
	"github.com/dropDatabas3/wizauth/internal/provider"
)

// FieldError es una entrada del detail de un 422.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Msg   string `json:"msg"`
}

// FromError traduce errores de otras capas a AppError:
//
//	*jwt.VerificationError     -> 401 según el tipo de falla
//	*provider.ProviderError    -> status del provider si es 400..409, si no 502
//	*provider.NetworkError     -> 500
//	validator.ValidationErrors -> 422 con la lista de campos
//	cualquier otro             -> 500 con el mensaje
func FromError(err error) *AppError {
	if err == nil {
		return ErrInternalServerError
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	var ve *jwt.VerificationError
	if stderrors.As(err, &ve) {
		return fromVerification(ve)
	}

	var pe *provider.ProviderError
	if stderrors.As(err, &pe) {
		if pe.Status >= http.StatusBadRequest && pe.Status <= http.StatusConflict {
			return New(pe.Status, "PROVIDER_REJECTED", pe.Message).WithCause(err)
		}
		return ErrProviderUnavailable.WithDetail(pe.Message).WithCause(err)
	}

	var ne *provider.NetworkError
	if stderrors.As(err, &ne) {
		return ErrProviderUnreachable.WithCause(err)
	}

	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		return ErrValidation.WithDetail(FieldErrors(verrs)).WithCause(err)
	}

	return ErrInternalServerError.WithDetail(err.Error()).WithCause(err)
}

func fromVerification(ve *jwt.VerificationError) *AppError {
	switch {
	case stderrors.Is(ve.Kind, jwt.ErrMissingToken):
		return ErrTokenMissing.WithCause(ve)
	case stderrors.Is(ve.Kind, jwt.ErrMalformedToken):
		return ErrTokenMalformed.WithCause(ve)
	case stderrors.Is(ve.Kind, jwt.ErrTokenExpired):
		return ErrTokenExpired.WithCause(ve)
	case stderrors.Is(ve.Kind, jwt.ErrMissingSubject):
		return ErrTokenNoSubject.WithCause(ve)
	default:
		return ErrTokenInvalid.WithCause(ve)
	}
}

// FieldErrors convierte los errores del validator a la forma del detail.
func FieldErrors(verrs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Msg:   ruleMessage(fe),
		})
	}
	return out
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "url":
		return "value is not a valid URL"
	case "min":
		return "ensure this value has at least " + fe.Param() + " characters"
	case "max":
		return "ensure this value has at most " + fe.Param() + " characters"
	case "e164":
		return "value is not a valid E.164 phone number"
	default:
		return "invalid value"
	}
}
