package jwt

import (
	"errors"
	"strings"
)

// Clases de falla del verificador. Todas terminan en 401 en el borde HTTP.
var (
	ErrMissingToken     = errors.New("missing_token")
	ErrMalformedToken   = errors.New("malformed_token")
	ErrInvalidSignature = errors.New("invalid_signature")
	ErrTokenExpired     = errors.New("token_expired")
	ErrMissingSubject   = errors.New("missing_subject")
)

// StrategyFailure es el motivo por el que una estrategia rechazó el token.
type StrategyFailure struct {
	Strategy string
	Err      error
}

// VerificationError clasifica una falla de Verify y acumula los motivos
// de cada estrategia intentada (para diagnóstico, nunca para el cliente).
type VerificationError struct {
	Kind    error
	Reasons []StrategyFailure
}

func (e *VerificationError) Error() string {
	if len(e.Reasons) == 0 {
		return e.Kind.Error()
	}
	parts := make([]string, 0, len(e.Reasons))
	for _, r := range e.Reasons {
		parts = append(parts, r.Strategy+": "+r.Err.Error())
	}
	return e.Kind.Error() + " (" + strings.Join(parts, "; ") + ")"
}

// Unwrap permite errors.Is(err, ErrInvalidSignature) etc.
func (e *VerificationError) Unwrap() error { return e.Kind }

func fail(kind error, reasons ...StrategyFailure) *VerificationError {
	return &VerificationError{Kind: kind, Reasons: reasons}
}

// IsVerificationError reporta si err proviene del verificador.
func IsVerificationError(err error) bool {
	var ve *VerificationError
	return errors.As(err, &ve)
}
