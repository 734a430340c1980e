package middlewares

import (
	"context"

	"github.com/dropDatabas3/wizauth/internal/jwt"
)

type ctxKey string

const (
	ctxPrincipalKey ctxKey = "principal"
	ctxRequestIDKey ctxKey = "request_id"
)

// WithPrincipal inyecta el llamador autenticado en el contexto.
func WithPrincipal(ctx context.Context, p *jwt.Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipalKey, p)
}

func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// GetPrincipal devuelve el Principal o nil si la ruta no pasó por RequireAuth.
func GetPrincipal(ctx context.Context) *jwt.Principal {
	if p, ok := ctx.Value(ctxPrincipalKey).(*jwt.Principal); ok {
		return p
	}
	return nil
}

// MustGetPrincipal hace panic si no hay Principal. Sólo para handlers montados
// detrás de RequireAuth.
func MustGetPrincipal(ctx context.Context) *jwt.Principal {
	p := GetPrincipal(ctx)
	if p == nil {
		panic("middlewares: no principal in context")
	}
	return p
}

// GetRequestID obtiene el request ID del contexto.
func GetRequestID(ctx context.Context) string {
	if s, ok := ctx.Value(ctxRequestIDKey).(string); ok {
		return s
	}
	return ""
}
