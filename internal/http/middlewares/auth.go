package middlewares

import (
	"errors"
	"net/http"

	httperrors "github.com/dropDatabas3/wizauth/internal/http/errors"
	"github.com/dropDatabas3/wizauth/internal/jwt"
	"github.com/dropDatabas3/wizauth/internal/metrics"
	"github.com/dropDatabas3/wizauth/internal/observability/logger"
)

// =================================================================================
// AUTHENTICATION MIDDLEWARES
// =================================================================================

// RequireAuth verifica el header Authorization con el verifier y guarda el
// Principal en el contexto. Cualquier falla responde 401 con WWW-Authenticate.
func RequireAuth(v *jwt.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			p, err := v.Verify(raw)
			if err != nil {
				logVerifyFailure(r, raw, err)
				httperrors.WriteError(w, err)
				return
			}
			metrics.TokenVerifications.WithLabelValues("ok", p.Source).Inc()

			ctx := WithPrincipal(r.Context(), p)
			ctx = logger.ToContext(ctx, logger.From(ctx).With(logger.Subject(p.SubjectID), logger.Strategy(p.Source)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// logVerifyFailure deja los motivos por estrategia en debug. Nunca el token:
// sólo su fingerprint.
func logVerifyFailure(r *http.Request, raw string, err error) {
	kind := "unknown"
	log := logger.From(r.Context())
	var ve *jwt.VerificationError
	if errors.As(err, &ve) {
		kind = ve.Kind.Error()
		for _, reason := range ve.Reasons {
			log.Debug("token strategy rejected",
				logger.Strategy(reason.Strategy),
				logger.Err(reason.Err),
				logger.TokenFingerprint(raw),
			)
		}
	}
	metrics.TokenVerifications.WithLabelValues(kind, "").Inc()
	log.Info("authentication failed", logger.String("reason", kind))
}
