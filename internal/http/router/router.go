// Package router arma el árbol de rutas chi y los middleware chains de cada grupo.
package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	authctrl "github.com/dropDatabas3/wizauth/internal/http/controllers/auth"
	debugctrl "github.com/dropDatabas3/wizauth/internal/http/controllers/debug"
	healthctrl "github.com/dropDatabas3/wizauth/internal/http/controllers/health"
	socialctrl "github.com/dropDatabas3/wizauth/internal/http/controllers/social"
	usersctrl "github.com/dropDatabas3/wizauth/internal/http/controllers/users"
	httperrors "github.com/dropDatabas3/wizauth/internal/http/errors"
	mw "github.com/dropDatabas3/wizauth/internal/http/middlewares"
	"github.com/dropDatabas3/wizauth/internal/jwt"
	"github.com/dropDatabas3/wizauth/internal/rate"
)

// DefaultWildcardOrigins se agregan siempre a la lista de CORS (previews de deploy).
var DefaultWildcardOrigins = []string{"https://*.vercel.app", "https://*.now.sh"}

// Deps contiene todo lo que necesita el router.
type Deps struct {
	// Prefix de la API, ej: /api/v1
	Prefix      string
	CORSOrigins []string
	Verifier    *jwt.Verifier
	// RateLimiter opcional: nil deshabilita el límite en /auth y /social.
	RateLimiter rate.Limiter

	Auth   *authctrl.Controllers
	Social *socialctrl.Controllers
	Users  *usersctrl.Controllers
	Health *healthctrl.Controllers
	// Debug opcional: sólo se monta si no es nil.
	Debug *debugctrl.TokenController

	Metrics http.Handler
}

// New construye el handler raíz.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	// Orden: recover primero para cubrir todo; request id antes del logger.
	r.Use(mw.Stack(
		mw.WithRecover(),
		mw.WithRequestID(),
		mw.WithMetrics(),
		mw.WithLogging(),
		mw.WithSecurityHeaders(),
	)...)
	r.Use(cors.Handler(corsOptions(d.CORSOrigins)))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	registerHealthRoutes(r, d)

	prefix := "/" + strings.Trim(d.Prefix, "/")
	r.Route(prefix, func(api chi.Router) {
		api.Get("/health", d.Health.Health.Health)
		registerAuthRoutes(api, d)
		registerSocialRoutes(api, d)
		registerUsersRoutes(api, d)
		if d.Debug != nil {
			api.With(mw.WithNoStore()).Get("/debug/token", d.Debug.Inspect)
		}
	})
	return r
}

// corsOptions: "*" refleja cualquier Origin (compatible con credenciales);
// el resto se compara exacto o con un comodín de subdominio.
func corsOptions(origins []string) cors.Options {
	opts := cors.Options{
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-Error-Code", "Retry-After", "WWW-Authenticate"},
		AllowCredentials: true,
		MaxAge:           600,
	}

	allowed := make([]string, 0, len(origins)+len(DefaultWildcardOrigins))
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			opts.AllowOriginFunc = func(*http.Request, string) bool { return true }
			return opts
		}
		if o != "" {
			allowed = append(allowed, o)
		}
	}
	opts.AllowedOrigins = append(allowed, DefaultWildcardOrigins...)
	return opts
}
