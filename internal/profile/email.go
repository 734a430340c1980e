package profile

import (
	"context"

	"github.com/dropDatabas3/wizauth/internal/jwt"
	"github.com/dropDatabas3/wizauth/internal/observability/logger"
	"github.com/dropDatabas3/wizauth/internal/provider"
)

// Orígenes posibles de un email resuelto.
const (
	EmailFromClaim    = "claim"
	EmailFromProvider = "provider"
	EmailFromAdmin    = "admin"
)

// EmailResult: Known=false es el "desconocido" explícito. Nunca se inventa
// una dirección; el borde HTTP lo renderiza como null.
type EmailResult struct {
	Email  string
	Known  bool
	Source string
}

// Unknown es el resultado cuando ninguna fuente tiene el email.
var Unknown = EmailResult{}

// Ptr devuelve nil para Unknown (JSON null).
func (r EmailResult) Ptr() *string {
	if !r.Known {
		return nil
	}
	e := r.Email
	return &e
}

// IdentityLookup es lo que el resolver necesita del gateway.
type IdentityLookup interface {
	GetUser(ctx context.Context, bearer string) (*provider.User, error)
	AdminGetUser(ctx context.Context, id string) (*provider.User, error)
}

// EmailResolver resuelve el email del llamador en orden: claim verificado,
// "who am I" del provider con el bearer, lookup admin por id.
type EmailResolver struct {
	lookup IdentityLookup
}

func NewEmailResolver(lookup IdentityLookup) *EmailResolver {
	return &EmailResolver{lookup: lookup}
}

// Resolve nunca falla: los errores de cada fuente sólo se loguean.
func (r *EmailResolver) Resolve(ctx context.Context, p *jwt.Principal) EmailResult {
	if p == nil {
		return Unknown
	}
	if p.Email != "" {
		return EmailResult{Email: p.Email, Known: true, Source: EmailFromClaim}
	}
	u, source := r.Identity(ctx, p)
	if u != nil && u.Email != "" {
		return EmailResult{Email: u.Email, Known: true, Source: source}
	}
	return Unknown
}

// Identity busca la identidad del llamador en el provider. Un token local
// no lo entiende el provider, así que va directo al lookup admin.
func (r *EmailResolver) Identity(ctx context.Context, p *jwt.Principal) (*provider.User, string) {
	if r.lookup == nil {
		return nil, ""
	}
	log := logger.From(ctx).With(logger.Component("email_resolver"), logger.Subject(p.SubjectID))

	if p.Source != jwt.StrategyLocal && p.RawToken != "" {
		u, err := r.lookup.GetUser(ctx, p.RawToken)
		if err == nil && u != nil {
			return u, EmailFromProvider
		}
		log.Debug("who-am-i lookup failed", logger.Err(err))
		if ctx.Err() != nil {
			return nil, ""
		}
	}

	u, err := r.lookup.AdminGetUser(ctx, p.SubjectID)
	if err == nil && u != nil {
		return u, EmailFromAdmin
	}
	log.Debug("admin lookup failed", logger.Err(err))
	return nil, ""
}
