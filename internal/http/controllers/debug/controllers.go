// Package debug expone la inspección de tokens sin confianza. Sólo se monta
// con auth.debug_inspect habilitado y nunca autentica a nadie.
package debug

import (
	"net/http"

	httperrors "github.com/dropDatabas3/wizauth/internal/http/errors"
	"github.com/dropDatabas3/wizauth/internal/http/helpers"
	"github.com/dropDatabas3/wizauth/internal/jwt"
	"github.com/dropDatabas3/wizauth/internal/observability/logger"
)

// Inspector es lo que usa el controller. Lo implementa *jwt.Verifier.
type Inspector interface {
	Inspect(rawHeader string) (*jwt.Inspection, error)
}

type TokenController struct {
	inspector Inspector
}

func NewTokenController(i Inspector) *TokenController {
	return &TokenController{inspector: i}
}

// Inspect maneja GET {prefix}/debug/token. El token viene en Authorization
// o en ?token=.
func (c *TokenController) Inspect(w http.ResponseWriter, r *http.Request) {
	raw := helpers.BearerFrom(r)
	if raw == "" {
		raw = r.URL.Query().Get("token")
	}

	out, err := c.inspector.Inspect(raw)
	if err != nil {
		httperrors.WriteErrorCtx(w, r, err)
		return
	}
	logger.From(r.Context()).Warn("token inspected",
		logger.Bool("verified", out.Verified),
		logger.TokenFingerprint(raw),
	)
	helpers.WriteJSON(w, http.StatusOK, out)
}
