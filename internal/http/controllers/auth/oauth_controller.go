package auth

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	dto "github.com/dropDatabas3/wizauth/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/wizauth/internal/http/errors"
	"github.com/dropDatabas3/wizauth/internal/http/helpers"
	svc "github.com/dropDatabas3/wizauth/internal/http/services/auth"
)

// OAuthController expone el flujo OAuth delegado al provider.
type OAuthController struct {
	service svc.OAuthService
}

func NewOAuthController(service svc.OAuthService) *OAuthController {
	return &OAuthController{service: service}
}

// URL maneja GET {prefix}/auth/oauth/{provider}/url?redirect_to=&code_challenge=
func (c *OAuthController) URL(w http.ResponseWriter, r *http.Request) {
	idp := strings.ToLower(chi.URLParam(r, "provider"))
	q := r.URL.Query()
	resp, err := c.service.AuthorizeURL(r.Context(), idp, q.Get("redirect_to"), q.Get("code_challenge"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Callback maneja POST {prefix}/auth/oauth/callback
func (c *OAuthController) Callback(w http.ResponseWriter, r *http.Request) {
	var req dto.OAuthCallbackRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteErrorCtx(w, r, err)
		return
	}
	resp, err := c.service.Callback(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}
