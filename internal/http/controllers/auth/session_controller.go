package auth

import (
	"net/http"

	dto "github.com/dropDatabas3/wizauth/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/wizauth/internal/http/errors"
	"github.com/dropDatabas3/wizauth/internal/http/helpers"
	mw "github.com/dropDatabas3/wizauth/internal/http/middlewares"
	svc "github.com/dropDatabas3/wizauth/internal/http/services/auth"
)

// SessionController: refresh y logout.
type SessionController struct {
	service svc.SessionService
}

func NewSessionController(service svc.SessionService) *SessionController {
	return &SessionController{service: service}
}

// Refresh maneja POST {prefix}/auth/refresh
func (c *SessionController) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteErrorCtx(w, r, err)
		return
	}
	resp, err := c.service.Refresh(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Logout maneja POST {prefix}/auth/logout. Requiere RequireAuth.
func (c *SessionController) Logout(w http.ResponseWriter, r *http.Request) {
	p := mw.MustGetPrincipal(r.Context())
	if err := c.service.Logout(r.Context(), p); err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.WriteMessage(w, http.StatusOK, "Successfully logged out")
}
