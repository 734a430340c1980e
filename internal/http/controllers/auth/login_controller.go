package auth

import (
	"net/http"

	dto "github.com/dropDatabas3/wizauth/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/wizauth/internal/http/errors"
	"github.com/dropDatabas3/wizauth/internal/http/helpers"
	svc "github.com/dropDatabas3/wizauth/internal/http/services/auth"
	"github.com/dropDatabas3/wizauth/internal/observability/logger"
)

// LoginController maneja el endpoint de login.
type LoginController struct {
	service svc.LoginService
}

// NewLoginController crea un nuevo controller de login.
func NewLoginController(service svc.LoginService) *LoginController {
	return &LoginController{service: service}
}

// Login maneja POST {prefix}/auth/login
//
// Acepta el formulario OAuth2 password (username/password) o JSON
// (email/password).
func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LoginController.Login"))

	var req dto.LoginRequest
	if helpers.IsForm(r) {
		form, err := helpers.ReadForm(w, r)
		if err != nil {
			httperrors.WriteErrorCtx(w, r, err)
			return
		}
		req.Email = form.Get("username")
		req.Password = form.Get("password")
		if err := helpers.Validate(&req); err != nil {
			httperrors.WriteErrorCtx(w, r, err)
			return
		}
	} else if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteErrorCtx(w, r, err)
		return
	}

	resp, err := c.service.LoginPassword(ctx, req)
	if err != nil {
		log.Debug("login failed", logger.Err(err))
		writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}
