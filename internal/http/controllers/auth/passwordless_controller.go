package auth

import (
	"net/http"

	dto "github.com/dropDatabas3/wizauth/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/wizauth/internal/http/errors"
	"github.com/dropDatabas3/wizauth/internal/http/helpers"
	svc "github.com/dropDatabas3/wizauth/internal/http/services/auth"
)

// PasswordlessController: magic link y OTP por SMS.
type PasswordlessController struct {
	service svc.PasswordlessService
}

func NewPasswordlessController(service svc.PasswordlessService) *PasswordlessController {
	return &PasswordlessController{service: service}
}

// MagicLink maneja POST {prefix}/auth/magic-link
func (c *PasswordlessController) MagicLink(w http.ResponseWriter, r *http.Request) {
	var req dto.MagicLinkRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteErrorCtx(w, r, err)
		return
	}
	if err := c.service.MagicLink(r.Context(), req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.WriteMessage(w, http.StatusOK, "Magic link sent to your email")
}

// PhoneLogin maneja POST {prefix}/auth/phone/login
func (c *PasswordlessController) PhoneLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.PhoneLoginRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteErrorCtx(w, r, err)
		return
	}
	if err := c.service.PhoneLogin(r.Context(), req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.WriteMessage(w, http.StatusOK, "OTP sent to your phone")
}

// PhoneVerify maneja POST {prefix}/auth/phone/verify
func (c *PasswordlessController) PhoneVerify(w http.ResponseWriter, r *http.Request) {
	var req dto.PhoneVerifyRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteErrorCtx(w, r, err)
		return
	}
	resp, err := c.service.PhoneVerify(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}
