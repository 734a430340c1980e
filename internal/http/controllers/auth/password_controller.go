package auth

import (
	"net/http"

	dto "github.com/dropDatabas3/wizauth/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/wizauth/internal/http/errors"
	"github.com/dropDatabas3/wizauth/internal/http/helpers"
	svc "github.com/dropDatabas3/wizauth/internal/http/services/auth"
)

// PasswordController maneja el reset de contraseña.
type PasswordController struct {
	service svc.PasswordService
}

func NewPasswordController(service svc.PasswordService) *PasswordController {
	return &PasswordController{service: service}
}

// Reset maneja POST {prefix}/auth/reset-password
func (c *PasswordController) Reset(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteErrorCtx(w, r, err)
		return
	}
	if err := c.service.RequestReset(r.Context(), req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.WriteMessage(w, http.StatusOK, "Password reset email sent")
}

// Confirm maneja POST {prefix}/auth/reset-password-confirm
func (c *PasswordController) Confirm(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetConfirm
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteErrorCtx(w, r, err)
		return
	}
	if err := c.service.ConfirmReset(r.Context(), req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.WriteMessage(w, http.StatusOK, "Password updated successfully")
}
