package auth

import (
	"net/http"

	dto "github.com/dropDatabas3/wizauth/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/wizauth/internal/http/errors"
	"github.com/dropDatabas3/wizauth/internal/http/helpers"
	svc "github.com/dropDatabas3/wizauth/internal/http/services/auth"
)

// SignUpController maneja el alta.
type SignUpController struct {
	service svc.SignUpService
}

func NewSignUpController(service svc.SignUpService) *SignUpController {
	return &SignUpController{service: service}
}

// SignUp maneja POST {prefix}/auth/signup
func (c *SignUpController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req dto.SignUpRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteErrorCtx(w, r, err)
		return
	}

	resp, err := c.service.SignUp(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, resp)
}
