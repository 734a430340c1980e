// Package social contiene los controllers de login social por id_token.
package social

import (
	"net/http"

	dto "github.com/dropDatabas3/wizauth/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/wizauth/internal/http/errors"
	"github.com/dropDatabas3/wizauth/internal/http/helpers"
	svc "github.com/dropDatabas3/wizauth/internal/http/services/auth"
)

// Controllers agrupa los controllers sociales.
type Controllers struct {
	Google *GoogleController
}

func NewControllers(s svc.Services) *Controllers {
	return &Controllers{Google: NewGoogleController(s.OAuth)}
}

// GoogleController canjea un id_token de Google Sign-In.
type GoogleController struct {
	service svc.OAuthService
}

func NewGoogleController(service svc.OAuthService) *GoogleController {
	return &GoogleController{service: service}
}

// Google maneja POST {prefix}/social/google
func (c *GoogleController) Google(w http.ResponseWriter, r *http.Request) {
	var req dto.GoogleAuthRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteErrorCtx(w, r, err)
		return
	}
	resp, err := c.service.Google(r.Context(), req)
	if err != nil {
		httperrors.WriteErrorCtx(w, r, svc.ToAppError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}
