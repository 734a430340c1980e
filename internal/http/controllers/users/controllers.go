// Package users contiene los controllers de /users.
package users

import (
	"context"
	"net/http"

	dto "github.com/dropDatabas3/wizauth/internal/http/dto/users"
	httperrors "github.com/dropDatabas3/wizauth/internal/http/errors"
	"github.com/dropDatabas3/wizauth/internal/http/helpers"
	mw "github.com/dropDatabas3/wizauth/internal/http/middlewares"
	"github.com/dropDatabas3/wizauth/internal/jwt"
	"github.com/dropDatabas3/wizauth/internal/observability/logger"
	"github.com/dropDatabas3/wizauth/internal/profile"
)

// ProfileService es lo que usa /users/me. Lo implementa *profile.Service.
type ProfileService interface {
	Me(ctx context.Context, p *jwt.Principal) (*profile.Me, error)
	Update(ctx context.Context, subjectID string, patch profile.Patch, bearer string) (*profile.Profile, error)
}

// Controllers agrupa los controllers de usuarios.
type Controllers struct {
	Me *MeController
}

func NewControllers(s ProfileService) *Controllers {
	return &Controllers{Me: NewMeController(s)}
}

// MeController expone el perfil del llamador.
type MeController struct {
	service ProfileService
}

func NewMeController(s ProfileService) *MeController {
	return &MeController{service: s}
}

// Get maneja GET {prefix}/users/me
func (c *MeController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := mw.MustGetPrincipal(ctx)

	me, err := c.service.Me(ctx, p)
	if err != nil {
		httperrors.WriteErrorCtx(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, me)
}

// Update maneja PUT {prefix}/users/me. Devuelve la vista completa actualizada.
func (c *MeController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("MeController.Update"))
	p := mw.MustGetPrincipal(ctx)

	var req dto.UpdateProfileRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteErrorCtx(w, r, err)
		return
	}
	patch := req.Patch()
	if patch.Empty() {
		httperrors.WriteErrorCtx(w, r, httperrors.ErrBadRequest.WithDetail("No profile fields to update"))
		return
	}

	if _, err := c.service.Update(ctx, p.SubjectID, patch, profile.BearerFor(p)); err != nil {
		httperrors.WriteErrorCtx(w, r, err)
		return
	}
	log.Info("profile updated")

	me, err := c.service.Me(ctx, p)
	if err != nil {
		httperrors.WriteErrorCtx(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, me)
}
