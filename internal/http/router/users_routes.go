package router

import (
	"github.com/go-chi/chi/v5"

	mw "github.com/dropDatabas3/wizauth/internal/http/middlewares"
)

// registerUsersRoutes registra {prefix}/users/*; todo requiere bearer.
func registerUsersRoutes(api chi.Router, d Deps) {
	api.Route("/users", func(r chi.Router) {
		r.Use(mw.Stack(
			mw.WithNoStore(),
			mw.RequireAuth(d.Verifier),
		)...)
		r.Get("/me", d.Users.Me.Get)
		r.Put("/me", d.Users.Me.Update)
	})
}
