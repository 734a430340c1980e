package router

import (
	"github.com/go-chi/chi/v5"

	mw "github.com/dropDatabas3/wizauth/internal/http/middlewares"
)

// registerAuthRoutes registra {prefix}/auth/*. Todo el grupo lleva no-store
// y rate limit por IP y endpoint; logout además exige bearer.
func registerAuthRoutes(api chi.Router, d Deps) {
	c := d.Auth
	api.Route("/auth", func(r chi.Router) {
		r.Use(mw.Stack(
			mw.WithNoStore(),
			mw.WithRateLimit(mw.RateLimitConfig{Limiter: d.RateLimiter, KeyFunc: mw.IPPathRateKey, Scope: "auth"}),
		)...)

		r.Post("/signup", c.SignUp.SignUp)
		r.Post("/login", c.Login.Login)
		r.Post("/magic-link", c.Passless.MagicLink)
		r.Post("/phone/login", c.Passless.PhoneLogin)
		r.Post("/phone/verify", c.Passless.PhoneVerify)
		r.Post("/reset-password", c.Password.Reset)
		r.Post("/reset-password-confirm", c.Password.Confirm)
		r.Post("/refresh", c.Session.Refresh)
		r.With(mw.RequireAuth(d.Verifier)).Post("/logout", c.Session.Logout)

		r.Get("/oauth/{provider}/url", c.OAuth.URL)
		r.Post("/oauth/callback", c.OAuth.Callback)
	})
}

// registerSocialRoutes registra {prefix}/social/*.
func registerSocialRoutes(api chi.Router, d Deps) {
	api.Route("/social", func(r chi.Router) {
		r.Use(mw.Stack(
			mw.WithNoStore(),
			mw.WithRateLimit(mw.RateLimitConfig{Limiter: d.RateLimiter, KeyFunc: mw.IPOnlyRateKey, Scope: "social"}),
		)...)
		r.Post("/google", d.Social.Google.Google)
	})
}
