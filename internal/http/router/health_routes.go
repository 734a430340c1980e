package router

import "github.com/go-chi/chi/v5"

// registerHealthRoutes registra las rutas públicas fuera del prefijo.
func registerHealthRoutes(r chi.Router, d Deps) {
	r.Get("/", d.Health.Health.Root)
	r.Get("/readyz", d.Health.Health.Readyz)
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics)
	}
}
