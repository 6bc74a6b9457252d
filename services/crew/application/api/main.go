package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/fieldops/pkg/app"
	"github.com/ghuser/fieldops/services/crew/application/handlers"
	appsvcs "github.com/ghuser/fieldops/services/crew/application/services"
)

// CrewRoutes registers crew endpoints on the provided chi router.
func CrewRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	crews := handlers.NewCrewHandler(svcs)

	r.Group(func(r chi.Router) {
		r.Route("/crews", func(r chi.Router) {
			r.Get("/", crews.List)
			r.Post("/", crews.Create)
			r.Get("/{id}", crews.Get)
			r.Post("/{id}/equipment-instances/return", handlers.NewPostReturnInstancesHandler(svcs).Execute)
		})
	})
}
