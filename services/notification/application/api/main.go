package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/fieldops/pkg/app"
	"github.com/ghuser/fieldops/services/notification/application/handlers"
	appsvcs "github.com/ghuser/fieldops/services/notification/application/services"
)

// NotificationRoutes registers notification endpoints on the provided chi router.
func NotificationRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/notifications", func(r chi.Router) {
			r.Post("/tokens", handlers.NewPostTokenHandler(svcs).Execute)
		})
	})
}
