package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/fieldops/pkg/app"
	"github.com/ghuser/fieldops/services/inventory/application/handlers"
	appsvcs "github.com/ghuser/fieldops/services/inventory/application/services"
)

// InventoryRoutes registers inventory endpoints on the provided chi router.
func InventoryRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	items := handlers.NewGetItemHandler(svcs)
	instances := handlers.NewGetInstancesHandler(svcs)

	r.Group(func(r chi.Router) {
		r.Route("/inventory", func(r chi.Router) {
			r.Route("/items", func(r chi.Router) {
				r.Get("/", items.List)
				r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
				r.Get("/{id}", items.Execute)
			})

			r.Get("/{id}/instances", instances.ByPath)
			r.Route("/instances", func(r chi.Router) {
				r.Get("/", instances.ByQuery)
				r.Post("/", handlers.NewPostInstancesHandler(svcs).Execute)
				r.Put("/", handlers.NewPutInstanceHandler(svcs).Execute)
				r.Delete("/", handlers.NewDeleteInstanceHandler(svcs).Execute)
			})

			r.Post("/movements", handlers.NewPostMovementsHandler(svcs).Execute)

			snapshots := handlers.NewSnapshotsHandler(svcs)
			r.Route("/snapshots", func(r chi.Router) {
				r.Get("/", snapshots.List)
				r.Post("/", snapshots.Create)
			})

			r.Get("/statistics", handlers.NewGetStatisticsHandler(svcs).Execute)

			r.Put("/batches/update", handlers.NewPutBatchHandler(svcs).Execute)

			if a.Storage != nil {
				certs := handlers.NewCertificatesHandler(a.Storage)
				r.Post("/certificates", certs.Upload)
				r.Get("/certificates/*", certs.Download)
			}
		})
	})
}
