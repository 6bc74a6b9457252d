package services

import (
	"github.com/ghuser/fieldops/pkg/app"
	"github.com/ghuser/fieldops/services/crew/infrastructure/persistence/postgres"
	invsvcs "github.com/ghuser/fieldops/services/inventory/application/services"
	invpg "github.com/ghuser/fieldops/services/inventory/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// The return-instances endpoint delegates to the inventory context, so its
// service is wired here too.
type Services struct {
	Crew      *CrewService
	Inventory *invsvcs.InventoryService
}

// New wires crew application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	crews := postgres.NewCrewRepository(a.Db)
	items := invpg.NewItemRepository(a.Db, a.EventBus)
	return &Services{
		Crew:      NewCrewService(crews),
		Inventory: invsvcs.NewInventoryService(items),
	}
}
