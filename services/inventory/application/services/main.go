package services

import (
	"github.com/ghuser/fieldops/pkg/app"
	crewpg "github.com/ghuser/fieldops/services/crew/infrastructure/persistence/postgres"
	"github.com/ghuser/fieldops/services/inventory/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Inventory  *InventoryService
	Snapshots  *SnapshotService
	Statistics *StatisticsService
}

// New wires all inventory application services with infrastructure from the
// Application container. The crew repository doubles as the snapshot engine's
// holdings source.
func New(a *app.Application) *Services {
	items := postgres.NewItemRepository(a.Db, a.EventBus)
	movements := postgres.NewMovementRepository(a.Db)
	snapshots := postgres.NewSnapshotRepository(a.Db)
	crews := crewpg.NewCrewRepository(a.Db)
	return &Services{
		Inventory:  NewInventoryService(items),
		Snapshots:  NewSnapshotService(items, snapshots, crews),
		Statistics: NewStatisticsService(movements),
	}
}
