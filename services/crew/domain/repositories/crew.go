package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/fieldops/services/crew/domain/models"
)

// CrewRepository is the persistence interface for the Crew aggregate.
// The domain layer owns this interface; infrastructure implements it.
type CrewRepository interface {
	Save(ctx context.Context, crew *models.Crew) error

	// GetByID retrieves a crew with its assigned-inventory lines populated.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Crew, error)

	// List retrieves all crews without assigned-inventory lines.
	List(ctx context.Context) ([]*models.Crew, error)
}
