package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/fieldops/services/crew/domain/models"
	"github.com/ghuser/fieldops/services/crew/domain/repositories"
)

// CrewService exposes crew reads and creation. Assigned-inventory quantities
// are owned by the inventory context; this service only reads them.
type CrewService struct {
	repo repositories.CrewRepository
}

// NewCrewService returns a CrewService wired with the given repository.
func NewCrewService(repo repositories.CrewRepository) *CrewService {
	return &CrewService{repo: repo}
}

// Create registers a new active crew.
func (s *CrewService) Create(ctx context.Context, name string) (*models.Crew, error) {
	crew := models.NewCrew(name)
	if err := s.repo.Save(ctx, crew); err != nil {
		return nil, fmt.Errorf("save crew: %w", err)
	}
	return crew, nil
}

// Get retrieves a crew with its assigned inventory lines.
func (s *CrewService) Get(ctx context.Context, id uuid.UUID) (*models.Crew, error) {
	crew, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get crew: %w", err)
	}
	return crew, nil
}

// List returns all crews without their inventory lines.
func (s *CrewService) List(ctx context.Context) ([]*models.Crew, error) {
	crews, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list crews: %w", err)
	}
	return crews, nil
}
