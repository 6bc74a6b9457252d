package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/fieldops/services/inventory/domain/models"
	"github.com/ghuser/fieldops/services/inventory/domain/repositories"
)

// ItemUsage aggregates one item's movements over the queried range.
type ItemUsage struct {
	ItemID uuid.UUID                   `json:"item_id"`
	Code   string                      `json:"code"`
	ByType map[models.MovementType]int `json:"by_type"`
	Net    int                         `json:"net"`
}

// Statistics is the usage report for a date range.
type Statistics struct {
	From  time.Time   `json:"from"`
	To    time.Time   `json:"to"`
	Items []ItemUsage `json:"items"`
}

// StatisticsService derives usage statistics from the movement history log:
// the sum of signed quantity changes grouped by item and movement type.
type StatisticsService struct {
	movements repositories.MovementRepository
}

// NewStatisticsService returns a StatisticsService reading from movements.
func NewStatisticsService(movements repositories.MovementRepository) *StatisticsService {
	return &StatisticsService{movements: movements}
}

// Compute aggregates movements with CreatedAt in [from, to], optionally
// filtered by crew and item.
func (s *StatisticsService) Compute(ctx context.Context, from, to time.Time, crewID, itemID *uuid.UUID) (*Statistics, error) {
	rows, err := s.movements.SumByRange(ctx, from, to, crewID, itemID)
	if err != nil {
		return nil, fmt.Errorf("aggregate usage: %w", err)
	}

	stats := &Statistics{From: from, To: to}
	index := make(map[uuid.UUID]int)
	for _, row := range rows {
		i, ok := index[row.ItemID]
		if !ok {
			stats.Items = append(stats.Items, ItemUsage{
				ItemID: row.ItemID,
				Code:   row.Code,
				ByType: make(map[models.MovementType]int),
			})
			i = len(stats.Items) - 1
			index[row.ItemID] = i
		}
		stats.Items[i].ByType[row.MovementType] += row.Total
		stats.Items[i].Net += row.Total
	}
	return stats, nil
}

// Movements returns the raw history rows for a range, newest first.
func (s *StatisticsService) Movements(ctx context.Context, from, to time.Time, crewID, itemID *uuid.UUID) ([]*models.Movement, error) {
	movements, err := s.movements.ListByRange(ctx, from, to, crewID, itemID)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return movements, nil
}
