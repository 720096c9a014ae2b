package repository

import (
	"context"

	"sip-planner/domain"
)

type SimulationRepository interface {
	Save(ctx context.Context, record domain.SimulationRecord) error
	Recent(ctx context.Context, limit int) ([]domain.SimulationRecord, error)
}
