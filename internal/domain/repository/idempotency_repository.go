package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key data access
type IdempotencyRepository interface {
	Create(ctx context.Context, key *entity.IdempotencyKey) error
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	DeleteExpired(ctx context.Context) error
}

// SequenceRepository allocates monotonic per-scope sequence values for
// document numbers. Allocation is atomic; a value is never handed out
// twice even under concurrent requests.
type SequenceRepository interface {
	Next(ctx context.Context, scope string) (int64, error)
	ResetAll(ctx context.Context) error
}
