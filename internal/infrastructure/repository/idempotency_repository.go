package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	domainRepo "github.com/mesahq/mesa-api/internal/domain/repository"
	"gorm.io/gorm"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency key repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) Create(ctx context.Context, key *entity.IdempotencyKey) error {
	return dbFrom(ctx, r.db).Create(key).Error
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	var ikey entity.IdempotencyKey
	err := dbFrom(ctx, r.db).
		First(&ikey, "key = ? AND user_id = ?", key, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ikey, err
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	return dbFrom(ctx, r.db).
		Delete(&entity.IdempotencyKey{}, "expires_at < ?", time.Now()).Error
}

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new sequence repository
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next atomically increments and returns the counter for a scope. The
// upsert serializes concurrent callers on the scope row, so a value is
// never handed out twice. Gaps from rolled-back callers are acceptable.
func (r *sequenceRepository) Next(ctx context.Context, scope string) (int64, error) {
	var value int64
	err := dbFrom(ctx, r.db).Raw(`
		INSERT INTO sequences (scope, last_value)
		VALUES (?, 1)
		ON CONFLICT (scope)
		DO UPDATE SET last_value = sequences.last_value + 1
		RETURNING last_value
	`, scope).Scan(&value).Error
	return value, err
}

func (r *sequenceRepository) ResetAll(ctx context.Context) error {
	return dbFrom(ctx, r.db).Exec("DELETE FROM sequences").Error
}
