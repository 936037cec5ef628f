package repository

import (
	"context"

	"er-finder/internal/domain/entity"
)

// HospitalDirectory is the store of hospital records, keyed by generated ids.
type HospitalDirectory interface {
	All(ctx context.Context) ([]entity.Hospital, error)
	Get(ctx context.Context, id string) (*entity.Hospital, error)
	// Save writes the whole record: create when the id is unknown,
	// wholesale replace otherwise.
	Save(ctx context.Context, hospital *entity.Hospital) error
	Delete(ctx context.Context, id string) error
}
