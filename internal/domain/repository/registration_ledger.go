package repository

import (
	"context"

	"er-finder/internal/domain/entity"
)

// RegistrationLedger is the store of ER registration (booking) records.
type RegistrationLedger interface {
	// NewKey allocates a fresh ledger key without writing anything.
	NewKey() string
	Write(ctx context.Context, registration *entity.Registration) error
	All(ctx context.Context) ([]entity.Registration, error)
	Get(ctx context.Context, id string) (*entity.Registration, error)
	// UpdateStatus writes only the status column of the record and returns
	// the number of affected rows. It deliberately performs no read of the
	// current status first.
	UpdateStatus(ctx context.Context, id string, status entity.RegistrationStatus) (int64, error)
}
