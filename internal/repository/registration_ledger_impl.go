package repository

import (
	"context"
	"errors"

	"er-finder/internal/domain/entity"
	domainRepo "er-finder/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type registrationLedger struct {
	db *gorm.DB
}

func NewRegistrationLedger(db *gorm.DB) domainRepo.RegistrationLedger {
	return &registrationLedger{db: db}
}

func (r *registrationLedger) NewKey() string {
	return uuid.NewString()
}

func (r *registrationLedger) Write(ctx context.Context, registration *entity.Registration) error {
	return r.db.WithContext(ctx).Create(registration).Error
}

func (r *registrationLedger) All(ctx context.Context) ([]entity.Registration, error) {
	var registrations []entity.Registration
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&registrations).Error
	if err != nil {
		return nil, err
	}
	return registrations, nil
}

func (r *registrationLedger) Get(ctx context.Context, id string) (*entity.Registration, error) {
	var registration entity.Registration
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&registration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &registration, nil
}

// UpdateStatus touches only the status column. There is no optimistic-lock
// check against the current status; rows affected is 0 only when the id is
// unknown.
func (r *registrationLedger) UpdateStatus(ctx context.Context, id string, status entity.RegistrationStatus) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Registration{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}
