package repository

import (
	"context"
	"errors"

	"er-finder/internal/domain/entity"
	domainRepo "er-finder/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type hospitalDirectory struct {
	db *gorm.DB
}

func NewHospitalDirectory(db *gorm.DB) domainRepo.HospitalDirectory {
	return &hospitalDirectory{db: db}
}

func (r *hospitalDirectory) All(ctx context.Context) ([]entity.Hospital, error) {
	var hospitals []entity.Hospital
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&hospitals).Error
	if err != nil {
		return nil, err
	}
	return hospitals, nil
}

func (r *hospitalDirectory) Get(ctx context.Context, id string) (*entity.Hospital, error) {
	var hospital entity.Hospital
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&hospital).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hospital, nil
}

// Save replaces the record wholesale; there is no partial merge of fields.
func (r *hospitalDirectory) Save(ctx context.Context, hospital *entity.Hospital) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(hospital).Error
}

func (r *hospitalDirectory) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Hospital{}).Error
}
