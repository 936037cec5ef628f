package usecase

import (
	"context"
	"errors"

	"er-finder/internal/converter"
	"er-finder/internal/delivery/dto"
	"er-finder/internal/domain/entity"
	"er-finder/internal/domain/repository"
	"er-finder/internal/service"
	"er-finder/internal/view"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrHospitalNotFound = errors.New("hospital not found")
	ErrNoHospitals      = errors.New("no hospitals available")
)

type HospitalUsecase interface {
	List(ctx context.Context, cfg entity.FilterConfig) (*dto.HospitalListResponse, error)
	Get(ctx context.Context, id string) (*dto.HospitalResponse, error)
	Nearest(ctx context.Context, reference entity.Location) (*dto.HospitalResponse, error)
	Create(ctx context.Context, req *dto.SaveHospitalRequest) (*dto.HospitalResponse, error)
	Update(ctx context.Context, id string, req *dto.SaveHospitalRequest) (*dto.HospitalResponse, error)
	Delete(ctx context.Context, id string) error
}

type hospitalUsecase struct {
	log          *logrus.Logger
	directory    repository.HospitalDirectory
	cache        *view.Cache
	notifier     service.ChangeNotifier
	radiusMeters float64
}

func NewHospitalUsecase(
	log *logrus.Logger,
	directory repository.HospitalDirectory,
	cache *view.Cache,
	notifier service.ChangeNotifier,
	radiusMeters float64,
) HospitalUsecase {
	return &hospitalUsecase{
		log:          log,
		directory:    directory,
		cache:        cache,
		notifier:     notifier,
		radiusMeters: radiusMeters,
	}
}

// List returns the filtered view of the live directory mirror.
func (u *hospitalUsecase) List(ctx context.Context, cfg entity.FilterConfig) (*dto.HospitalListResponse, error) {
	filtered := view.Apply(u.cache.All(), cfg, u.radiusMeters)
	return &dto.HospitalListResponse{
		Hospitals: converter.HospitalsToResponses(filtered),
		Total:     len(filtered),
	}, nil
}

// Get serves the detail view from the mirror, falling back to the
// directory for records the mirror has not picked up yet.
func (u *hospitalUsecase) Get(ctx context.Context, id string) (*dto.HospitalResponse, error) {
	if hospital, ok := u.cache.Get(id); ok {
		return converter.HospitalToResponse(hospital), nil
	}

	hospital, err := u.directory.Get(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to look up hospital %s: %+v", id, err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}
	return converter.HospitalToResponse(hospital), nil
}

func (u *hospitalUsecase) Nearest(ctx context.Context, reference entity.Location) (*dto.HospitalResponse, error) {
	nearest := view.Nearest(u.cache.All(), reference)
	if nearest == nil {
		return nil, ErrNoHospitals
	}
	return converter.HospitalToResponse(nearest), nil
}

func (u *hospitalUsecase) Create(ctx context.Context, req *dto.SaveHospitalRequest) (*dto.HospitalResponse, error) {
	hospital := hospitalFromRequest(uuid.NewString(), req)

	if err := u.directory.Save(ctx, hospital); err != nil {
		u.log.Warnf("Failed to create hospital: %+v", err)
		return nil, err
	}
	u.notifyChanged(ctx)

	u.log.Infof("Hospital created: id=%s, name=%s", hospital.ID, hospital.Name)
	return converter.HospitalToResponse(hospital), nil
}

func (u *hospitalUsecase) Update(ctx context.Context, id string, req *dto.SaveHospitalRequest) (*dto.HospitalResponse, error) {
	existing, err := u.directory.Get(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to look up hospital %s: %+v", id, err)
		return nil, err
	}
	if existing == nil {
		return nil, ErrHospitalNotFound
	}

	// Wholesale record replacement, no field merge.
	hospital := hospitalFromRequest(id, req)
	hospital.CreatedAt = existing.CreatedAt

	if err := u.directory.Save(ctx, hospital); err != nil {
		u.log.Warnf("Failed to update hospital %s: %+v", id, err)
		return nil, err
	}
	u.notifyChanged(ctx)

	return converter.HospitalToResponse(hospital), nil
}

func (u *hospitalUsecase) Delete(ctx context.Context, id string) error {
	existing, err := u.directory.Get(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to look up hospital %s: %+v", id, err)
		return err
	}
	if existing == nil {
		return ErrHospitalNotFound
	}

	if err := u.directory.Delete(ctx, id); err != nil {
		u.log.Warnf("Failed to delete hospital %s: %+v", id, err)
		return err
	}
	u.notifyChanged(ctx)

	u.log.Infof("Hospital deleted: id=%s, name=%s", id, existing.Name)
	return nil
}

// notifyChanged kicks the directory feed. The write already succeeded, so a
// failed notification only delays subscribers until the next change.
func (u *hospitalUsecase) notifyChanged(ctx context.Context) {
	if err := u.notifier.NotifyChanged(ctx); err != nil {
		u.log.Warnf("Failed to notify directory change (non-fatal): %+v", err)
	}
}

func hospitalFromRequest(id string, req *dto.SaveHospitalRequest) *entity.Hospital {
	var photos []entity.Photo
	for _, p := range req.Photos {
		photos = append(photos, entity.Photo{URL: p.URL, Caption: p.Caption})
	}

	return &entity.Hospital{
		ID:            id,
		Name:          req.Name,
		Address:       req.Address,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Phone:         req.Phone,
		Type:          req.Type,
		BedsTotal:     req.BedsTotal,
		BedsAvailable: req.BedsAvailable,
		ICUAvailable:  req.ICUAvailable,
		ERQueue:       req.ERQueue,
		City:          req.City,
		Province:      req.Province,
		Photos:        photos,
	}
}
