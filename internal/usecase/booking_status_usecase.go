package usecase

import (
	"context"
	"sort"

	"er-finder/internal/converter"
	"er-finder/internal/delivery/dto"
	"er-finder/internal/domain/entity"
	"er-finder/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// unknownHospitalName is shown when a registration references a hospital
// the directory no longer knows.
const unknownHospitalName = "Unknown hospital"

type BookingStatusUsecase interface {
	MyBookings(ctx context.Context, deviceID string) (*dto.BookingStatusListResponse, error)
	// Project derives the device's booking list from an already delivered
	// ledger snapshot; the live watch path feeds it.
	Project(ctx context.Context, deviceID string, registrations []entity.Registration) *dto.BookingStatusListResponse
}

type bookingStatusUsecase struct {
	log       *logrus.Logger
	ledger    repository.RegistrationLedger
	directory repository.HospitalDirectory
}

func NewBookingStatusUsecase(
	log *logrus.Logger,
	ledger repository.RegistrationLedger,
	directory repository.HospitalDirectory,
) BookingStatusUsecase {
	return &bookingStatusUsecase{
		log:       log,
		ledger:    ledger,
		directory: directory,
	}
}

// MyBookings loads the full registration collection and filters it by
// device id here rather than querying by index, matching the behavior of
// the system it replaces.
func (u *bookingStatusUsecase) MyBookings(ctx context.Context, deviceID string) (*dto.BookingStatusListResponse, error) {
	registrations, err := u.ledger.All(ctx)
	if err != nil {
		u.log.Warnf("Failed to load registrations for device %s: %+v", deviceID, err)
		return nil, err
	}
	return u.Project(ctx, deviceID, registrations), nil
}

func (u *bookingStatusUsecase) Project(ctx context.Context, deviceID string, registrations []entity.Registration) *dto.BookingStatusListResponse {
	var own []entity.Registration
	for _, r := range registrations {
		if r.DeviceUserID == deviceID {
			own = append(own, r)
		}
	}

	sort.SliceStable(own, func(i, j int) bool {
		return own[i].CreatedAt > own[j].CreatedAt
	})

	bookings := make([]dto.BookingStatusResponse, 0, len(own))
	for i := range own {
		bookings = append(bookings, converter.RegistrationToBookingStatus(&own[i], u.hospitalName(ctx, own[i].HospitalID)))
	}

	return &dto.BookingStatusListResponse{
		Bookings: bookings,
		Total:    len(bookings),
	}
}

// hospitalName resolves the display name for a row. A missing record or a
// failed lookup degrades to a placeholder instead of failing the list.
func (u *bookingStatusUsecase) hospitalName(ctx context.Context, hospitalID string) string {
	hospital, err := u.directory.Get(ctx, hospitalID)
	if err != nil {
		u.log.Debugf("Failed to resolve hospital %s name: %+v", hospitalID, err)
		return unknownHospitalName
	}
	if hospital == nil {
		return unknownHospitalName
	}
	return hospital.Name
}
