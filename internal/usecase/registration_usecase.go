package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"er-finder/internal/converter"
	"er-finder/internal/delivery/dto"
	"er-finder/internal/domain/entity"
	"er-finder/internal/domain/repository"
	"er-finder/internal/service"
	"er-finder/pkg/validator"

	"github.com/sirupsen/logrus"
)

var (
	ErrRegistrationNotFound    = errors.New("registration not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

type RegistrationUsecase interface {
	Submit(ctx context.Context, deviceID string, req *dto.CreateRegistrationRequest) (*dto.RegistrationResponse, error)
	Cancel(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status entity.RegistrationStatus) error
}

type registrationUsecase struct {
	log       *logrus.Logger
	ledger    repository.RegistrationLedger
	notifier  service.ChangeNotifier
	validator *validator.CustomValidator
}

func NewRegistrationUsecase(
	log *logrus.Logger,
	ledger repository.RegistrationLedger,
	notifier service.ChangeNotifier,
	validator *validator.CustomValidator,
) RegistrationUsecase {
	return &registrationUsecase{
		log:       log,
		ledger:    ledger,
		notifier:  notifier,
		validator: validator,
	}
}

// Submit validates and writes a new ER registration.
//
// Flow:
// 1. Validate the form, first violation wins, nothing is written on failure
// 2. Allocate a fresh ledger key
// 3. Write the registration with status waiting
// 4. Notify the ledger feed
// A failed write is reported to the caller and never retried here; the
// client keeps the form values for a manual retry.
func (u *registrationUsecase) Submit(ctx context.Context, deviceID string, req *dto.CreateRegistrationRequest) (*dto.RegistrationResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		field, message := u.validator.First(err)
		return nil, &ValidationError{Field: field, Message: message}
	}

	registration := &entity.Registration{
		ID:           u.ledger.NewKey(),
		DeviceUserID: deviceID,
		HospitalID:   req.HospitalID,
		PatientName:  req.PatientName,
		NationalID:   req.NationalID,
		Phone:        req.Phone,
		Gender:       req.Gender,
		Status:       entity.RegistrationStatusWaiting,
		Note:         req.Note,
		CreatedAt:    time.Now().UnixMilli(),
	}

	if err := u.ledger.Write(ctx, registration); err != nil {
		u.log.Warnf("Failed to write registration for device %s: %+v", deviceID, err)
		return nil, fmt.Errorf("write registration: %w", err)
	}
	u.notifyChanged(ctx)

	u.log.Infof("Registration created: id=%s, hospital=%s, code=%s", registration.ID, registration.HospitalID, registration.BookingCode())
	return converter.RegistrationToResponse(registration), nil
}

// Cancel sets the status to cancelled through a targeted field update. The
// current status is deliberately not read first: cancelling a registration
// that already reached a terminal status is an accepted no-op, only an
// unknown id is an error.
func (u *registrationUsecase) Cancel(ctx context.Context, id string) error {
	rows, err := u.ledger.UpdateStatus(ctx, id, entity.RegistrationStatusCancelled)
	if err != nil {
		u.log.Warnf("Failed to cancel registration %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrRegistrationNotFound
	}
	u.notifyChanged(ctx)

	u.log.Infof("Registration cancelled: id=%s", id)
	return nil
}

// UpdateStatus is the dashboard actor's transition: unlike Cancel it
// enforces the status state machine.
func (u *registrationUsecase) UpdateStatus(ctx context.Context, id string, status entity.RegistrationStatus) error {
	registration, err := u.ledger.Get(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to look up registration %s: %+v", id, err)
		return err
	}
	if registration == nil {
		return ErrRegistrationNotFound
	}

	if !registration.CanTransitionTo(status) {
		return ErrInvalidStatusTransition
	}

	if _, err := u.ledger.UpdateStatus(ctx, id, status); err != nil {
		u.log.Warnf("Failed to update registration %s status: %+v", id, err)
		return err
	}
	u.notifyChanged(ctx)

	u.log.Infof("Registration %s status: %s -> %s", id, registration.Status, status)
	return nil
}

func (u *registrationUsecase) notifyChanged(ctx context.Context) {
	if err := u.notifier.NotifyChanged(ctx); err != nil {
		u.log.Warnf("Failed to notify ledger change (non-fatal): %+v", err)
	}
}
