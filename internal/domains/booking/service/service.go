package service

import (
	"context"
	"fmt"
	"pitstop/internal/domains/booking/model"
	"pitstop/internal/domains/booking/model/dto"
	"pitstop/internal/domains/booking/repository"
	"pitstop/shared/failure"
	"pitstop/shared/validator"
	"sync"

	"github.com/rs/zerolog/log"
)

// Booking enforces the slot-availability invariant and the status
// lifecycle. It is the only component with business rules.
type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (model.Booking, error)
	GetAll(ctx context.Context) ([]model.Booking, error)
	OccupiedSlots(ctx context.Context) ([]dto.OccupiedSlot, error)
	UpdateStatus(ctx context.Context, id, status string) (model.Booking, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo repository.Booking

	// Serializes the read-modify-write cycle against the backing file so
	// two simultaneous submissions cannot both pass the availability check.
	mu sync.Mutex
}

func New(repo repository.Booking) Booking {
	return &serviceImpl{
		repo: repo,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (model.Booking, error) {
	if err := validator.ValidateStruct(&req); err != nil {
		log.Error().Err(err).Msg("invalid booking request")

		return model.Booking{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.repo.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")

		return model.Booking{}, fmt.Errorf("failed to list bookings: %w", err)
	}

	if slotOccupied(bookings, req.Date, req.Time) {
		return model.Booking{}, failure.Conflict("this slot is already booked") // nolint:wrapcheck
	}

	booking := req.ToModel()

	if err := s.repo.PersistAll(ctx, append(bookings, booking)); err != nil {
		log.Error().Err(err).Msg("failed to persist booking")

		return model.Booking{}, fmt.Errorf("failed to persist booking: %w", err)
	}

	log.Info().
		Str("id", booking.ID).
		Str("date", booking.Date).
		Str("time", booking.Time).
		Str("service", booking.Service).
		Msg("booking created")

	return booking, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) ([]model.Booking, error) {
	bookings, err := s.repo.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")

		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return bookings, nil
}

func (s *serviceImpl) OccupiedSlots(ctx context.Context) ([]dto.OccupiedSlot, error) {
	bookings, err := s.repo.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")

		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	slots := []dto.OccupiedSlot{}
	for _, b := range bookings {
		if !b.Active() {
			continue
		}

		slots = append(slots, dto.OccupiedSlot{Date: b.Date, Time: b.Time})
	}

	return slots, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id, status string) (model.Booking, error) {
	if !model.ValidStatus(status) {
		return model.Booking{}, failure.BadRequestFromString(fmt.Sprintf("unknown status %q", status)) // nolint:wrapcheck
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.repo.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")

		return model.Booking{}, fmt.Errorf("failed to list bookings: %w", err)
	}

	index := -1
	for i, b := range bookings {
		if b.ID == id {
			index = i

			break
		}
	}

	if index < 0 {
		log.Warn().Str("id", id).Msg("booking not found")

		return model.Booking{}, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	from := bookings[index].Status
	if !model.ValidTransition(from, status) {
		return model.Booking{}, failure.Conflict(fmt.Sprintf("cannot change status from %s to %s", from, status)) // nolint:wrapcheck
	}

	bookings[index].Status = status

	if err := s.repo.PersistAll(ctx, bookings); err != nil {
		log.Error().Err(err).Msg("failed to persist status update")

		return model.Booking{}, fmt.Errorf("failed to persist status update: %w", err)
	}

	log.Info().Str("id", id).Str("from", from).Str("to", status).Msg("booking status updated")

	return bookings[index], nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.repo.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")

		return fmt.Errorf("failed to list bookings: %w", err)
	}

	remaining := make([]model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ID != id {
			remaining = append(remaining, b)
		}
	}

	if len(remaining) == len(bookings) {
		log.Warn().Str("id", id).Msg("booking not found")

		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err := s.repo.PersistAll(ctx, remaining); err != nil {
		log.Error().Err(err).Msg("failed to persist booking removal")

		return fmt.Errorf("failed to persist booking removal: %w", err)
	}

	log.Info().Str("id", id).Msg("booking deleted")

	return nil
}

func slotOccupied(bookings []model.Booking, date, timeSlot string) bool {
	for _, b := range bookings {
		if b.Active() && b.Date == date && b.Time == timeSlot {
			return true
		}
	}

	return false
}
