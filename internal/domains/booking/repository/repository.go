package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"pitstop/infras/filestore"
	"pitstop/internal/domains/booking/model"
)

var (
	ErrStorageRead  = errors.New("failed to read bookings from storage")
	ErrStorageWrite = errors.New("failed to write bookings to storage")
)

// Booking is the durable collection of booking records. The backing store
// has whole-collection semantics: every mutation lists all records,
// modifies them in memory, and persists them all back.
type Booking interface {
	ListAll(ctx context.Context) ([]model.Booking, error)
	PersistAll(ctx context.Context, bookings []model.Booking) error
}

type repositoryImpl struct {
	store *filestore.Store
}

func New(store *filestore.Store) Booking {
	return &repositoryImpl{
		store: store,
	}
}

func (r *repositoryImpl) ListAll(_ context.Context) ([]model.Booking, error) {
	bookings := []model.Booking{}
	if err := r.store.Load(&bookings); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageRead, err)
	}

	return bookings, nil
}

func (r *repositoryImpl) PersistAll(_ context.Context, bookings []model.Booking) error {
	if bookings == nil {
		bookings = []model.Booking{}
	}

	if err := r.store.Save(bookings); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}

	return nil
}
