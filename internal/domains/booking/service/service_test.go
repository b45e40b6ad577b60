package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pitstop/config"
	"pitstop/infras/filestore"
	"pitstop/internal/domains/booking/mocks"
	"pitstop/internal/domains/booking/model"
	"pitstop/internal/domains/booking/model/dto"
	"pitstop/internal/domains/booking/repository"
	"pitstop/internal/domains/booking/service"
	"pitstop/shared/failure"
)

func newTestService(t *testing.T) (service.Booking, repository.Booking) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Storage.DataDir = t.TempDir()
	cfg.Storage.BookingsFile = "bookings.json"

	store, err := filestore.New(cfg)
	require.NoError(t, err)

	repo := repository.New(store)

	return service.New(repo), repo
}

func validRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		Name:     "Pera",
		Phone:    "0611234567",
		CarBrand: "BMW",
		CarModel: "320d",
		Service:  "stage1",
		Date:     "2024-06-01",
		Time:     "10:00",
	}
}

func seedModel() model.Booking {
	req := validRequest()
	return req.ToModel()
}

func TestBookingService_Create(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(req *dto.CreateBookingRequest)
		wantCode int
	}{
		{
			name:   "valid request",
			mutate: func(req *dto.CreateBookingRequest) {},
		},
		{
			name:     "missing name",
			mutate:   func(req *dto.CreateBookingRequest) { req.Name = "" },
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing phone",
			mutate:   func(req *dto.CreateBookingRequest) { req.Phone = "" },
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing car brand",
			mutate:   func(req *dto.CreateBookingRequest) { req.CarBrand = "" },
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing car model",
			mutate:   func(req *dto.CreateBookingRequest) { req.CarModel = "" },
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing date",
			mutate:   func(req *dto.CreateBookingRequest) { req.Date = "" },
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing time",
			mutate:   func(req *dto.CreateBookingRequest) { req.Time = "" },
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing service",
			mutate:   func(req *dto.CreateBookingRequest) { req.Service = "" },
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown service code",
			mutate:   func(req *dto.CreateBookingRequest) { req.Service = "stage9" },
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "time outside offered slots",
			mutate:   func(req *dto.CreateBookingRequest) { req.Time = "23:00" },
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad date format",
			mutate:   func(req *dto.CreateBookingRequest) { req.Date = "01.06.2024" },
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid email",
			mutate:   func(req *dto.CreateBookingRequest) { req.Email = "nope" },
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t)
			ctx := context.Background()

			req := validRequest()
			tt.mutate(&req)

			booking, err := svc.Create(ctx, req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				stored, listErr := repo.ListAll(ctx)
				require.NoError(t, listErr)
				assert.Empty(t, stored, "store must be unchanged on rejection")

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, booking.ID)
			assert.Equal(t, model.StatusPending, booking.Status)
			assert.NotEmpty(t, booking.CreatedAt)

			stored, listErr := repo.ListAll(ctx)
			require.NoError(t, listErr)
			require.Len(t, stored, 1)
			assert.Equal(t, booking, stored[0])
		})
	}
}

func TestBookingService_CreateSlotConflict(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	other := validRequest()
	other.Name = "Mika"
	other.Phone = "0637654321"

	_, err = svc.Create(ctx, other)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	stored, listErr := repo.ListAll(ctx)
	require.NoError(t, listErr)
	assert.Len(t, stored, 1, "conflicting request must not append a record")
}

func TestBookingService_CreateDifferentSlotSucceeds(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	sameDayLater := validRequest()
	sameDayLater.Time = "11:00"
	_, err = svc.Create(ctx, sameDayLater)
	assert.NoError(t, err)

	sameTimeOtherDay := validRequest()
	sameTimeOtherDay.Date = "2024-06-02"
	_, err = svc.Create(ctx, sameTimeOtherDay)
	assert.NoError(t, err)
}

func TestBookingService_CancelledBookingFreesSlot(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	booking, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, booking.ID, model.StatusCancelled)
	require.NoError(t, err)

	_, err = svc.Create(ctx, validRequest())
	assert.NoError(t, err, "cancelled booking should free its slot")
}

func TestBookingService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		wantCode int
	}{
		{name: "pending to confirmed", from: model.StatusPending, to: model.StatusConfirmed},
		{name: "confirmed to completed", from: model.StatusConfirmed, to: model.StatusCompleted},
		{name: "pending to cancelled", from: model.StatusPending, to: model.StatusCancelled},
		{name: "confirmed to cancelled", from: model.StatusConfirmed, to: model.StatusCancelled},
		{name: "pending to completed rejected", from: model.StatusPending, to: model.StatusCompleted, wantCode: http.StatusConflict},
		{name: "completed to pending rejected", from: model.StatusCompleted, to: model.StatusPending, wantCode: http.StatusConflict},
		{name: "cancelled to confirmed rejected", from: model.StatusCancelled, to: model.StatusConfirmed, wantCode: http.StatusConflict},
		{name: "unknown status rejected", from: model.StatusPending, to: "done", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t)
			ctx := context.Background()

			seed := seedModel()
			seed.Status = tt.from
			require.NoError(t, repo.PersistAll(ctx, []model.Booking{seed}))

			updated, err := svc.UpdateStatus(ctx, seed.ID, tt.to)

			stored, listErr := repo.ListAll(ctx)
			require.NoError(t, listErr)
			require.Len(t, stored, 1)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Equal(t, tt.from, stored[0].Status, "store must be unchanged on rejection")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, updated.Status)
			assert.Equal(t, tt.to, stored[0].Status)

			// Only the status field may change.
			want := seed
			want.Status = tt.to
			assert.Equal(t, want, stored[0])
		})
	}
}

func TestBookingService_UpdateStatusNotFound(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	seed := seedModel()
	require.NoError(t, repo.PersistAll(ctx, []model.Booking{seed}))

	_, err := svc.UpdateStatus(ctx, "no-such-id", model.StatusConfirmed)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	stored, listErr := repo.ListAll(ctx)
	require.NoError(t, listErr)
	require.Len(t, stored, 1)
	assert.Equal(t, seed, stored[0])
}

func TestBookingService_Delete(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	first := seedModel()
	second := seedModel()
	second.Time = "11:00"
	third := seedModel()
	third.Time = "12:00"
	require.NoError(t, repo.PersistAll(ctx, []model.Booking{first, second, third}))

	require.NoError(t, svc.Delete(ctx, second.ID))

	stored, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Booking{first, third}, stored, "remaining records keep order and content")
}

func TestBookingService_DeleteNotFound(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	seed := seedModel()
	require.NoError(t, repo.PersistAll(ctx, []model.Booking{seed}))

	err := svc.Delete(ctx, "no-such-id")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	stored, listErr := repo.ListAll(ctx)
	require.NoError(t, listErr)
	assert.Len(t, stored, 1)
}

func TestBookingService_OccupiedSlots(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	pending := seedModel()
	confirmed := seedModel()
	confirmed.Time = "11:00"
	confirmed.Status = model.StatusConfirmed
	cancelled := seedModel()
	cancelled.Time = "12:00"
	cancelled.Status = model.StatusCancelled
	require.NoError(t, repo.PersistAll(ctx, []model.Booking{pending, confirmed, cancelled}))

	slots, err := svc.OccupiedSlots(ctx)
	require.NoError(t, err)

	assert.Equal(t, []dto.OccupiedSlot{
		{Date: "2024-06-01", Time: "10:00"},
		{Date: "2024-06-01", Time: "11:00"},
	}, slots, "cancelled bookings must not occupy slots")
}

func TestBookingService_StorageErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	readErr := errors.New("disk on fire")

	tests := []struct {
		name      string
		setupMock func(repo *mocks.MockBooking)
		call      func(svc service.Booking) error
	}{
		{
			name: "create read failure",
			setupMock: func(repo *mocks.MockBooking) {
				repo.EXPECT().ListAll(gomock.Any()).Return(nil, readErr)
			},
			call: func(svc service.Booking) error {
				_, err := svc.Create(context.Background(), validRequest())
				return err
			},
		},
		{
			name: "create write failure",
			setupMock: func(repo *mocks.MockBooking) {
				repo.EXPECT().ListAll(gomock.Any()).Return([]model.Booking{}, nil)
				repo.EXPECT().PersistAll(gomock.Any(), gomock.Any()).Return(readErr)
			},
			call: func(svc service.Booking) error {
				_, err := svc.Create(context.Background(), validRequest())
				return err
			},
		},
		{
			name: "list failure",
			setupMock: func(repo *mocks.MockBooking) {
				repo.EXPECT().ListAll(gomock.Any()).Return(nil, readErr)
			},
			call: func(svc service.Booking) error {
				_, err := svc.GetAll(context.Background())
				return err
			},
		},
		{
			name: "occupied slots failure",
			setupMock: func(repo *mocks.MockBooking) {
				repo.EXPECT().ListAll(gomock.Any()).Return(nil, readErr)
			},
			call: func(svc service.Booking) error {
				_, err := svc.OccupiedSlots(context.Background())
				return err
			},
		},
		{
			name: "delete read failure",
			setupMock: func(repo *mocks.MockBooking) {
				repo.EXPECT().ListAll(gomock.Any()).Return(nil, readErr)
			},
			call: func(svc service.Booking) error {
				return svc.Delete(context.Background(), "some-id")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockBooking(ctrl)
			tt.setupMock(mockRepo)

			svc := service.New(mockRepo)

			err := tt.call(svc)
			require.Error(t, err)
			assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		})
	}
}
