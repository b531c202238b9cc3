package service_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dinehall/booking-service/reservation/internal/errs"
	"github.com/dinehall/booking-service/reservation/internal/model"
	"github.com/dinehall/booking-service/reservation/internal/repository"
	"github.com/dinehall/booking-service/reservation/internal/service"
	repo_mocks "github.com/dinehall/booking-service/reservation/internal/repository/mocks"
	service_mocks "github.com/dinehall/booking-service/reservation/internal/service/mocks"
)

func newCreateRequest() model.CreateReservationRequest {
	return model.CreateReservationRequest{
		RestaurantID:   1,
		CustomerName:   "Ada",
		CustomerPhone:  "+31612345678",
		CustomerEmail:  "ada@example.com",
		Date:           "2026-09-15",
		Time:           "19:00",
		NumberOfPeople: 4,
	}
}

func TestService_CreateReservation(t *testing.T) {
	t.Parallel()
	availabilityReq := model.CheckAvailabilityRequest{
		RestaurantID:   1,
		Date:           "2026-09-15",
		Time:           "19:00",
		NumberOfPeople: 4,
	}

	tests := []struct {
		name         string
		mockBehavior func(restaurantSvc *service_mocks.MockRestaurantService, repo *repo_mocks.MockRepository)
		wantErr      error
		wantTableID  int64
	}{
		{
			name: "ok first candidate allocated",
			mockBehavior: func(restaurantSvc *service_mocks.MockRestaurantService, repo *repo_mocks.MockRepository) {
				restaurantSvc.EXPECT().
					CheckAvailability(gomock.Any(), availabilityReq).
					Return(model.AvailabilityResponse{
						Available: true,
						AvailableTables: []model.Table{
							{ID: 7, TableNumber: "T7", Capacity: 4},
							{ID: 9, TableNumber: "T9", Capacity: 6},
						},
					}, http.StatusOK, nil)
				repo.EXPECT().
					CreateReservation(gomock.Any(), newCreateRequest(), int64(7)).
					Return(model.Reservation{ID: 42, TableID: 7, Status: model.StatusPending}, nil)
			},
			wantTableID: 7,
		},
		{
			name: "restaurant closed",
			mockBehavior: func(restaurantSvc *service_mocks.MockRestaurantService, repo *repo_mocks.MockRepository) {
				restaurantSvc.EXPECT().
					CheckAvailability(gomock.Any(), availabilityReq).
					Return(model.AvailabilityResponse{Closed: true}, http.StatusOK, nil)
			},
			wantErr: errs.ErrNoAvailability,
		},
		{
			name: "no tables for party size",
			mockBehavior: func(restaurantSvc *service_mocks.MockRestaurantService, repo *repo_mocks.MockRepository) {
				restaurantSvc.EXPECT().
					CheckAvailability(gomock.Any(), availabilityReq).
					Return(model.AvailabilityResponse{Available: false, AvailableTables: []model.Table{}}, http.StatusOK, nil)
			},
			wantErr: errs.ErrNoAvailability,
		},
		{
			name: "unknown restaurant",
			mockBehavior: func(restaurantSvc *service_mocks.MockRestaurantService, repo *repo_mocks.MockRepository) {
				restaurantSvc.EXPECT().
					CheckAvailability(gomock.Any(), availabilityReq).
					Return(model.AvailabilityResponse{}, http.StatusNotFound, errors.New("restaurant not found"))
			},
			wantErr: errs.ErrNotFound,
		},
		{
			name: "slot already taken",
			mockBehavior: func(restaurantSvc *service_mocks.MockRestaurantService, repo *repo_mocks.MockRepository) {
				restaurantSvc.EXPECT().
					CheckAvailability(gomock.Any(), availabilityReq).
					Return(model.AvailabilityResponse{
						Available:       true,
						AvailableTables: []model.Table{{ID: 7, TableNumber: "T7", Capacity: 4}},
					}, http.StatusOK, nil)
				repo.EXPECT().
					CreateReservation(gomock.Any(), newCreateRequest(), int64(7)).
					Return(model.Reservation{}, fmt.Errorf("table 7 is already booked for this slot: %w", errs.ErrNoAvailability))
			},
			wantErr: errs.ErrNoAvailability,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			restaurantSvc := service_mocks.NewMockRestaurantService(c)
			repo := repo_mocks.NewMockRepository(c)
			tt.mockBehavior(restaurantSvc, repo)

			svc := service.NewService(repo, restaurantSvc, zap.NewNop())
			rsv, err := svc.CreateReservation(context.Background(), newCreateRequest())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantTableID, rsv.TableID)
			require.Equal(t, model.StatusPending, rsv.Status)
		})
	}
}

func TestService_CreateReservation_RestaurantUnreachable(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	restaurantSvc := service_mocks.NewMockRestaurantService(c)
	repo := repo_mocks.NewMockRepository(c)

	restaurantSvc.EXPECT().
		CheckAvailability(gomock.Any(), gomock.Any()).
		Return(model.AvailabilityResponse{}, 0, errors.New("connection refused"))

	svc := service.NewService(repo, restaurantSvc, zap.NewNop())
	_, err := svc.CreateReservation(context.Background(), newCreateRequest())

	var commErr *errs.ServiceCommunicationError
	require.ErrorAs(t, err, &commErr)
	require.Equal(t, 0, commErr.StatusCode)
}

func TestService_Transitions(t *testing.T) {
	t.Parallel()
	type call func(svc *service.Service, ctx context.Context, id int64) (model.Reservation, error)

	tests := []struct {
		name     string
		from, to model.Status
		call     call
	}{
		{
			name: "confirm moves pending to confirmed",
			from: model.StatusPending, to: model.StatusConfirmed,
			call: func(svc *service.Service, ctx context.Context, id int64) (model.Reservation, error) {
				return svc.ConfirmReservation(ctx, id)
			},
		},
		{
			name: "reject moves pending to canceled",
			from: model.StatusPending, to: model.StatusCanceled,
			call: func(svc *service.Service, ctx context.Context, id int64) (model.Reservation, error) {
				return svc.RejectReservation(ctx, id)
			},
		},
		{
			name: "check-in moves confirmed to checked-in",
			from: model.StatusConfirmed, to: model.StatusCheckedIn,
			call: func(svc *service.Service, ctx context.Context, id int64) (model.Reservation, error) {
				return svc.CheckInReservation(ctx, id)
			},
		},
		{
			name: "complete moves checked-in to completed",
			from: model.StatusCheckedIn, to: model.StatusCompleted,
			call: func(svc *service.Service, ctx context.Context, id int64) (model.Reservation, error) {
				return svc.CompleteReservation(ctx, id)
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			restaurantSvc := service_mocks.NewMockRestaurantService(c)
			repo := repo_mocks.NewMockRepository(c)
			repo.EXPECT().
				UpdateStatus(gomock.Any(), int64(42), tt.from, tt.to).
				Return(model.Reservation{ID: 42, Status: tt.to}, nil)

			svc := service.NewService(repo, restaurantSvc, zap.NewNop())
			rsv, err := tt.call(svc, context.Background(), 42)
			require.NoError(t, err)
			require.Equal(t, tt.to, rsv.Status)
		})
	}
}

func TestService_Transitions_WrongSourceStatus(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	restaurantSvc := service_mocks.NewMockRestaurantService(c)
	repo := repo_mocks.NewMockRepository(c)
	repo.EXPECT().
		UpdateStatus(gomock.Any(), int64(42), model.StatusPending, model.StatusConfirmed).
		Return(model.Reservation{}, fmt.Errorf("move from PENDING to CONFIRMED matched no rows, status at re-read: COMPLETED: %w", errs.ErrInvalidStatusTransition))

	svc := service.NewService(repo, restaurantSvc, zap.NewNop())
	_, err := svc.ConfirmReservation(context.Background(), 42)
	require.ErrorIs(t, err, errs.ErrInvalidStatusTransition)
}

func TestService_CancelFromAnyStatus(t *testing.T) {
	t.Parallel()
	for _, status := range []model.Status{
		model.StatusPending,
		model.StatusConfirmed,
		model.StatusCheckedIn,
		model.StatusCompleted,
		model.StatusCanceled,
	} {
		status := status
		t.Run(string(status), func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			restaurantSvc := service_mocks.NewMockRestaurantService(c)
			repo := repo_mocks.NewMockRepository(c)
			repo.EXPECT().
				CancelReservation(gomock.Any(), int64(1)).
				Return(model.Reservation{ID: 1, Status: model.StatusCanceled}, nil)

			svc := service.NewService(repo, restaurantSvc, zap.NewNop())
			rsv, err := svc.CancelReservation(context.Background(), 1)
			require.NoError(t, err)
			require.Equal(t, model.StatusCanceled, rsv.Status)
		})
	}
}

// slotRepo hands out reservations while enforcing the one-occupying-row-per-slot
// constraint the real storage carries, so racing creates behave like they do
// against postgres.
type slotRepo struct {
	repository.Repository

	mu     sync.Mutex
	nextID int64
	slots  map[string]struct{}
}

func newSlotRepo() *slotRepo {
	return &slotRepo{slots: make(map[string]struct{})}
}

func (r *slotRepo) CreateReservation(_ context.Context, req model.CreateReservationRequest, tableID int64) (model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := fmt.Sprintf("%d/%d/%s/%s", req.RestaurantID, tableID, req.Date, req.Time)
	if _, ok := r.slots[key]; ok {
		return model.Reservation{}, fmt.Errorf("table %d is already booked for this slot: %w", tableID, errs.ErrNoAvailability)
	}
	r.slots[key] = struct{}{}
	r.nextID++
	return model.Reservation{
		ID:           r.nextID,
		RestaurantID: req.RestaurantID,
		TableID:      tableID,
		Date:         req.Date,
		Time:         req.Time,
		Status:       model.StatusPending,
	}, nil
}

func TestService_CreateReservation_RaceOneWinner(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	restaurantSvc := service_mocks.NewMockRestaurantService(c)

	// Both callers see the same single free table: the stale-read window.
	restaurantSvc.EXPECT().
		CheckAvailability(gomock.Any(), gomock.Any()).
		Return(model.AvailabilityResponse{
			Available:       true,
			AvailableTables: []model.Table{{ID: 7, TableNumber: "T7", Capacity: 4}},
		}, http.StatusOK, nil).
		Times(2)

	repo := newSlotRepo()
	svc := service.NewService(repo, restaurantSvc, zap.NewNop())

	var wg sync.WaitGroup
	errCh := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateReservation(context.Background(), newCreateRequest())
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	var succeeded, conflicted int
	for err := range errCh {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, errs.ErrNoAvailability)
		conflicted++
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, 1, conflicted)
}
