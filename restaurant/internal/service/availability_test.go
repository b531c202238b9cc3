package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dinehall/booking-service/restaurant/internal/errs"
	"github.com/dinehall/booking-service/restaurant/internal/model"
	repo_mocks "github.com/dinehall/booking-service/restaurant/internal/repository/mocks"
	"github.com/dinehall/booking-service/restaurant/internal/service"
	service_mocks "github.com/dinehall/booking-service/restaurant/internal/service/mocks"
)

var defaultOccupying = []string{"PENDING", "CONFIRMED", "CHECKED_IN"}

func availabilityRequest() model.CheckAvailabilityRequest {
	return model.CheckAvailabilityRequest{
		RestaurantID:   1,
		Date:           "2026-09-15",
		Time:           "19:00",
		NumberOfPeople: 4,
	}
}

func searchRequest() model.SearchReservationsRequest {
	return model.SearchReservationsRequest{
		RestaurantID: 1,
		Date:         "2026-09-15",
		Time:         "19:00",
	}
}

func TestService_CheckAvailability(t *testing.T) {
	t.Parallel()
	type mockBehavior func(repo *repo_mocks.MockRepository, reservations *service_mocks.MockReservationClient)

	tests := []struct {
		name              string
		occupyingStatuses []string
		mockBehavior      mockBehavior
		wantClosed        bool
		wantAvailable     bool
		wantTableIDs      []int64
		wantMessage       string
	}{
		{
			name:              "closed restaurant short-circuits",
			occupyingStatuses: defaultOccupying,
			mockBehavior: func(repo *repo_mocks.MockRepository, reservations *service_mocks.MockReservationClient) {
				repo.EXPECT().
					GetRestaurant(gomock.Any(), int64(1)).
					Return(model.Restaurant{ID: 1, Name: "De Kas", IsClosed: true}, nil)
			},
			wantClosed:   true,
			wantTableIDs: []int64{},
			wantMessage:  "Restaurant is currently closed",
		},
		{
			name:              "no table fits the party",
			occupyingStatuses: defaultOccupying,
			mockBehavior: func(repo *repo_mocks.MockRepository, reservations *service_mocks.MockReservationClient) {
				repo.EXPECT().
					GetRestaurant(gomock.Any(), int64(1)).
					Return(model.Restaurant{ID: 1, Name: "De Kas"}, nil)
				repo.EXPECT().
					TablesWithCapacity(gomock.Any(), int64(1), 4).
					Return([]model.Table{}, nil)
			},
			wantTableIDs: []int64{},
			wantMessage:  "No tables available for 4 people",
		},
		{
			name:              "occupying reservations filter tables",
			occupyingStatuses: defaultOccupying,
			mockBehavior: func(repo *repo_mocks.MockRepository, reservations *service_mocks.MockReservationClient) {
				repo.EXPECT().
					GetRestaurant(gomock.Any(), int64(1)).
					Return(model.Restaurant{ID: 1, Name: "De Kas"}, nil)
				repo.EXPECT().
					TablesWithCapacity(gomock.Any(), int64(1), 4).
					Return([]model.Table{
						{ID: 7, TableNumber: "T7", Capacity: 4},
						{ID: 9, TableNumber: "T9", Capacity: 6},
					}, nil)
				reservations.EXPECT().
					SearchReservations(gomock.Any(), searchRequest()).
					Return([]model.Reservation{
						{ID: 1, TableID: 7, Status: "CONFIRMED"},
						{ID: 2, TableID: 9, Status: "CANCELED"},
					}, 200, nil)
			},
			wantAvailable: true,
			wantTableIDs:  []int64{9},
			wantMessage:   "1 tables available",
		},
		{
			name: "empty policy counts every status as occupying",
			mockBehavior: func(repo *repo_mocks.MockRepository, reservations *service_mocks.MockReservationClient) {
				repo.EXPECT().
					GetRestaurant(gomock.Any(), int64(1)).
					Return(model.Restaurant{ID: 1, Name: "De Kas"}, nil)
				repo.EXPECT().
					TablesWithCapacity(gomock.Any(), int64(1), 4).
					Return([]model.Table{
						{ID: 7, TableNumber: "T7", Capacity: 4},
						{ID: 9, TableNumber: "T9", Capacity: 6},
					}, nil)
				reservations.EXPECT().
					SearchReservations(gomock.Any(), searchRequest()).
					Return([]model.Reservation{
						{ID: 1, TableID: 7, Status: "CONFIRMED"},
						{ID: 2, TableID: 9, Status: "CANCELED"},
					}, 200, nil)
			},
			wantTableIDs: []int64{},
			wantMessage:  "All suitable tables are booked for this time",
		},
		{
			name:              "reservation-service down fails open",
			occupyingStatuses: defaultOccupying,
			mockBehavior: func(repo *repo_mocks.MockRepository, reservations *service_mocks.MockReservationClient) {
				repo.EXPECT().
					GetRestaurant(gomock.Any(), int64(1)).
					Return(model.Restaurant{ID: 1, Name: "De Kas"}, nil)
				repo.EXPECT().
					TablesWithCapacity(gomock.Any(), int64(1), 4).
					Return([]model.Table{{ID: 7, TableNumber: "T7", Capacity: 4}}, nil)
				reservations.EXPECT().
					SearchReservations(gomock.Any(), searchRequest()).
					Return(nil, 0, errors.New("connection refused"))
			},
			wantAvailable: true,
			wantTableIDs:  []int64{7},
			wantMessage:   "1 tables available",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			repo := repo_mocks.NewMockRepository(c)
			reservations := service_mocks.NewMockReservationClient(c)
			tt.mockBehavior(repo, reservations)

			svc := service.NewService(repo, reservations, tt.occupyingStatuses, zap.NewNop())
			resp, err := svc.CheckAvailability(context.Background(), availabilityRequest())
			require.NoError(t, err)

			require.Equal(t, tt.wantClosed, resp.Closed)
			require.Equal(t, tt.wantAvailable, resp.Available)
			require.Equal(t, tt.wantMessage, resp.Message)

			ids := make([]int64, 0, len(resp.AvailableTables))
			for _, tbl := range resp.AvailableTables {
				ids = append(ids, tbl.ID)
			}
			require.Equal(t, tt.wantTableIDs, ids)
		})
	}
}

func TestService_CheckAvailability_UnknownRestaurant(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	repo := repo_mocks.NewMockRepository(c)
	reservations := service_mocks.NewMockReservationClient(c)
	repo.EXPECT().
		GetRestaurant(gomock.Any(), int64(99)).
		Return(model.Restaurant{}, errs.ErrRestaurantNotFound)

	svc := service.NewService(repo, reservations, defaultOccupying, zap.NewNop())
	req := availabilityRequest()
	req.RestaurantID = 99
	_, err := svc.CheckAvailability(context.Background(), req)
	require.ErrorIs(t, err, errs.ErrRestaurantNotFound)
}
