package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/dinehall/booking-service/restaurant/internal/model"
	"github.com/dinehall/booking-service/restaurant/internal/repository"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

// ReservationClient is the cross-service boundary to the reservation-service.
type ReservationClient interface {
	SearchReservations(ctx context.Context, req model.SearchReservationsRequest) ([]model.Reservation, int, error)
}

type Service struct {
	log               *zap.Logger
	repo              repository.Repository
	reservationSvc    ReservationClient
	occupyingStatuses map[string]struct{}
}

// NewService wires the inventory repository with the reservation-service
// client. occupyingStatuses lists the reservation statuses that block a table;
// empty means every reservation blocks, whatever its status.
func NewService(repo repository.Repository, reservationSvc ReservationClient, occupyingStatuses []string, log *zap.Logger) *Service {
	statuses := make(map[string]struct{}, len(occupyingStatuses))
	for _, s := range occupyingStatuses {
		statuses[s] = struct{}{}
	}
	return &Service{
		log:               log,
		repo:              repo,
		reservationSvc:    reservationSvc,
		occupyingStatuses: statuses,
	}
}

func (s *Service) CreateRestaurant(ctx context.Context, req model.CreateRestaurantRequest) (model.Restaurant, error) {
	return s.repo.CreateRestaurant(ctx, req)
}

func (s *Service) GetRestaurant(ctx context.Context, id int64) (model.Restaurant, error) {
	return s.repo.GetRestaurant(ctx, id)
}

func (s *Service) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	return s.repo.ListRestaurants(ctx)
}

func (s *Service) UpdateRestaurant(ctx context.Context, id int64, req model.CreateRestaurantRequest) (model.Restaurant, error) {
	return s.repo.UpdateRestaurant(ctx, id, req)
}

func (s *Service) DeleteRestaurant(ctx context.Context, id int64) error {
	return s.repo.DeleteRestaurant(ctx, id)
}

func (s *Service) CreateTable(ctx context.Context, req model.CreateTableRequest) (model.Table, error) {
	if _, err := s.repo.GetRestaurant(ctx, req.RestaurantID); err != nil {
		return model.Table{}, err
	}
	return s.repo.CreateTable(ctx, req)
}

func (s *Service) GetTable(ctx context.Context, id int64) (model.Table, error) {
	return s.repo.GetTable(ctx, id)
}

func (s *Service) ListTables(ctx context.Context, restaurantID int64) ([]model.Table, error) {
	if _, err := s.repo.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	return s.repo.ListTables(ctx, restaurantID)
}

func (s *Service) UpdateTable(ctx context.Context, id int64, req model.CreateTableRequest) (model.Table, error) {
	if _, err := s.repo.GetRestaurant(ctx, req.RestaurantID); err != nil {
		return model.Table{}, err
	}
	return s.repo.UpdateTable(ctx, id, req)
}

func (s *Service) DeleteTable(ctx context.Context, id int64) error {
	return s.repo.DeleteTable(ctx, id)
}
