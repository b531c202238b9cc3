package service

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/dinehall/booking-service/reservation/internal/errs"
	"github.com/dinehall/booking-service/reservation/internal/model"
	"github.com/dinehall/booking-service/reservation/internal/repository"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

// RestaurantService is the cross-service boundary to the restaurant-service.
type RestaurantService interface {
	CheckAvailability(ctx context.Context, req model.CheckAvailabilityRequest) (model.AvailabilityResponse, int, error)
}

// Service owns the reservation lifecycle: creation through the availability
// check plus table allocation, and every subsequent status transition.
type Service struct {
	log           *zap.Logger
	repo          repository.Repository
	restaurantSvc RestaurantService
}

func NewService(repo repository.Repository, restaurantSvc RestaurantService, log *zap.Logger) *Service {
	return &Service{
		log:           log,
		repo:          repo,
		restaurantSvc: restaurantSvc,
	}
}

// CreateReservation runs the allocation protocol: availability check against
// the restaurant-service, then a single insert. The two round-trips share no
// transaction; the storage uniqueness constraint catches the race.
func (s *Service) CreateReservation(ctx context.Context, req model.CreateReservationRequest) (model.Reservation, error) {
	s.log.Info("creating reservation",
		zap.Int64("restaurantId", req.RestaurantID),
		zap.String("date", req.Date),
		zap.String("time", req.Time))

	availability, code, err := s.restaurantSvc.CheckAvailability(ctx, model.CheckAvailabilityRequest{
		RestaurantID:   req.RestaurantID,
		Date:           req.Date,
		Time:           req.Time,
		NumberOfPeople: req.NumberOfPeople,
	})
	if err != nil {
		if code == http.StatusNotFound {
			return model.Reservation{}, fmt.Errorf("restaurant %d: %w", req.RestaurantID, errs.ErrNotFound)
		}
		return model.Reservation{}, &errs.ServiceCommunicationError{StatusCode: code, Err: err}
	}

	if availability.Closed {
		return model.Reservation{}, fmt.Errorf("restaurant %d is currently closed: %w", req.RestaurantID, errs.ErrNoAvailability)
	}
	if !availability.Available || len(availability.AvailableTables) == 0 {
		return model.Reservation{}, fmt.Errorf("no tables available for %d people on %s %s: %w",
			req.NumberOfPeople, req.Date, req.Time, errs.ErrNoAvailability)
	}

	// First candidate wins. The order is whatever the availability query
	// returned; no best-fit on capacity.
	table := availability.AvailableTables[0]
	s.log.Info("allocating table",
		zap.Int64("tableId", table.ID),
		zap.String("tableNumber", table.TableNumber))

	return s.repo.CreateReservation(ctx, req, table.ID)
}

func (s *Service) GetReservation(ctx context.Context, id int64) (model.Reservation, error) {
	return s.repo.GetReservation(ctx, id)
}

func (s *Service) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	return s.repo.ListReservations(ctx)
}

func (s *Service) ListByCustomerPhone(ctx context.Context, phone string) ([]model.Reservation, error) {
	return s.repo.ListByCustomerPhone(ctx, phone)
}

func (s *Service) ListByCustomerEmail(ctx context.Context, email string) ([]model.Reservation, error) {
	return s.repo.ListByCustomerEmail(ctx, email)
}

func (s *Service) ListByRestaurantAndStatus(ctx context.Context, restaurantID int64, status model.Status) ([]model.Reservation, error) {
	return s.repo.ListByRestaurantAndStatus(ctx, restaurantID, status)
}

func (s *Service) SearchReservations(ctx context.Context, req model.SearchReservationsRequest) ([]model.Reservation, error) {
	return s.repo.SearchReservations(ctx, req)
}

func (s *Service) ConfirmReservation(ctx context.Context, id int64) (model.Reservation, error) {
	return s.repo.UpdateStatus(ctx, id, model.StatusPending, model.StatusConfirmed)
}

func (s *Service) RejectReservation(ctx context.Context, id int64) (model.Reservation, error) {
	return s.repo.UpdateStatus(ctx, id, model.StatusPending, model.StatusCanceled)
}

func (s *Service) CheckInReservation(ctx context.Context, id int64) (model.Reservation, error) {
	return s.repo.UpdateStatus(ctx, id, model.StatusConfirmed, model.StatusCheckedIn)
}

func (s *Service) CompleteReservation(ctx context.Context, id int64) (model.Reservation, error) {
	return s.repo.UpdateStatus(ctx, id, model.StatusCheckedIn, model.StatusCompleted)
}

// CancelReservation succeeds from any status, terminal ones included.
func (s *Service) CancelReservation(ctx context.Context, id int64) (model.Reservation, error) {
	return s.repo.CancelReservation(ctx, id)
}

func (s *Service) DeleteReservation(ctx context.Context, id int64) error {
	return s.repo.DeleteReservation(ctx, id)
}
