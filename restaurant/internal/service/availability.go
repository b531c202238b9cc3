package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dinehall/booking-service/restaurant/internal/model"
)

// CheckAvailability computes the set of free tables for the requested slot.
//
// The reservation-service query is fail-open: when it cannot be reached the
// checker proceeds as if no conflicting reservations exist. Availability wins
// over strict consistency here; the reservation-service insert constraint is
// what ultimately prevents a double booking.
func (s *Service) CheckAvailability(ctx context.Context, req model.CheckAvailabilityRequest) (model.AvailabilityResponse, error) {
	s.log.Info("checking availability",
		zap.Int64("restaurantId", req.RestaurantID),
		zap.String("date", req.Date),
		zap.String("time", req.Time))

	restaurant, err := s.repo.GetRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return model.AvailabilityResponse{}, err
	}

	if restaurant.IsClosed {
		return model.AvailabilityResponse{
			Closed:          true,
			Available:       false,
			AvailableTables: []model.Table{},
			Message:         "Restaurant is currently closed",
		}, nil
	}

	tables, err := s.repo.TablesWithCapacity(ctx, req.RestaurantID, req.NumberOfPeople)
	if err != nil {
		return model.AvailabilityResponse{}, err
	}
	s.log.Debug("capacity-filtered tables", zap.Int("count", len(tables)))

	if len(tables) == 0 {
		return model.AvailabilityResponse{
			Closed:          false,
			Available:       false,
			AvailableTables: []model.Table{},
			Message:         fmt.Sprintf("No tables available for %d people", req.NumberOfPeople),
		}, nil
	}

	reservations, _, err := s.reservationSvc.SearchReservations(ctx, model.SearchReservationsRequest{
		RestaurantID: req.RestaurantID,
		Date:         req.Date,
		Time:         req.Time,
	})
	if err != nil {
		s.log.Error("reservation-service search failed, assuming no conflicts", zap.Error(err))
		reservations = nil
	}

	taken := make(map[int64]struct{}, len(reservations))
	for _, rsv := range reservations {
		if !s.occupies(rsv.Status) {
			continue
		}
		taken[rsv.TableID] = struct{}{}
	}

	available := make([]model.Table, 0, len(tables))
	for _, table := range tables {
		if _, ok := taken[table.ID]; !ok {
			available = append(available, table)
		}
	}

	if len(available) == 0 {
		return model.AvailabilityResponse{
			Closed:          false,
			Available:       false,
			AvailableTables: []model.Table{},
			Message:         "All suitable tables are booked for this time",
		}, nil
	}

	return model.AvailabilityResponse{
		Closed:          false,
		Available:       true,
		AvailableTables: available,
		Message:         fmt.Sprintf("%d tables available", len(available)),
	}, nil
}

func (s *Service) occupies(status string) bool {
	if len(s.occupyingStatuses) == 0 {
		return true
	}
	_, ok := s.occupyingStatuses[status]
	return ok
}
