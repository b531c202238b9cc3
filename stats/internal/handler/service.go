package handler

import (
	"context"

	"github.com/dinehall/booking-service/stats/internal/model"
	"github.com/dinehall/booking-service/stats/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var _ StatsService = (*service.Service)(nil)

type StatsService interface {
	RecordEvent(ctx context.Context, event model.ReservationEvent) error
	StatsByRestaurant(ctx context.Context, restaurantID int64) ([]model.RestaurantStats, error)
}
