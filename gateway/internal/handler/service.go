package handler

import (
	"context"

	"github.com/dinehall/booking-service/gateway/internal/model"
	"github.com/dinehall/booking-service/pkg/circuitbreaker"
	"github.com/labstack/echo/v4"

	"github.com/dinehall/booking-service/gateway/internal/service/reservation"
	"github.com/dinehall/booking-service/gateway/internal/service/restaurant"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var (
	_ RestaurantService  = (*restaurant.Service)(nil)
	_ ReservationService = (*reservation.Service)(nil)
)

type RestaurantService interface {
	CB() circuitbreaker.CircuitBreaker
	Proxy(c echo.Context) ([]byte, int, error)
	GetRestaurant(ctx context.Context, id int) (model.Restaurant, int, error)
	GetTable(ctx context.Context, id int) (model.Table, int, error)
}

type ReservationService interface {
	CB() circuitbreaker.CircuitBreaker
	Proxy(c echo.Context) ([]byte, int, error)
	CreateReservation(ctx context.Context, request model.CreateReservationRequest) (model.Reservation, int, error)
	GetReservation(ctx context.Context, id int) (model.Reservation, int, error)
	Transition(ctx context.Context, id int, action string) (model.Reservation, int, error)
	CancelReservation(ctx context.Context, id int) (model.Reservation, int, error)
}

type Enqueuer interface {
	Enqueue(topic string, v any) error
}
