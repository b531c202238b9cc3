package handler

import (
	"context"

	"github.com/dinehall/booking-service/reservation/internal/model"
	"github.com/dinehall/booking-service/reservation/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type ReservationService interface {
	CreateReservation(ctx context.Context, req model.CreateReservationRequest) (model.Reservation, error)
	GetReservation(ctx context.Context, id int64) (model.Reservation, error)
	ListReservations(ctx context.Context) ([]model.Reservation, error)
	ListByCustomerPhone(ctx context.Context, phone string) ([]model.Reservation, error)
	ListByCustomerEmail(ctx context.Context, email string) ([]model.Reservation, error)
	ListByRestaurantAndStatus(ctx context.Context, restaurantID int64, status model.Status) ([]model.Reservation, error)
	SearchReservations(ctx context.Context, req model.SearchReservationsRequest) ([]model.Reservation, error)
	ConfirmReservation(ctx context.Context, id int64) (model.Reservation, error)
	RejectReservation(ctx context.Context, id int64) (model.Reservation, error)
	CheckInReservation(ctx context.Context, id int64) (model.Reservation, error)
	CompleteReservation(ctx context.Context, id int64) (model.Reservation, error)
	CancelReservation(ctx context.Context, id int64) (model.Reservation, error)
	DeleteReservation(ctx context.Context, id int64) error
}

var _ ReservationService = (*service.Service)(nil)
