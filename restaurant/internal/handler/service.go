package handler

import (
	"context"

	"github.com/dinehall/booking-service/restaurant/internal/model"
	"github.com/dinehall/booking-service/restaurant/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type RestaurantService interface {
	CreateRestaurant(ctx context.Context, req model.CreateRestaurantRequest) (model.Restaurant, error)
	GetRestaurant(ctx context.Context, id int64) (model.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]model.Restaurant, error)
	UpdateRestaurant(ctx context.Context, id int64, req model.CreateRestaurantRequest) (model.Restaurant, error)
	DeleteRestaurant(ctx context.Context, id int64) error

	CreateTable(ctx context.Context, req model.CreateTableRequest) (model.Table, error)
	GetTable(ctx context.Context, id int64) (model.Table, error)
	ListTables(ctx context.Context, restaurantID int64) ([]model.Table, error)
	UpdateTable(ctx context.Context, id int64, req model.CreateTableRequest) (model.Table, error)
	DeleteTable(ctx context.Context, id int64) error

	CheckAvailability(ctx context.Context, req model.CheckAvailabilityRequest) (model.AvailabilityResponse, error)
}

var _ RestaurantService = (*service.Service)(nil)
