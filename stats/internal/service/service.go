package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/dinehall/booking-service/stats/internal/model"
	"github.com/dinehall/booking-service/stats/internal/repository"
)

type Service struct {
	repo repository.Repository
	log  *zap.Logger
}

func NewService(repo repository.Repository, log *zap.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.Named("service"),
	}
}

func (s *Service) RecordEvent(ctx context.Context, event model.ReservationEvent) error {
	return s.repo.RecordEvent(ctx, event)
}

func (s *Service) StatsByRestaurant(ctx context.Context, restaurantID int64) ([]model.RestaurantStats, error) {
	return s.repo.StatsByRestaurant(ctx, restaurantID)
}
