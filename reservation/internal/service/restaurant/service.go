package restaurant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/dinehall/booking-service/reservation/config"
	"github.com/dinehall/booking-service/reservation/internal/model"
)

// Service is the synchronous client for the restaurant-service availability
// RPC. One configured timeout, no retries.
type Service struct {
	log    *zap.Logger
	client *http.Client
	cfg    config.RestaurantHTTPServer
}

func NewService(log *zap.Logger, cfg *config.Config) *Service {
	return &Service{
		log:    log.Named("restaurant-client"),
		client: &http.Client{Timeout: cfg.RestaurantHTTPServer.Timeout},
		cfg:    cfg.RestaurantHTTPServer,
	}
}

func (s *Service) CheckAvailability(ctx context.Context, request model.CheckAvailabilityRequest) (model.AvailabilityResponse, int, error) {
	b := bytes.NewBuffer(nil)
	if err := json.NewEncoder(b).Encode(request); err != nil {
		return model.AvailabilityResponse{}, http.StatusBadRequest, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("http://%s/api/v1/availability/check", net.JoinHostPort(s.cfg.Host, s.cfg.Port)), b)
	if err != nil {
		return model.AvailabilityResponse{}, http.StatusBadRequest, err
	}
	req.Header.Set("Content-Type", echo.MIMEApplicationJSONCharsetUTF8)
	resp, err := s.client.Do(req)
	if err != nil {
		return model.AvailabilityResponse{}, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.AvailabilityResponse{}, resp.StatusCode, fmt.Errorf("restaurant-service availability: status %d", resp.StatusCode)
	}

	var availability model.AvailabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&availability); err != nil {
		return model.AvailabilityResponse{}, http.StatusBadGateway, err
	}
	return availability, resp.StatusCode, nil
}
