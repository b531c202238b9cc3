package reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/dinehall/booking-service/restaurant/config"
	"github.com/dinehall/booking-service/restaurant/internal/model"
)

// Service is the synchronous client for the reservation-service search RPC.
// One configured timeout, no retries.
type Service struct {
	log    *zap.Logger
	client *http.Client
	cfg    config.ReservationHTTPServer
}

func NewService(log *zap.Logger, cfg *config.Config) *Service {
	return &Service{
		log:    log.Named("reservation-client"),
		client: &http.Client{Timeout: cfg.ReservationHTTPServer.Timeout},
		cfg:    cfg.ReservationHTTPServer,
	}
}

func (s *Service) SearchReservations(ctx context.Context, request model.SearchReservationsRequest) ([]model.Reservation, int, error) {
	b := bytes.NewBuffer(nil)
	if err := json.NewEncoder(b).Encode(request); err != nil {
		return nil, http.StatusBadRequest, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("http://%s/api/v1/reservations/search", net.JoinHostPort(s.cfg.Host, s.cfg.Port)), b)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	req.Header.Set("Content-Type", echo.MIMEApplicationJSONCharsetUTF8)
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, http.StatusServiceUnavailable, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, fmt.Errorf("reservation-service search: status %d", resp.StatusCode)
	}

	var reservations []model.Reservation
	if err := json.NewDecoder(resp.Body).Decode(&reservations); err != nil {
		return nil, http.StatusBadGateway, err
	}
	return reservations, resp.StatusCode, nil
}
