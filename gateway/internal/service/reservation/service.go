package reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/dinehall/booking-service/gateway/config"
	"github.com/dinehall/booking-service/gateway/internal/model"
	"github.com/dinehall/booking-service/pkg/circuitbreaker"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Service struct {
	log    *zap.Logger
	client *http.Client
	cfg    config.ReservationHTTPServer
	cb     circuitbreaker.CircuitBreaker
}

func NewService(log *zap.Logger, cfg config.ReservationHTTPServer) *Service {
	return &Service{
		log:    log,
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		cb:     circuitbreaker.New(100, time.Second*5, 0.2, 2),
	}
}

func (s *Service) CB() circuitbreaker.CircuitBreaker {
	return s.cb
}

func (s *Service) CreateReservation(ctx context.Context, request model.CreateReservationRequest) (model.Reservation, int, error) {
	b := bytes.NewBuffer(nil)
	if err := json.NewEncoder(b).Encode(request); err != nil {
		return model.Reservation{}, http.StatusBadRequest, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("http://%s/api/v1/reservations", net.JoinHostPort(s.cfg.Host, s.cfg.Port)), b)
	if err != nil {
		return model.Reservation{}, http.StatusBadRequest, err
	}
	req.Header.Set("Content-Type", echo.MIMEApplicationJSONCharsetUTF8)
	resp, err := s.client.Do(req)
	if err != nil {
		return model.Reservation{}, http.StatusServiceUnavailable, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return model.Reservation{}, resp.StatusCode, remoteError(resp.Body)
	}
	var rsv model.Reservation
	if err := json.NewDecoder(resp.Body).Decode(&rsv); err != nil {
		return model.Reservation{}, http.StatusBadRequest, err
	}
	return rsv, resp.StatusCode, nil
}

func (s *Service) GetReservation(ctx context.Context, id int) (model.Reservation, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("http://%s/api/v1/reservations/%d", net.JoinHostPort(s.cfg.Host, s.cfg.Port), id), http.NoBody)
	if err != nil {
		return model.Reservation{}, http.StatusBadRequest, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return model.Reservation{}, http.StatusServiceUnavailable, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return model.Reservation{}, resp.StatusCode, remoteError(resp.Body)
	}
	var rsv model.Reservation
	if err := json.NewDecoder(resp.Body).Decode(&rsv); err != nil {
		return model.Reservation{}, http.StatusBadRequest, err
	}
	return rsv, resp.StatusCode, nil
}

// Transition moves a reservation along its lifecycle. The action is one
// of confirm, reject, check-in, complete.
func (s *Service) Transition(ctx context.Context, id int, action string) (model.Reservation, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch,
		fmt.Sprintf("http://%s/api/v1/reservations/%d/%s", net.JoinHostPort(s.cfg.Host, s.cfg.Port), id, action), http.NoBody)
	if err != nil {
		return model.Reservation{}, http.StatusBadRequest, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return model.Reservation{}, http.StatusServiceUnavailable, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return model.Reservation{}, resp.StatusCode, remoteError(resp.Body)
	}
	var rsv model.Reservation
	if err := json.NewDecoder(resp.Body).Decode(&rsv); err != nil {
		return model.Reservation{}, http.StatusBadRequest, err
	}
	return rsv, resp.StatusCode, nil
}

func (s *Service) CancelReservation(ctx context.Context, id int) (model.Reservation, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("http://%s/api/v1/reservations/%d", net.JoinHostPort(s.cfg.Host, s.cfg.Port), id), http.NoBody)
	if err != nil {
		return model.Reservation{}, http.StatusBadRequest, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return model.Reservation{}, http.StatusServiceUnavailable, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return model.Reservation{}, resp.StatusCode, remoteError(resp.Body)
	}
	var rsv model.Reservation
	if err := json.NewDecoder(resp.Body).Decode(&rsv); err != nil {
		return model.Reservation{}, http.StatusBadRequest, err
	}
	return rsv, resp.StatusCode, nil
}

func (s *Service) Proxy(c echo.Context) (data []byte, statusCode int, err error) {
	ur := c.Request().URL
	ur.Scheme = "http"
	ur.Host = net.JoinHostPort(s.cfg.Host, s.cfg.Port)
	req, err := http.NewRequestWithContext(c.Request().Context(), c.Request().Method, ur.String(), c.Request().Body)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	req.Header = c.Request().Header.Clone()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, http.StatusServiceUnavailable, err
	}
	defer resp.Body.Close()

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return data, resp.StatusCode, nil
}

func remoteError(r io.Reader) error {
	var e model.ErrorResponse
	if err := json.NewDecoder(r).Decode(&e); err != nil || e.Message == "" {
		return errors.New("reservation service error")
	}
	return errors.New(e.Message)
}
