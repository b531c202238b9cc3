package restaurant

import (
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
	cfg    config.RestaurantHTTPServer
	cb     circuitbreaker.CircuitBreaker
}

func NewService(log *zap.Logger, cfg config.RestaurantHTTPServer) *Service {
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

func (s *Service) GetRestaurant(ctx context.Context, id int) (model.Restaurant, int, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf("http://%s/api/v1/restaurants/%d", net.JoinHostPort(s.cfg.Host, s.cfg.Port), id),
		http.NoBody)
	if err != nil {
		return model.Restaurant{}, http.StatusBadRequest, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return model.Restaurant{}, http.StatusServiceUnavailable, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return model.Restaurant{}, resp.StatusCode, remoteError(resp.Body)
	}
	var rst model.Restaurant
	if err := json.NewDecoder(resp.Body).Decode(&rst); err != nil {
		return model.Restaurant{}, http.StatusBadRequest, err
	}
	return rst, resp.StatusCode, nil
}

func (s *Service) GetTable(ctx context.Context, id int) (model.Table, int, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf("http://%s/api/v1/tables/%d", net.JoinHostPort(s.cfg.Host, s.cfg.Port), id),
		http.NoBody)
	if err != nil {
		return model.Table{}, http.StatusBadRequest, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return model.Table{}, http.StatusServiceUnavailable, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return model.Table{}, resp.StatusCode, remoteError(resp.Body)
	}
	var tbl model.Table
	if err := json.NewDecoder(resp.Body).Decode(&tbl); err != nil {
		return model.Table{}, http.StatusBadRequest, err
	}
	return tbl, resp.StatusCode, nil
}

func (s *Service) Proxy(c echo.Context) (data []byte, statusCode int, err error) {
	return s.proxy(c)
}

func (s *Service) proxy(c echo.Context) (data []byte, statusCode int, err error) {
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
		return errors.New("restaurant service error")
	}
	return errors.New(e.Message)
}
