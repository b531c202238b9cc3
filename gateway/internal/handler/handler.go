package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dinehall/booking-service/gateway/config"
	"github.com/dinehall/booking-service/gateway/internal/errs"
	"github.com/dinehall/booking-service/gateway/internal/model"
	"github.com/dinehall/booking-service/gateway/internal/service/reservation"
	"github.com/dinehall/booking-service/gateway/internal/service/restaurant"
	"github.com/dinehall/booking-service/pkg/auth"
	"github.com/dinehall/booking-service/pkg/circuitbreaker"
	"github.com/dinehall/booking-service/pkg/kafka"
	mw "github.com/dinehall/booking-service/pkg/middleware"
	"github.com/dinehall/booking-service/pkg/validate"
	_ "github.com/dinehall/booking-service/swagger"
)

type Handler struct {
	restaurantSvc  RestaurantService
	reservationSvc ReservationService
	enqueuer       Enqueuer
	authCfg        config.Auth
	log            *zap.Logger
}

func New(log *zap.Logger, cfg *config.Config, producer sarama.SyncProducer) *Handler {
	enq := Enqueuer(nopEnqueuer{})
	if producer != nil {
		enq = NewEnqueuer(producer)
	}
	return &Handler{
		restaurantSvc:  restaurant.NewService(log, cfg.RestaurantHTTPServer),
		reservationSvc: reservation.NewService(log, cfg.ReservationHTTPServer),
		enqueuer:       enq,
		authCfg:        cfg.Auth,
		log:            log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", mw.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)
	base.POST("/auth/login", h.Login)

	e.Validator = validate.NewCustomValidator()

	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(mw.RequestLoggerConfig()),
		middleware.RequestID(),
		mw.NewRateLimiter(apiRPS),
		mw.JwtAuthentication,
	)

	api.Any("/restaurants", h.ProxyRestaurant)
	api.Any("/restaurants/*", h.ProxyRestaurant)
	api.Any("/tables", h.ProxyRestaurant)
	api.Any("/tables/*", h.ProxyRestaurant)
	api.POST("/availability/check", h.ProxyRestaurant)

	api.POST("/reservations", h.CreateReservation)
	api.GET("/reservations", h.ProxyReservation)
	api.GET("/reservations/:id", h.GetReservation)
	api.GET("/reservations/customer/phone/:phone", h.ProxyReservation)
	api.GET("/reservations/customer/email/:email", h.ProxyReservation)
	api.GET("/reservations/restaurant/:restaurantId/status/:status", h.ProxyReservation)
	api.POST("/reservations/search", h.ProxyReservation)
	api.PATCH("/reservations/:id/confirm", h.Transition)
	api.PATCH("/reservations/:id/reject", h.Transition)
	api.PATCH("/reservations/:id/check-in", h.Transition)
	api.PATCH("/reservations/:id/complete", h.Transition)
	api.DELETE("/reservations/:id", h.CancelReservation)
	api.DELETE("/reservations/:id/permanent", h.ProxyReservation)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Login issues a JWT for the configured gateway credentials.
func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	if req.User != h.authCfg.User || req.Password != h.authCfg.Password {
		return echo.NewHTTPError(http.StatusUnauthorized, errs.ErrInvalidCredentials.Error())
	}
	token, err := auth.GenerateToken(req.User, h.authCfg.TokenTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, model.LoginResponse{Token: token})
}

func (h *Handler) ProxyRestaurant(c echo.Context) error {
	var (
		code int
		data []byte
	)
	if err := h.restaurantSvc.CB().Call(func() error {
		var err error
		data, code, err = h.restaurantSvc.Proxy(c)
		if err != nil {
			return echo.NewHTTPError(code, err.Error())
		}
		return nil
	}); err != nil {
		if errors.Is(err, circuitbreaker.ErrOpenCB) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, errs.ErrUnavailable.Error())
		}
		return err
	}
	return c.JSONBlob(code, data)
}

func (h *Handler) ProxyReservation(c echo.Context) error {
	var (
		code int
		data []byte
	)
	if err := h.reservationSvc.CB().Call(func() error {
		var err error
		data, code, err = h.reservationSvc.Proxy(c)
		if err != nil {
			return echo.NewHTTPError(code, err.Error())
		}
		return nil
	}); err != nil {
		if errors.Is(err, circuitbreaker.ErrOpenCB) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, errs.ErrUnavailable.Error())
		}
		return err
	}
	return c.JSONBlob(code, data)
}

func (h *Handler) CreateReservation(c echo.Context) error {
	var req model.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	var rsv model.Reservation
	if err := h.reservationSvc.CB().Call(func() error {
		var (
			code int
			err  error
		)
		rsv, code, err = h.reservationSvc.CreateReservation(ctx, req)
		if err != nil {
			return echo.NewHTTPError(code, err.Error())
		}
		return nil
	}); err != nil {
		return err
	}

	h.publishEvent(model.EventReservationCreated, rsv)

	return c.JSON(http.StatusCreated, rsv)
}

func (h *Handler) GetReservation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	var rsv model.Reservation
	if err := h.reservationSvc.CB().Call(func() error {
		var (
			code int
			err  error
		)
		rsv, code, err = h.reservationSvc.GetReservation(ctx, id)
		if err != nil {
			return echo.NewHTTPError(code, err.Error())
		}
		return nil
	}); err != nil {
		return err
	}

	resp := model.GetReservationResponse{Reservation: rsv}
	gg, ctxCancel := errgroup.WithContext(ctx)
	gg.Go(func() error {
		if err := h.restaurantSvc.CB().Call(func() error {
			rst, code, err := h.restaurantSvc.GetRestaurant(ctxCancel, rsv.RestaurantID)
			if err != nil {
				return echo.NewHTTPError(code, err.Error())
			}
			resp.Restaurant = &rst
			return nil
		}); err != nil {
			h.log.Warn("enrich restaurant", zap.Int("restaurantId", rsv.RestaurantID), zap.Error(err))
		}
		return nil
	})
	gg.Go(func() error {
		if err := h.restaurantSvc.CB().Call(func() error {
			tbl, code, err := h.restaurantSvc.GetTable(ctxCancel, rsv.TableID)
			if err != nil {
				return echo.NewHTTPError(code, err.Error())
			}
			resp.Table = &tbl
			return nil
		}); err != nil {
			h.log.Warn("enrich table", zap.Int("tableId", rsv.TableID), zap.Error(err))
		}
		return nil
	})
	_ = gg.Wait() //nolint:errcheck

	return c.JSON(http.StatusOK, resp)
}

var transitionEvents = map[string]string{
	"confirm":  model.EventReservationConfirmed,
	"reject":   model.EventReservationRejected,
	"check-in": model.EventReservationCheckedIn,
	"complete": model.EventReservationCompleted,
}

func (h *Handler) Transition(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	action := lastSegment(c.Request().URL.Path)
	ctx := c.Request().Context()

	var rsv model.Reservation
	if err := h.reservationSvc.CB().Call(func() error {
		var (
			code int
			err  error
		)
		rsv, code, err = h.reservationSvc.Transition(ctx, id, action)
		if err != nil {
			return echo.NewHTTPError(code, err.Error())
		}
		return nil
	}); err != nil {
		return err
	}

	if event, ok := transitionEvents[action]; ok {
		h.publishEvent(event, rsv)
	}

	return c.JSON(http.StatusOK, rsv)
}

func (h *Handler) CancelReservation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	var rsv model.Reservation
	if err := h.reservationSvc.CB().Call(func() error {
		var (
			code int
			err  error
		)
		rsv, code, err = h.reservationSvc.CancelReservation(ctx, id)
		if err != nil {
			return echo.NewHTTPError(code, err.Error())
		}
		return nil
	}); err != nil {
		return err
	}

	h.publishEvent(model.EventReservationCanceled, rsv)

	return c.JSON(http.StatusOK, rsv)
}

func (h *Handler) publishEvent(eventType string, rsv model.Reservation) {
	event := model.ReservationEvent{
		EventID:       uuid.NewString(),
		Type:          eventType,
		ReservationID: rsv.ID,
		RestaurantID:  rsv.RestaurantID,
		At:            time.Now().UTC(),
	}
	if err := h.enqueuer.Enqueue(kafka.ReservationEventsTopic, event); err != nil {
		h.log.Warn("enqueue reservation event",
			zap.String("type", eventType),
			zap.Int("reservationId", rsv.ID),
			zap.Error(err))
	}
}

func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

func lastSegment(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
