package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	md "github.com/dinehall/booking-service/pkg/middleware"
	"github.com/dinehall/booking-service/pkg/validate"
	"github.com/dinehall/booking-service/reservation/internal/errs"
	"github.com/dinehall/booking-service/reservation/internal/model"
)

type Handler struct {
	reservationSvc ReservationService
	log            *zap.Logger
}

func New(reservationSvc ReservationService, log *zap.Logger) *Handler {
	return &Handler{
		reservationSvc: reservationSvc,
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

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/reservations", h.CreateReservation)
	api.GET("/reservations", h.ListReservations)
	api.GET("/reservations/:id", h.GetReservation)
	api.GET("/reservations/customer/phone/:phone", h.ListByCustomerPhone)
	api.GET("/reservations/customer/email/:email", h.ListByCustomerEmail)
	api.GET("/reservations/restaurant/:restaurantId/status/:status", h.ListByRestaurantAndStatus)
	api.POST("/reservations/search", h.SearchReservations)

	api.PATCH("/reservations/:id/confirm", h.ConfirmReservation)
	api.PATCH("/reservations/:id/reject", h.RejectReservation)
	api.PATCH("/reservations/:id/check-in", h.CheckInReservation)
	api.PATCH("/reservations/:id/complete", h.CompleteReservation)

	api.DELETE("/reservations/:id", h.CancelReservation)
	api.DELETE("/reservations/:id/permanent", h.DeleteReservation)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) CreateReservation(c echo.Context) error {
	var req model.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rsv, err := h.reservationSvc.CreateReservation(c.Request().Context(), req)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, rsv)
}

func (h *Handler) GetReservation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	rsv, err := h.reservationSvc.GetReservation(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, rsv)
}

func (h *Handler) ListReservations(c echo.Context) error {
	items, err := h.reservationSvc.ListReservations(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListByCustomerPhone(c echo.Context) error {
	phone := c.Param("phone")
	if phone == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "phone is empty")
	}
	items, err := h.reservationSvc.ListByCustomerPhone(c.Request().Context(), phone)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListByCustomerEmail(c echo.Context) error {
	email := c.Param("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is empty")
	}
	items, err := h.reservationSvc.ListByCustomerEmail(c.Request().Context(), email)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListByRestaurantAndStatus(c echo.Context) error {
	restaurantID, err := strconv.ParseInt(c.Param("restaurantId"), 10, 64)
	if err != nil || restaurantID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid restaurantId")
	}
	status := model.Status(c.Param("status"))
	if !status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status "+string(status))
	}
	items, err := h.reservationSvc.ListByRestaurantAndStatus(c.Request().Context(), restaurantID, status)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) SearchReservations(c echo.Context) error {
	var req model.SearchReservationsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	items, err := h.reservationSvc.SearchReservations(c.Request().Context(), req)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ConfirmReservation(c echo.Context) error {
	return h.transition(c, h.reservationSvc.ConfirmReservation)
}

func (h *Handler) RejectReservation(c echo.Context) error {
	return h.transition(c, h.reservationSvc.RejectReservation)
}

func (h *Handler) CheckInReservation(c echo.Context) error {
	return h.transition(c, h.reservationSvc.CheckInReservation)
}

func (h *Handler) CompleteReservation(c echo.Context) error {
	return h.transition(c, h.reservationSvc.CompleteReservation)
}

func (h *Handler) CancelReservation(c echo.Context) error {
	return h.transition(c, h.reservationSvc.CancelReservation)
}

func (h *Handler) DeleteReservation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.reservationSvc.DeleteReservation(c.Request().Context(), id); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type transitionFn func(ctx context.Context, id int64) (model.Reservation, error)

func (h *Handler) transition(c echo.Context, fn transitionFn) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	rsv, err := fn(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, rsv)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrNoAvailability):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrInvalidStatusTransition):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var commErr *errs.ServiceCommunicationError
	if errors.As(err, &commErr) {
		code := commErr.StatusCode
		if code == 0 {
			code = http.StatusServiceUnavailable
		}
		return echo.NewHTTPError(code, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
