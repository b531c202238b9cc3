package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	md "github.com/dinehall/booking-service/pkg/middleware"
	"github.com/dinehall/booking-service/pkg/validate"
	"github.com/dinehall/booking-service/restaurant/internal/errs"
	"github.com/dinehall/booking-service/restaurant/internal/model"
)

type Handler struct {
	restaurantSvc RestaurantService
	log           *zap.Logger
}

func New(restaurantSvc RestaurantService, log *zap.Logger) *Handler {
	return &Handler{
		restaurantSvc: restaurantSvc,
		log:           log,
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

	api.POST("/restaurants", h.CreateRestaurant)
	api.GET("/restaurants", h.ListRestaurants)
	api.GET("/restaurants/:id", h.GetRestaurant)
	api.PUT("/restaurants/:id", h.UpdateRestaurant)
	api.DELETE("/restaurants/:id", h.DeleteRestaurant)
	api.GET("/restaurants/:id/tables", h.ListTables)

	api.POST("/tables", h.CreateTable)
	api.GET("/tables/:id", h.GetTable)
	api.PUT("/tables/:id", h.UpdateTable)
	api.DELETE("/tables/:id", h.DeleteTable)

	api.POST("/availability/check", h.CheckAvailability)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) CheckAvailability(c echo.Context) error {
	var req model.CheckAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	resp, err := h.restaurantSvc.CheckAvailability(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, errs.ErrRestaurantNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreateRestaurant(c echo.Context) error {
	var req model.CreateRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rest, err := h.restaurantSvc.CreateRestaurant(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, rest)
}

func (h *Handler) GetRestaurant(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	rest, err := h.restaurantSvc.GetRestaurant(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrRestaurantNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rest)
}

func (h *Handler) ListRestaurants(c echo.Context) error {
	items, err := h.restaurantSvc.ListRestaurants(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateRestaurant(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req model.CreateRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rest, err := h.restaurantSvc.UpdateRestaurant(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, errs.ErrRestaurantNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rest)
}

func (h *Handler) DeleteRestaurant(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.restaurantSvc.DeleteRestaurant(c.Request().Context(), id); err != nil {
		if errors.Is(err, errs.ErrRestaurantNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CreateTable(c echo.Context) error {
	var req model.CreateTableRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	table, err := h.restaurantSvc.CreateTable(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, errs.ErrRestaurantNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, table)
}

func (h *Handler) GetTable(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	table, err := h.restaurantSvc.GetTable(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrTableNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, table)
}

func (h *Handler) ListTables(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.restaurantSvc.ListTables(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrRestaurantNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateTable(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req model.CreateTableRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	table, err := h.restaurantSvc.UpdateTable(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, errs.ErrTableNotFound) || errors.Is(err, errs.ErrRestaurantNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, table)
}

func (h *Handler) DeleteTable(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.restaurantSvc.DeleteTable(c.Request().Context(), id); err != nil {
		if errors.Is(err, errs.ErrTableNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
