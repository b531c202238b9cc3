package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dinehall/booking-service/pkg/validate"
	"github.com/dinehall/booking-service/reservation/internal/errs"
	"github.com/dinehall/booking-service/reservation/internal/handler"
	service_mocks "github.com/dinehall/booking-service/reservation/internal/handler/mocks"
	"github.com/dinehall/booking-service/reservation/internal/model"
)

func TestHandler_CreateReservation(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockReservationService)

	okBody := `{"restaurantId":1,"customerName":"Ada","customerPhone":"+31612345678","customerEmail":"ada@example.com","date":"2026-09-15","time":"19:00","numberOfPeople":4}`
	okReq := model.CreateReservationRequest{
		RestaurantID:   1,
		CustomerName:   "Ada",
		CustomerPhone:  "+31612345678",
		CustomerEmail:  "ada@example.com",
		Date:           "2026-09-15",
		Time:           "19:00",
		NumberOfPeople: 4,
	}

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: okBody,
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					CreateReservation(gomock.Any(), okReq).
					Return(model.Reservation{
						ID:             42,
						RestaurantID:   1,
						TableID:        7,
						CustomerName:   "Ada",
						CustomerEmail:  "ada@example.com",
						CustomerPhone:  "+31612345678",
						Date:           "2026-09-15",
						Time:           "19:00",
						NumberOfPeople: 4,
						Status:         model.StatusPending,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"id":42,"restaurantId":1,"tableId":7,"customerName":"Ada","customerEmail":"ada@example.com","customerPhone":"+31612345678","date":"2026-09-15","time":"19:00","numberOfPeople":4,"status":"PENDING","canceledAt":null}`,
			},
		},
		{
			name:         "err. bad date format",
			body:         `{"restaurantId":1,"customerName":"Ada","customerPhone":"+31612345678","date":"15-09-2026","time":"19:00","numberOfPeople":4}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
		{
			name: "err. no availability",
			body: okBody,
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					CreateReservation(gomock.Any(), okReq).
					Return(model.Reservation{}, fmt.Errorf("no tables available for 4 people on 2026-09-15 19:00: %w", errs.ErrNoAvailability))
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"no tables available for 4 people on 2026-09-15 19:00: no availability"}`,
			},
		},
		{
			name: "err. unknown restaurant",
			body: okBody,
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					CreateReservation(gomock.Any(), okReq).
					Return(model.Reservation{}, fmt.Errorf("restaurant 1: %w", errs.ErrNotFound))
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"restaurant 1: reservation not found"}`,
			},
		},
		{
			name: "err. restaurant-service unreachable",
			body: okBody,
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					CreateReservation(gomock.Any(), okReq).
					Return(model.Reservation{}, &errs.ServiceCommunicationError{
						StatusCode: 0,
						Err:        fmt.Errorf("connection refused"),
					})
			},
			response: response{
				expectedCode: http.StatusServiceUnavailable,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockReservationService(c)
			tt.mockBehavior(svc)
			h := handler.New(svc, zap.NewExample().Named("test"))

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/reservations", h.CreateReservation)

			r := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_Transitions(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockReservationService)

	var tests = []struct {
		name         string
		path         string
		mockBehavior mockBehavior
		expectedCode int
	}{
		{
			name: "confirm ok",
			path: "/reservations/42/confirm",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					ConfirmReservation(gomock.Any(), int64(42)).
					Return(model.Reservation{ID: 42, Status: model.StatusConfirmed}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "reject ok",
			path: "/reservations/42/reject",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					RejectReservation(gomock.Any(), int64(42)).
					Return(model.Reservation{ID: 42, Status: model.StatusCanceled}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "check-in ok",
			path: "/reservations/42/check-in",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					CheckInReservation(gomock.Any(), int64(42)).
					Return(model.Reservation{ID: 42, Status: model.StatusCheckedIn}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "complete ok",
			path: "/reservations/42/complete",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					CompleteReservation(gomock.Any(), int64(42)).
					Return(model.Reservation{ID: 42, Status: model.StatusCompleted}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "err. confirm a completed reservation",
			path: "/reservations/42/confirm",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					ConfirmReservation(gomock.Any(), int64(42)).
					Return(model.Reservation{}, fmt.Errorf("move from PENDING to CONFIRMED matched no rows, status at re-read: COMPLETED: %w", errs.ErrInvalidStatusTransition))
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "err. unknown reservation",
			path: "/reservations/999/confirm",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					ConfirmReservation(gomock.Any(), int64(999)).
					Return(model.Reservation{}, errs.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "err. invalid id",
			path:         "/reservations/abc/confirm",
			mockBehavior: func(r *service_mocks.MockReservationService) {},
			expectedCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockReservationService(c)
			tt.mockBehavior(svc)
			h := handler.New(svc, zap.NewExample().Named("test"))

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.PATCH("/reservations/:id/confirm", h.ConfirmReservation)
			e.PATCH("/reservations/:id/reject", h.RejectReservation)
			e.PATCH("/reservations/:id/check-in", h.CheckInReservation)
			e.PATCH("/reservations/:id/complete", h.CompleteReservation)

			r := httptest.NewRequest(http.MethodPatch, tt.path, http.NoBody)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestHandler_CancelReservation(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockReservationService(c)
	svc.EXPECT().
		CancelReservation(gomock.Any(), int64(42)).
		Return(model.Reservation{ID: 42, Status: model.StatusCanceled}, nil)
	h := handler.New(svc, zap.NewExample().Named("test"))

	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	e.DELETE("/reservations/:id", h.CancelReservation)

	r := httptest.NewRequest(http.MethodDelete, "/reservations/42", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"CANCELED"`)
}

func TestHandler_SearchReservations(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockReservationService(c)
	svc.EXPECT().
		SearchReservations(gomock.Any(), model.SearchReservationsRequest{
			RestaurantID: 1,
			Date:         "2026-09-15",
			Time:         "19:00",
		}).
		Return([]model.Reservation{
			{ID: 1, RestaurantID: 1, TableID: 7, Date: "2026-09-15", Time: "19:00", Status: model.StatusConfirmed},
			{ID: 2, RestaurantID: 1, TableID: 9, Date: "2026-09-15", Time: "19:00", Status: model.StatusCanceled},
		}, nil)
	h := handler.New(svc, zap.NewExample().Named("test"))

	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	e.POST("/reservations/search", h.SearchReservations)

	r := httptest.NewRequest(http.MethodPost, "/reservations/search",
		strings.NewReader(`{"restaurantId":1,"date":"2026-09-15","time":"19:00"}`))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	// Status filtering is the caller's concern; the search returns every row
	// for the slot, canceled included.
	require.Contains(t, w.Body.String(), `"status":"CANCELED"`)
	require.Contains(t, w.Body.String(), `"status":"CONFIRMED"`)
}
