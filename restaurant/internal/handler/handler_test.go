package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dinehall/booking-service/pkg/validate"
	"github.com/dinehall/booking-service/restaurant/internal/errs"
	"github.com/dinehall/booking-service/restaurant/internal/handler"
	service_mocks "github.com/dinehall/booking-service/restaurant/internal/handler/mocks"
	"github.com/dinehall/booking-service/restaurant/internal/model"
)

func TestHandler_CheckAvailability(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockRestaurantService)

	okBody := `{"restaurantId":1,"date":"2026-09-15","time":"19:00","numberOfPeople":4}`
	okReq := model.CheckAvailabilityRequest{
		RestaurantID:   1,
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
			mockBehavior: func(r *service_mocks.MockRestaurantService) {
				r.EXPECT().
					CheckAvailability(gomock.Any(), okReq).
					Return(model.AvailabilityResponse{
						Available: true,
						Message:   "1 tables available",
						AvailableTables: []model.Table{
							{ID: 7, TableNumber: "T7", Capacity: 4, RestaurantID: 1},
						},
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"closed":false,"available":true,"message":"1 tables available","availableTables":[{"id":7,"tableNumber":"T7","capacity":4,"restaurantId":1}]}`,
			},
		},
		{
			name: "ok closed",
			body: okBody,
			mockBehavior: func(r *service_mocks.MockRestaurantService) {
				r.EXPECT().
					CheckAvailability(gomock.Any(), okReq).
					Return(model.AvailabilityResponse{
						Closed:          true,
						Message:         "Restaurant is currently closed",
						AvailableTables: []model.Table{},
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"closed":true,"available":false,"message":"Restaurant is currently closed","availableTables":[]}`,
			},
		},
		{
			name: "err. unknown restaurant",
			body: okBody,
			mockBehavior: func(r *service_mocks.MockRestaurantService) {
				r.EXPECT().
					CheckAvailability(gomock.Any(), okReq).
					Return(model.AvailabilityResponse{}, errs.ErrRestaurantNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"restaurant not found"}`,
			},
		},
		{
			name:         "err. party size out of range",
			body:         `{"restaurantId":1,"date":"2026-09-15","time":"19:00","numberOfPeople":25}`,
			mockBehavior: func(r *service_mocks.MockRestaurantService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
		{
			name:         "err. bad time format",
			body:         `{"restaurantId":1,"date":"2026-09-15","time":"7pm","numberOfPeople":4}`,
			mockBehavior: func(r *service_mocks.MockRestaurantService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockRestaurantService(c)
			tt.mockBehavior(svc)
			h := handler.New(svc, zap.NewExample().Named("test"))

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/availability/check", h.CheckAvailability)

			r := httptest.NewRequest(http.MethodPost, "/availability/check", strings.NewReader(tt.body))
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

func TestHandler_GetRestaurant(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockRestaurantService)

	var tests = []struct {
		name         string
		path         string
		mockBehavior mockBehavior
		expectedCode int
	}{
		{
			name: "ok",
			path: "/restaurants/1",
			mockBehavior: func(r *service_mocks.MockRestaurantService) {
				r.EXPECT().
					GetRestaurant(gomock.Any(), int64(1)).
					Return(model.Restaurant{ID: 1, Name: "De Kas", Address: "Kamerlingh Onneslaan 3"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "err. not found",
			path: "/restaurants/99",
			mockBehavior: func(r *service_mocks.MockRestaurantService) {
				r.EXPECT().
					GetRestaurant(gomock.Any(), int64(99)).
					Return(model.Restaurant{}, errs.ErrRestaurantNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "err. invalid id",
			path:         "/restaurants/abc",
			mockBehavior: func(r *service_mocks.MockRestaurantService) {},
			expectedCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockRestaurantService(c)
			tt.mockBehavior(svc)
			h := handler.New(svc, zap.NewExample().Named("test"))

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.GET("/restaurants/:id", h.GetRestaurant)

			r := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
