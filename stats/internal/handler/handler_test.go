package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dinehall/booking-service/stats/internal/handler"
	service_mocks "github.com/dinehall/booking-service/stats/internal/handler/mocks"
	"github.com/dinehall/booking-service/stats/internal/model"
)

func TestHandler_StatsByRestaurant(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(s *service_mocks.MockStatsService)

	updatedAt := time.Date(2026, 9, 15, 19, 0, 0, 0, time.UTC)

	var tests = []struct {
		name         string
		target       string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:   "ok",
			target: "/api/v1/stats/1",
			mockBehavior: func(s *service_mocks.MockStatsService) {
				s.EXPECT().StatsByRestaurant(gomock.Any(), int64(1)).
					Return([]model.RestaurantStats{
						{RestaurantID: 1, EventType: model.EventReservationCreated, Total: 12, UpdatedAt: updatedAt},
						{RestaurantID: 1, EventType: model.EventReservationCanceled, Total: 3, UpdatedAt: updatedAt},
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `[{"restaurantId":1,"eventType":"reservation_created","total":12,"updatedAt":"2026-09-15T19:00:00Z"},{"restaurantId":1,"eventType":"reservation_canceled","total":3,"updatedAt":"2026-09-15T19:00:00Z"}]`,
			},
		},
		{
			name:   "no events yet",
			target: "/api/v1/stats/7",
			mockBehavior: func(s *service_mocks.MockStatsService) {
				s.EXPECT().StatsByRestaurant(gomock.Any(), int64(7)).
					Return([]model.RestaurantStats{}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `[]`,
			},
		},
		{
			name:         "invalid restaurant id",
			target:       "/api/v1/stats/abc",
			mockBehavior: func(s *service_mocks.MockStatsService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"invalid restaurantId"}`,
			},
		},
		{
			name:   "storage failure",
			target: "/api/v1/stats/1",
			mockBehavior: func(s *service_mocks.MockStatsService) {
				s.EXPECT().StatsByRestaurant(gomock.Any(), int64(1)).
					Return(nil, errors.New("db is down"))
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"db is down"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockStatsService(c)
			tt.mockBehavior(svc)

			e := handler.New(svc, zap.NewNop()).NewRouter()

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			e.ServeHTTP(w, req)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}
