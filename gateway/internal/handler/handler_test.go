package handler_test

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dinehall/booking-service/gateway/config"
	"github.com/dinehall/booking-service/gateway/internal/handler"
	"github.com/dinehall/booking-service/gateway/internal/model"
)

func testConfig(t *testing.T, restaurantURL, reservationURL string) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Auth: config.Auth{
			User:     "maitre",
			Password: "secret",
			TokenTTL: time.Hour,
		},
		RestaurantHTTPServer:  config.RestaurantHTTPServer{Timeout: time.Second},
		ReservationHTTPServer: config.ReservationHTTPServer{Timeout: time.Second},
	}
	if restaurantURL != "" {
		cfg.RestaurantHTTPServer.Host, cfg.RestaurantHTTPServer.Port = hostPort(t, restaurantURL)
	}
	if reservationURL != "" {
		cfg.ReservationHTTPServer.Host, cfg.ReservationHTTPServer.Port = hostPort(t, reservationURL)
	}
	return cfg
}

func hostPort(t *testing.T, rawURL string) (string, string) {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	host, port, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)
	return host, port
}

func login(t *testing.T, e http.Handler, user, password string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"user":"`+user+`","password":"`+password+`"}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		return w, ""
	}
	var resp model.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp.Token
}

func TestHandler_Login(t *testing.T) {
	h := handler.New(zap.NewNop(), testConfig(t, "", ""), nil)
	e := h.NewRouter()

	w, token := login(t, e, "maitre", "secret")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, token)

	w, _ = login(t, e, "maitre", "wrong")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_ApiRequiresToken(t *testing.T) {
	h := handler.New(zap.NewNop(), testConfig(t, "", ""), nil)
	e := h.NewRouter()

	r := httptest.NewRequest(http.MethodGet, "/api/v1/restaurants", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_ProxiesRestaurantWithToken(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/restaurants", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"De Kas"}]`))
	}))
	defer upstream.Close()

	h := handler.New(zap.NewNop(), testConfig(t, upstream.URL, ""), nil)
	e := h.NewRouter()

	_, token := login(t, e, "maitre", "secret")
	require.NotEmpty(t, token)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/restaurants", http.NoBody)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "De Kas")
}

func TestHandler_GetReservationEnriched(t *testing.T) {
	restaurantUpstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/restaurants/1":
			_, _ = w.Write([]byte(`{"id":1,"name":"De Kas","address":"Kamerlingh Onneslaan 3","phone":"+31204624562","email":"info@dekas.nl","isClosed":true}`))
		case "/api/v1/tables/7":
			_, _ = w.Write([]byte(`{"id":7,"tableNumber":"T7","capacity":4,"restaurantId":1}`))
		default:
			t.Errorf("unexpected restaurant-service path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer restaurantUpstream.Close()

	reservationUpstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/reservations/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":42,"restaurantId":1,"tableId":7,"customerName":"Ada","customerEmail":"ada@example.com","customerPhone":"+31612345678","date":"2026-09-15","time":"19:00","numberOfPeople":4,"status":"PENDING","canceledAt":null}`))
	}))
	defer reservationUpstream.Close()

	h := handler.New(zap.NewNop(), testConfig(t, restaurantUpstream.URL, reservationUpstream.URL), nil)
	e := h.NewRouter()

	_, token := login(t, e, "maitre", "secret")
	require.NotEmpty(t, token)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/42", http.NoBody)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp model.GetReservationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 42, resp.ID)
	require.Equal(t, "PENDING", resp.Status)
	require.NotNil(t, resp.Restaurant)
	require.Equal(t, "De Kas", resp.Restaurant.Name)
	require.True(t, resp.Restaurant.IsClosed)
	require.NotNil(t, resp.Table)
	require.Equal(t, "T7", resp.Table.TableNumber)
	require.Contains(t, w.Body.String(), `"isClosed":true`)
}
