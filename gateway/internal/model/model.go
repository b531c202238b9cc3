package model

import "time"

type Restaurant struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	IsClosed bool   `json:"isClosed"`
}

type Table struct {
	ID           int    `json:"id"`
	TableNumber  string `json:"tableNumber"`
	Capacity     int    `json:"capacity"`
	RestaurantID int    `json:"restaurantId"`
}

type Reservation struct {
	ID             int        `json:"id"`
	RestaurantID   int        `json:"restaurantId"`
	TableID        int        `json:"tableId"`
	CustomerName   string     `json:"customerName"`
	CustomerPhone  string     `json:"customerPhone"`
	CustomerEmail  string     `json:"customerEmail"`
	Date           string     `json:"date"`
	Time           string     `json:"time"`
	NumberOfPeople int        `json:"numberOfPeople"`
	Status         string     `json:"status"`
	CanceledAt     *time.Time `json:"canceledAt,omitempty"`
}

type CreateReservationRequest struct {
	RestaurantID   int    `json:"restaurantId" validate:"required,min=1"`
	CustomerName   string `json:"customerName" validate:"required"`
	CustomerPhone  string `json:"customerPhone" validate:"required"`
	CustomerEmail  string `json:"customerEmail" validate:"omitempty,email"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	Time           string `json:"time" validate:"required,datetime=15:04"`
	NumberOfPeople int    `json:"numberOfPeople" validate:"required,min=1,max=20"`
}

// GetReservationResponse is a reservation enriched with the restaurant
// and table it points at.
type GetReservationResponse struct {
	Reservation
	Restaurant *Restaurant `json:"restaurant,omitempty"`
	Table      *Table      `json:"table,omitempty"`
}

type LoginRequest struct {
	User     string `json:"user" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

// Reservation event types published to the stats topic.
const (
	EventReservationCreated   = "reservation_created"
	EventReservationConfirmed = "reservation_confirmed"
	EventReservationRejected  = "reservation_rejected"
	EventReservationCheckedIn = "reservation_checked_in"
	EventReservationCompleted = "reservation_completed"
	EventReservationCanceled  = "reservation_canceled"
)

type ReservationEvent struct {
	EventID       string    `json:"eventId"`
	Type          string    `json:"type"`
	ReservationID int       `json:"reservationId"`
	RestaurantID  int       `json:"restaurantId"`
	At            time.Time `json:"at"`
}
