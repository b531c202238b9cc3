package model

import "time"

const (
	EventReservationCreated   = "reservation_created"
	EventReservationConfirmed = "reservation_confirmed"
	EventReservationRejected  = "reservation_rejected"
	EventReservationCheckedIn = "reservation_checked_in"
	EventReservationCompleted = "reservation_completed"
	EventReservationCanceled  = "reservation_canceled"
)

// ReservationEvent is the message published by the gateway for every
// reservation lifecycle change.
type ReservationEvent struct {
	EventID       string    `json:"eventId"`
	Type          string    `json:"type"`
	ReservationID int       `json:"reservationId"`
	RestaurantID  int       `json:"restaurantId"`
	At            time.Time `json:"at"`
}

type RestaurantStats struct {
	RestaurantID int       `json:"restaurantId" db:"restaurant_id"`
	EventType    string    `json:"eventType" db:"event_type"`
	Total        int64     `json:"total" db:"total"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
