package model

import (
	"time"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCheckedIn Status = "CHECKED_IN"
	StatusCompleted Status = "COMPLETED"
	StatusCanceled  Status = "CANCELED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// Occupying reports whether the status still holds the table for its slot.
func (s Status) Occupying() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn:
		return true
	}
	return false
}

type Reservation struct {
	ID             int64      `json:"id" db:"id"`
	RestaurantID   int64      `json:"restaurantId" db:"restaurant_id"`
	TableID        int64      `json:"tableId" db:"table_id"`
	CustomerName   string     `json:"customerName" db:"customer_name"`
	CustomerEmail  string     `json:"customerEmail" db:"customer_email"`
	CustomerPhone  string     `json:"customerPhone" db:"customer_phone"`
	Date           string     `json:"date" db:"reservation_date"`
	Time           string     `json:"time" db:"reservation_time"`
	NumberOfPeople int        `json:"numberOfPeople" db:"number_of_people"`
	Status         Status     `json:"status" db:"status"`
	CanceledAt     *time.Time `json:"canceledAt" db:"canceled_at"`
	CreatedAt      time.Time  `json:"-" db:"created_at"`
	UpdatedAt      time.Time  `json:"-" db:"updated_at"`
}

type CreateReservationRequest struct {
	RestaurantID   int64  `json:"restaurantId" validate:"required"`
	CustomerName   string `json:"customerName" validate:"required"`
	CustomerEmail  string `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone  string `json:"customerPhone" validate:"required"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	Time           string `json:"time" validate:"required,datetime=15:04"`
	NumberOfPeople int    `json:"numberOfPeople" validate:"required,min=1,max=20"`
}

type SearchReservationsRequest struct {
	RestaurantID int64  `json:"restaurantId" validate:"required"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Time         string `json:"time" validate:"required,datetime=15:04"`
}

// Restaurant-service availability RPC shapes.

type CheckAvailabilityRequest struct {
	RestaurantID   int64  `json:"restaurantId"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	NumberOfPeople int    `json:"numberOfPeople"`
}

type Table struct {
	ID           int64  `json:"id"`
	TableNumber  string `json:"tableNumber"`
	Capacity     int    `json:"capacity"`
	RestaurantID int64  `json:"restaurantId"`
}

type AvailabilityResponse struct {
	Closed          bool    `json:"closed"`
	Available       bool    `json:"available"`
	Message         string  `json:"message"`
	AvailableTables []Table `json:"availableTables"`
}
