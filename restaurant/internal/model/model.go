package model

import (
	"time"
)

type Restaurant struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Address   string    `json:"address" db:"address"`
	Phone     string    `json:"phone" db:"phone"`
	Email     string    `json:"email" db:"email"`
	IsClosed  bool      `json:"isClosed" db:"is_closed"`
	CreatedAt time.Time `json:"-" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}

// Table carries only the owning restaurant id, never the restaurant itself.
type Table struct {
	ID           int64     `json:"id" db:"id"`
	TableNumber  string    `json:"tableNumber" db:"table_number"`
	Capacity     int       `json:"capacity" db:"capacity"`
	RestaurantID int64     `json:"restaurantId" db:"restaurant_id"`
	CreatedAt    time.Time `json:"-" db:"created_at"`
	UpdatedAt    time.Time `json:"-" db:"updated_at"`
}

type CreateRestaurantRequest struct {
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	IsClosed bool   `json:"isClosed"`
}

type CreateTableRequest struct {
	TableNumber  string `json:"tableNumber" validate:"required"`
	Capacity     int    `json:"capacity" validate:"required,gt=0"`
	RestaurantID int64  `json:"restaurantId" validate:"required"`
}

type CheckAvailabilityRequest struct {
	RestaurantID   int64  `json:"restaurantId" validate:"required"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	Time           string `json:"time" validate:"required,datetime=15:04"`
	NumberOfPeople int    `json:"numberOfPeople" validate:"required,min=1,max=20"`
}

type AvailabilityResponse struct {
	Closed          bool    `json:"closed"`
	Available       bool    `json:"available"`
	Message         string  `json:"message"`
	AvailableTables []Table `json:"availableTables"`
}

// Reservation mirrors the reservation-service search payload. Only the fields
// the availability check needs are read, the rest ride along for logging.
type Reservation struct {
	ID           int64  `json:"id"`
	RestaurantID int64  `json:"restaurantId"`
	TableID      int64  `json:"tableId"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Status       string `json:"status"`
}

type SearchReservationsRequest struct {
	RestaurantID int64  `json:"restaurantId"`
	Date         string `json:"date"`
	Time         string `json:"time"`
}
