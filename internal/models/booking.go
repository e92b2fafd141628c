package models

import "time"

// Booking is a single reserved appointment. Date and Time stay strings on
// the wire ("2006-01-02" / "15:04") to match the public API contract.
type Booking struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	NumberOfPeople int       `json:"numberOfPeople"`
	Details        string    `json:"details"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// BookingInput carries the raw form fields of a booking request.
// NumberOfPeople arrives as a numeric string from HTML forms and legacy
// clients; repositories parse it on create.
type BookingInput struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	Time           string `json:"time" validate:"required,datetime=15:04"`
	NumberOfPeople string `json:"numberOfPeople" validate:"required,number"`
	Details        string `json:"details"`
}

type Stats struct {
	TotalBookings int `json:"total_bookings"`
	TodayBookings int `json:"today_bookings"`
	TotalPeople   int `json:"total_people"`
}
