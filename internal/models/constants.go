package models

const (
	StatusConfirmed = "confirmed"
)

const (
	// DateLayout is the calendar date format used across storage and the API.
	DateLayout = "2006-01-02"

	// TimeLayout is the 24-hour clock format of booking times.
	TimeLayout = "15:04"
)

const (
	// DefaultBookingsKey is the redis key holding the serialized collection.
	DefaultBookingsKey = "ssmv:bookings"

	// DefaultSessionTTL bounds admin sessions, in seconds.
	DefaultSessionTTL = 12 * 60 * 60
)
