// Package format holds the pure display-string helpers shared by the web
// renderers and exports.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

var monthAbbr = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Time converts a 24-hour "HH:MM" string to "h:MM AM/PM" with the
// 0 -> 12 wraparound. Minutes keep their zero padding.
func Time(value string) (string, error) {
	h, m, err := splitClock(value)
	if err != nil {
		return "", err
	}

	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	hour := h % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, m, ampm), nil
}

// Date converts "YYYY-MM-DD" to "Mon D, YYYY" using a fixed month table.
// The date is treated as a plain calendar value, never shifted through UTC.
func Date(value string) (string, error) {
	year, month, day, err := splitDate(value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %d, %d", monthAbbr[month-1], day, year), nil
}

// Weekday returns the long weekday name for a "YYYY-MM-DD" date, used as the
// booking-form day hint. Zeller's congruence keeps this free of time zones.
func Weekday(value string) (string, error) {
	year, month, day, err := splitDate(value)
	if err != nil {
		return "", err
	}

	y, m := year, month
	if m < 3 {
		m += 12
		y--
	}
	k := y % 100
	j := y / 100
	h := (day + 13*(m+1)/5 + k + k/4 + j/4 + 5*j) % 7

	names := [7]string{"Saturday", "Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	return names[h], nil
}

func splitClock(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q: expected HH:MM", value)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: %w", value, err)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: %w", value, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time %q: out of range", value)
	}
	return hour, minute, nil
}

func splitDate(value string) (year, month, day int, err error) {
	parts := strings.Split(value, "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid date %q: %w", value, err)
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid date %q: %w", value, err)
	}
	day, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid date %q: %w", value, err)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, 0, fmt.Errorf("invalid date %q: out of range", value)
	}
	return year, month, day, nil
}
