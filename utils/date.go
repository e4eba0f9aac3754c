package utils

import (
    "time"
)

// Booking window: Monday through Friday, 8:00 inclusive to 16:00 exclusive,
// local time.
const (
    BookingOpenHour  = 8
    BookingCloseHour = 16
)

// WithinBookingWindow reports whether t falls inside business hours.
func WithinBookingWindow(t time.Time) bool {
    switch t.Weekday() {
    case time.Saturday, time.Sunday:
        return false
    }
    h := t.Hour()
    return h >= BookingOpenHour && h < BookingCloseHour
}

// ParseBookingDatetime accepts the datetime-local format the booking form
// submits ("2006-01-02T15:04") plus RFC 3339 as a fallback.
func ParseBookingDatetime(value string) (time.Time, error) {
    if t, err := time.ParseInLocation("2006-01-02T15:04", value, time.Local); err == nil {
        return t, nil
    }
    return time.Parse(time.RFC3339, value)
}
