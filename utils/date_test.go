package utils

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestWithinBookingWindow(t *testing.T) {
    // 2026-09-02 is a Wednesday
    wednesday := func(hour int) time.Time {
        return time.Date(2026, 9, 2, hour, 30, 0, 0, time.Local)
    }

    assert.False(t, WithinBookingWindow(wednesday(7)))
    assert.True(t, WithinBookingWindow(wednesday(8)))
    assert.True(t, WithinBookingWindow(wednesday(15)))
    assert.False(t, WithinBookingWindow(wednesday(16)), "4 PM is the exclusive upper bound")
    assert.False(t, WithinBookingWindow(wednesday(17)))

    saturday := time.Date(2026, 9, 5, 10, 0, 0, 0, time.Local)
    sunday := time.Date(2026, 9, 6, 10, 0, 0, 0, time.Local)
    assert.False(t, WithinBookingWindow(saturday))
    assert.False(t, WithinBookingWindow(sunday))
}

func TestParseBookingDatetime(t *testing.T) {
    got, err := ParseBookingDatetime("2026-09-02T09:15")
    assert.NoError(t, err)
    assert.Equal(t, 9, got.Hour())
    assert.Equal(t, 15, got.Minute())

    _, err = ParseBookingDatetime("next tuesday")
    assert.Error(t, err)
}

func TestRound(t *testing.T) {
    assert.Equal(t, 10.57, Round(10.566))
    assert.Equal(t, 0.30, Round(0.1*3))
}
