package handlers

import (
    "bytes"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "arbt-storefront-api/models"
)

// nextWeekday returns the next occurrence of a weekday slot inside the
// booking window, formatted the way the booking form submits it.
func nextWeekdaySlot(t *testing.T) string {
    t.Helper()
    d := time.Now().AddDate(0, 0, 1)
    for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
        d = d.AddDate(0, 0, 1)
    }
    slot := time.Date(d.Year(), d.Month(), d.Day(), 10, 0, 0, 0, time.Local)
    return slot.Format("2006-01-02T15:04")
}

func postBooking(t *testing.T, h *BookingHandler, req models.BookingRequest) *httptest.ResponseRecorder {
    t.Helper()
    body, err := json.Marshal(req)
    require.NoError(t, err)

    r := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
    w := httptest.NewRecorder()
    h.CreateBooking(w, r)
    return w
}

// Rejection paths never reach storage, so a zero handler is enough to
// exercise the validation rules.
func TestCreateBookingRejectsBadContactNumber(t *testing.T) {
    h := &BookingHandler{}

    for _, contact := range []string{"", "9171234567", "0917123456", "09171234567x", "+639171234567"} {
        w := postBooking(t, h, models.BookingRequest{
            Name:          "Juan dela Cruz",
            Email:         "juan@example.com",
            ContactNumber: contact,
            Service:       "roof repair",
            Datetime:      nextWeekdaySlot(t),
        })
        assert.Equal(t, http.StatusBadRequest, w.Code, "contact %q should be rejected", contact)
    }
}

func TestCreateBookingAcceptsValidContactFormat(t *testing.T) {
    assert.True(t, contactNumberPattern.MatchString("09171234567"))
    assert.True(t, contactNumberPattern.MatchString("09998887777"))
    assert.False(t, contactNumberPattern.MatchString("08171234567"))
}

func TestCreateBookingRejectsWeekendSlot(t *testing.T) {
    h := &BookingHandler{}

    d := time.Now()
    for d.Weekday() != time.Saturday {
        d = d.AddDate(0, 0, 1)
    }
    slot := time.Date(d.Year(), d.Month(), d.Day(), 10, 0, 0, 0, time.Local)

    w := postBooking(t, h, models.BookingRequest{
        Name:          "Juan dela Cruz",
        Email:         "juan@example.com",
        ContactNumber: "09171234567",
        Service:       "roof repair",
        Datetime:      slot.Format("2006-01-02T15:04"),
    })
    assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingRejectsOutOfHoursSlot(t *testing.T) {
    h := &BookingHandler{}

    d := time.Now().AddDate(0, 0, 1)
    for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
        d = d.AddDate(0, 0, 1)
    }

    // 4PM is already outside the window; 7AM is before it opens.
    for _, hour := range []int{16, 7} {
        slot := time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.Local)
        w := postBooking(t, h, models.BookingRequest{
            Name:          "Juan dela Cruz",
            Email:         "juan@example.com",
            ContactNumber: "09171234567",
            Service:       "roof repair",
            Datetime:      slot.Format("2006-01-02T15:04"),
        })
        assert.Equal(t, http.StatusBadRequest, w.Code, "hour %d should be rejected", hour)
    }
}

func TestCreateBookingRejectsMalformedDatetime(t *testing.T) {
    h := &BookingHandler{}

    w := postBooking(t, h, models.BookingRequest{
        Name:          "Juan dela Cruz",
        Email:         "juan@example.com",
        ContactNumber: "09171234567",
        Service:       "roof repair",
        Datetime:      "next tuesday",
    })
    assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingRejectsMissingFields(t *testing.T) {
    h := &BookingHandler{}

    w := postBooking(t, h, models.BookingRequest{
        Email:         "juan@example.com",
        ContactNumber: "09171234567",
        Datetime:      nextWeekdaySlot(t),
    })
    assert.Equal(t, http.StatusBadRequest, w.Code)
}
