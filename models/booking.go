package models

import "time"

const (
    BookingStatusPending   = "pending"
    BookingStatusApproved  = "approved"
    BookingStatusCompleted = "completed"
    BookingStatusCancelled = "cancelled"
)

type Booking struct {
    ID            int       `json:"id"`
    UserID        string    `json:"user_id"`
    Name          string    `json:"name"`
    Email         string    `json:"email"`
    ContactNumber string    `json:"contact_number"`
    Service       string    `json:"service"`
    ScheduledAt   time.Time `json:"datetime"`
    Status        string    `json:"status"`
    CreatedAt     time.Time `json:"created_at"`
}

type BookingRequest struct {
    Name          string `json:"name"`
    Email         string `json:"email"`
    ContactNumber string `json:"contact_number"`
    Service       string `json:"service"`
    Datetime      string `json:"datetime"`
}

type BookingStatusUpdate struct {
    Status string `json:"status"`
}
