package handlers

import (
    "encoding/json"
    "log"
    "net/http"
    "regexp"
    "strconv"
    "time"

    "github.com/gorilla/mux"

    "arbt-storefront-api/database"
    "arbt-storefront-api/middleware"
    "arbt-storefront-api/models"
    "arbt-storefront-api/queue"
    "arbt-storefront-api/services/email"
    "arbt-storefront-api/utils"
)

// PH mobile numbers only: 09 followed by nine digits.
var contactNumberPattern = regexp.MustCompile(`^09[0-9]{9}$`)

type BookingHandler struct {
    db     *database.Connection
    queue  *queue.Queue
    mailer email.Sender
}

func NewBookingHandler(db *database.Connection, q *queue.Queue, mailer email.Sender) *BookingHandler {
    return &BookingHandler{db: db, queue: q, mailer: mailer}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
    var req models.BookingRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
        return
    }

    if req.Name == "" || req.Email == "" || req.Service == "" {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Name, email and service are required")
        return
    }
    if !contactNumberPattern.MatchString(req.ContactNumber) {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Contact number must match 09XXXXXXXXX")
        return
    }

    scheduledAt, err := utils.ParseBookingDatetime(req.Datetime)
    if err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid booking date and time")
        return
    }
    if !utils.WithinBookingWindow(scheduledAt) {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Bookings are accepted Monday to Friday, 8AM to 4PM")
        return
    }

    booking := &models.Booking{
        Name:          req.Name,
        Email:         req.Email,
        ContactNumber: req.ContactNumber,
        Service:       req.Service,
        ScheduledAt:   scheduledAt,
        Status:        models.BookingStatusPending,
    }
    if user := middleware.GetUserFromContext(r.Context()); user != nil {
        booking.UserID = user.UserID
    }

    id, err := h.db.CreateBooking(booking)
    if err != nil {
        log.Printf("Error creating booking: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to create booking")
        return
    }
    booking.ID = id

    // Confirmation mail goes out inline; the reminder closer to the slot is
    // queued for the worker.
    if err := h.mailer.SendEmail(booking.Email, "ARBT booking received", email.BookingConfirmationBody(booking)); err != nil {
        log.Printf("Warning: failed to send booking confirmation for booking %d: %v", id, err)
    }
    if delay := time.Until(scheduledAt.Add(-24 * time.Hour)); delay > 0 {
        if err := h.queue.EnqueueDelayed(r.Context(), queue.JobTypeBookingReminder, map[string]interface{}{
            "booking_id": id,
        }, delay); err != nil {
            log.Printf("Warning: failed to schedule reminder for booking %d: %v", id, err)
        }
    }

    utils.SendJSON(w, http.StatusCreated, booking)
}

// GetMyBookings lists the signed-in user's bookings.
func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
    user := middleware.GetUserFromContext(r.Context())
    if user == nil {
        utils.SendErrorResponse(w, http.StatusUnauthorized, "Authentication required")
        return
    }

    bookings, err := h.db.GetBookingsByUser(user.UserID)
    if err != nil {
        log.Printf("Error loading bookings for user %s: %v", user.UserID, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to load bookings")
        return
    }

    if bookings == nil {
        bookings = []models.Booking{}
    }
    utils.SendJSON(w, http.StatusOK, bookings)
}

// GetAllBookings backs the admin appointments page.
func (h *BookingHandler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
    bookings, err := h.db.GetAllBookings()
    if err != nil {
        log.Printf("Error loading bookings: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to load bookings")
        return
    }

    if bookings == nil {
        bookings = []models.Booking{}
    }
    utils.SendJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.Atoi(mux.Vars(r)["id"])
    if err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid booking id")
        return
    }

    var update models.BookingStatusUpdate
    if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
        return
    }

    switch update.Status {
    case models.BookingStatusApproved, models.BookingStatusCompleted, models.BookingStatusCancelled:
    default:
        utils.SendErrorResponse(w, http.StatusBadRequest, "Unknown booking status")
        return
    }

    if err := h.db.SetBookingStatus(id, update.Status); err != nil {
        log.Printf("Error updating booking %d status: %v", id, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to update booking status")
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{Status: "success", Message: "Booking status updated"})
}
