package database

import (
    "context"
    "fmt"
    "time"

    "arbt-storefront-api/models"
)

func (c *Connection) CreateBooking(b *models.Booking) (int, error) {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    result, err := c.db.ExecContext(ctx, `
        INSERT INTO bookings (user_id, name, email, contact_number, service,
                              scheduled_at, status, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
    `, b.UserID, b.Name, b.Email, b.ContactNumber, b.Service, b.ScheduledAt, b.Status)
    if err != nil {
        return 0, fmt.Errorf("error creating booking: %v", err)
    }

    id, err := result.LastInsertId()
    if err != nil {
        return 0, fmt.Errorf("error getting booking id: %v", err)
    }
    return int(id), nil
}

func (c *Connection) GetBookingsByUser(userID string) ([]models.Booking, error) {
    return c.queryBookings(`
        SELECT id, user_id, name, email, contact_number, service,
               scheduled_at, status, created_at
        FROM bookings WHERE user_id = ?
        ORDER BY scheduled_at DESC
    `, userID)
}

func (c *Connection) GetAllBookings() ([]models.Booking, error) {
    return c.queryBookings(`
        SELECT id, user_id, name, email, contact_number, service,
               scheduled_at, status, created_at
        FROM bookings
        ORDER BY scheduled_at DESC
    `)
}

// GetUpcomingBookings returns approved bookings scheduled inside the window,
// used by the reminder job.
func (c *Connection) GetUpcomingBookings(within time.Duration) ([]models.Booking, error) {
    return c.queryBookings(`
        SELECT id, user_id, name, email, contact_number, service,
               scheduled_at, status, created_at
        FROM bookings
        WHERE status = ? AND scheduled_at BETWEEN NOW() AND ?
        ORDER BY scheduled_at ASC
    `, models.BookingStatusApproved, time.Now().Add(within))
}

func (c *Connection) SetBookingStatus(id int, status string) error {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    result, err := c.db.ExecContext(ctx, `
        UPDATE bookings SET status = ? WHERE id = ?
    `, status, id)
    if err != nil {
        return fmt.Errorf("error updating booking %d: %v", id, err)
    }
    return requireRowAffected(result, "booking", id)
}

func (c *Connection) queryBookings(query string, args ...interface{}) ([]models.Booking, error) {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    rows, err := c.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, fmt.Errorf("error listing bookings: %v", err)
    }
    defer rows.Close()

    var bookings []models.Booking
    for rows.Next() {
        var b models.Booking
        if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Email, &b.ContactNumber,
            &b.Service, &b.ScheduledAt, &b.Status, &b.CreatedAt); err != nil {
            return nil, fmt.Errorf("error scanning booking: %v", err)
        }
        bookings = append(bookings, b)
    }
    return bookings, rows.Err()
}
