package database

import (
    "context"
    "database/sql"
    "fmt"
    "time"

    "arbt-storefront-api/models"
)

func (c *Connection) CreateUser(u *models.User) error {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    _, err := c.db.ExecContext(ctx, `
        INSERT INTO users (id, name, email, contact_number, passphrase, is_admin, created_at)
        VALUES (?, ?, ?, ?, ?, ?, NOW())
    `, u.ID, u.Name, u.Email, u.ContactNumber, u.Passphrase, u.IsAdmin)
    if err != nil {
        return fmt.Errorf("error creating user: %v", err)
    }
    return nil
}

func (c *Connection) GetUserByEmail(email string) (*models.User, error) {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    var u models.User
    err := c.db.QueryRowContext(ctx, `
        SELECT id, name, email, contact_number, passphrase, is_admin
        FROM users WHERE email = ?
    `, email).Scan(&u.ID, &u.Name, &u.Email, &u.ContactNumber, &u.Passphrase, &u.IsAdmin)
    if err != nil {
        return nil, err
    }
    return &u, nil
}

// EmailTaken reports whether an account already exists for email.
func (c *Connection) EmailTaken(email string) (bool, error) {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    var exists bool
    err := c.db.QueryRowContext(ctx, `
        SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)
    `, email).Scan(&exists)
    if err != nil && err != sql.ErrNoRows {
        return false, fmt.Errorf("error checking email availability: %v", err)
    }
    return exists, nil
}

// GetUserServiceFee returns the per-user shipping/service fee when one is
// configured. sql.ErrNoRows means the default fee applies.
func (c *Connection) GetUserServiceFee(userID string) (float64, error) {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    var fee float64
    err := c.db.QueryRowContext(ctx, `
        SELECT shipping_fee FROM user_shipping_fees WHERE user_id = ?
    `, userID).Scan(&fee)
    if err != nil {
        return 0, err
    }
    return fee, nil
}
