package database

import (
    "context"
    "fmt"
    "time"

    "arbt-storefront-api/models"
)

func (c *Connection) CreateReview(rv *models.Review) (int, error) {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    result, err := c.db.ExecContext(ctx, `
        INSERT INTO reviews (user_id, name, rating, comment, created_at)
        VALUES (?, ?, ?, ?, NOW())
    `, rv.UserID, rv.Name, rv.Rating, rv.Comment)
    if err != nil {
        return 0, fmt.Errorf("error creating review: %v", err)
    }

    id, err := result.LastInsertId()
    if err != nil {
        return 0, fmt.Errorf("error getting review id: %v", err)
    }
    return int(id), nil
}

func (c *Connection) GetReviews(limit int) ([]models.Review, error) {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    rows, err := c.db.QueryContext(ctx, `
        SELECT id, user_id, name, rating, comment, created_at
        FROM reviews
        ORDER BY created_at DESC
        LIMIT ?
    `, limit)
    if err != nil {
        return nil, fmt.Errorf("error listing reviews: %v", err)
    }
    defer rows.Close()

    var reviews []models.Review
    for rows.Next() {
        var rv models.Review
        if err := rows.Scan(&rv.ID, &rv.UserID, &rv.Name, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
            return nil, fmt.Errorf("error scanning review: %v", err)
        }
        reviews = append(reviews, rv)
    }
    return reviews, rows.Err()
}

func (c *Connection) DeleteReview(id int) error {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    result, err := c.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
    if err != nil {
        return fmt.Errorf("error deleting review %d: %v", id, err)
    }
    return requireRowAffected(result, "review", id)
}
