package database

import (
    "context"
    "database/sql"
    "encoding/json"
    "fmt"
    "log"
    "time"

    "arbt-storefront-api/models"
)

// CreateOrder stores the order row with its line items serialized alongside,
// inside one transaction. Orders start as pending; the worker confirms them.
func (c *Connection) CreateOrder(o *models.Order) error {
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    itemsJSON, err := json.Marshal(o.Items)
    if err != nil {
        return fmt.Errorf("error serializing order items: %v", err)
    }

    tx, err := c.db.BeginTx(ctx, nil)
    if err != nil {
        return fmt.Errorf("failed to begin transaction: %v", err)
    }
    defer tx.Rollback()

    _, err = tx.ExecContext(ctx, `
        INSERT INTO orders (order_id, user_id, items_json, subtotal, service_fee,
                            total, payment_method, payment_proof, status, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
    `, o.ID, o.UserID, string(itemsJSON), o.Subtotal, o.ServiceFee,
        o.Total, o.PaymentMethod, o.PaymentProof, o.Status)
    if err != nil {
        return fmt.Errorf("error creating order: %v", err)
    }

    for _, it := range o.Items {
        _, err = tx.ExecContext(ctx, `
            INSERT INTO order_items (order_id, product_id, name, price, quantity)
            VALUES (?, ?, ?, ?, ?)
        `, o.ID, it.ProductID, it.Name, it.Price, it.Quantity)
        if err != nil {
            return fmt.Errorf("error creating order item: %v", err)
        }
    }

    return tx.Commit()
}

func (c *Connection) GetOrderByID(orderID string) (*models.Order, error) {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    var o models.Order
    var itemsJSON string
    err := c.db.QueryRowContext(ctx, `
        SELECT order_id, user_id, items_json, subtotal, service_fee,
               total, payment_method, payment_proof, status, created_at
        FROM orders WHERE order_id = ?
    `, orderID).Scan(&o.ID, &o.UserID, &itemsJSON, &o.Subtotal, &o.ServiceFee,
        &o.Total, &o.PaymentMethod, &o.PaymentProof, &o.Status, &o.CreatedAt)
    if err != nil {
        return nil, err
    }

    if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
        log.Printf("Warning: order %s has unreadable items_json: %v", orderID, err)
        o.Items = nil
    }
    return &o, nil
}

func (c *Connection) GetOrdersByUser(userID string) ([]models.Order, error) {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    rows, err := c.db.QueryContext(ctx, `
        SELECT order_id, user_id, items_json, subtotal, service_fee,
               total, payment_method, payment_proof, status, created_at
        FROM orders WHERE user_id = ?
        ORDER BY created_at DESC
    `, userID)
    if err != nil {
        return nil, fmt.Errorf("error listing orders for user %s: %v", userID, err)
    }
    defer rows.Close()

    return scanOrders(rows)
}

// UpdateOrderStatus transitions an order. The expected status guards the
// worker's confirm-or-revert so a manual admin update cannot be clobbered.
func (c *Connection) UpdateOrderStatus(orderID, from, to string) error {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    result, err := c.db.ExecContext(ctx, `
        UPDATE orders SET status = ? WHERE order_id = ? AND status = ?
    `, to, orderID, from)
    if err != nil {
        return fmt.Errorf("error updating order %s status: %v", orderID, err)
    }

    rows, err := result.RowsAffected()
    if err != nil {
        return fmt.Errorf("error getting rows affected: %v", err)
    }
    if rows == 0 {
        return fmt.Errorf("order %s is not in status %q", orderID, from)
    }
    return nil
}

// SetOrderStatus sets the status unconditionally (admin back office).
func (c *Connection) SetOrderStatus(orderID, status string) error {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    result, err := c.db.ExecContext(ctx, `
        UPDATE orders SET status = ? WHERE order_id = ?
    `, status, orderID)
    if err != nil {
        return fmt.Errorf("error setting order %s status: %v", orderID, err)
    }

    rows, err := result.RowsAffected()
    if err != nil {
        return fmt.Errorf("error getting rows affected: %v", err)
    }
    if rows == 0 {
        return fmt.Errorf("no order found with id %s", orderID)
    }
    return nil
}

func scanOrders(rows *sql.Rows) ([]models.Order, error) {
    var orders []models.Order
    for rows.Next() {
        var o models.Order
        var itemsJSON string
        if err := rows.Scan(&o.ID, &o.UserID, &itemsJSON, &o.Subtotal, &o.ServiceFee,
            &o.Total, &o.PaymentMethod, &o.PaymentProof, &o.Status, &o.CreatedAt); err != nil {
            return nil, fmt.Errorf("error scanning order: %v", err)
        }
        if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
            log.Printf("Warning: order %s has unreadable items_json: %v", o.ID, err)
        }
        orders = append(orders, o)
    }
    return orders, rows.Err()
}
