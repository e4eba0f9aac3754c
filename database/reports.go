package database

import (
    "context"
    "fmt"
    "time"

    "arbt-storefront-api/models"
)

// DashboardSummary backs the admin landing page.
type DashboardSummary struct {
    TotalOrders     int     `json:"total_orders"`
    PendingOrders   int     `json:"pending_orders"`
    ConfirmedOrders int     `json:"confirmed_orders"`
    TotalBookings   int     `json:"total_bookings"`
    PendingBookings int     `json:"pending_bookings"`
    TotalRevenue    float64 `json:"total_revenue"`
    ReviewCount     int     `json:"review_count"`
    AverageRating   float64 `json:"average_rating"`
}

func (c *Connection) GetDashboardSummary() (*DashboardSummary, error) {
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    var s DashboardSummary
    err := c.db.QueryRowContext(ctx, `
        SELECT
            (SELECT COUNT(*) FROM orders),
            (SELECT COUNT(*) FROM orders WHERE status = 'pending'),
            (SELECT COUNT(*) FROM orders WHERE status = 'confirmed'),
            (SELECT COUNT(*) FROM bookings),
            (SELECT COUNT(*) FROM bookings WHERE status = 'pending'),
            (SELECT COALESCE(SUM(total), 0) FROM orders WHERE status IN ('confirmed', 'shipped', 'delivered')),
            (SELECT COUNT(*) FROM reviews),
            (SELECT COALESCE(AVG(rating), 0) FROM reviews)
    `).Scan(&s.TotalOrders, &s.PendingOrders, &s.ConfirmedOrders,
        &s.TotalBookings, &s.PendingBookings, &s.TotalRevenue,
        &s.ReviewCount, &s.AverageRating)
    if err != nil {
        return nil, fmt.Errorf("error building dashboard summary: %v", err)
    }
    return &s, nil
}

// GetOrdersPage returns one page of orders for the admin report table, newest
// first, along with the total row count for the pager.
func (c *Connection) GetOrdersPage(page, limit int) ([]models.Order, int, error) {
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    if page < 1 {
        page = 1
    }
    offset := (page - 1) * limit

    var total int
    if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
        return nil, 0, fmt.Errorf("error counting orders: %v", err)
    }

    rows, err := c.db.QueryContext(ctx, `
        SELECT order_id, user_id, items_json, subtotal, service_fee,
               total, payment_method, payment_proof, status, created_at
        FROM orders
        ORDER BY created_at DESC
        LIMIT ? OFFSET ?
    `, limit, offset)
    if err != nil {
        return nil, 0, fmt.Errorf("error listing orders page: %v", err)
    }
    defer rows.Close()

    orders, err := scanOrders(rows)
    if err != nil {
        return nil, 0, err
    }
    return orders, total, nil
}

// SalesRow aggregates confirmed revenue per day.
type SalesRow struct {
    Day        string  `json:"day"`
    OrderCount int     `json:"order_count"`
    Revenue    float64 `json:"revenue"`
}

func (c *Connection) GetSalesReport(from, to time.Time) ([]SalesRow, error) {
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    rows, err := c.db.QueryContext(ctx, `
        SELECT DATE(created_at) AS day, COUNT(*), COALESCE(SUM(total), 0)
        FROM orders
        WHERE status IN ('confirmed', 'shipped', 'delivered')
          AND created_at BETWEEN ? AND ?
        GROUP BY DATE(created_at)
        ORDER BY day DESC
    `, from, to)
    if err != nil {
        return nil, fmt.Errorf("error building sales report: %v", err)
    }
    defer rows.Close()

    var report []SalesRow
    for rows.Next() {
        var r SalesRow
        if err := rows.Scan(&r.Day, &r.OrderCount, &r.Revenue); err != nil {
            return nil, fmt.Errorf("error scanning sales row: %v", err)
        }
        report = append(report, r)
    }
    return report, rows.Err()
}
