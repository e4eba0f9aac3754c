package database

import (
    "context"
    "database/sql"
    "fmt"
    "time"

    "arbt-storefront-api/models"
)

// GetProducts returns the live catalog. Archived products stay out of the
// storefront but remain visible in the admin archive view.
func (c *Connection) GetProducts(includeArchived bool) ([]models.Product, error) {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    query := `
        SELECT id, name, image, price, tag, description, archived
        FROM products
        WHERE deleted_at IS NULL
    `
    if !includeArchived {
        query += ` AND archived = 0`
    }
    query += ` ORDER BY id ASC`

    rows, err := c.db.QueryContext(ctx, query)
    if err != nil {
        return nil, fmt.Errorf("error listing products: %v", err)
    }
    defer rows.Close()

    var products []models.Product
    for rows.Next() {
        var p models.Product
        if err := rows.Scan(&p.ID, &p.Name, &p.Image, &p.Price, &p.Tag, &p.Description, &p.Archived); err != nil {
            return nil, fmt.Errorf("error scanning product: %v", err)
        }
        products = append(products, p)
    }
    return products, rows.Err()
}

func (c *Connection) GetProductByID(id int) (*models.Product, error) {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    var p models.Product
    err := c.db.QueryRowContext(ctx, `
        SELECT id, name, image, price, tag, description, archived
        FROM products
        WHERE id = ? AND deleted_at IS NULL
    `, id).Scan(&p.ID, &p.Name, &p.Image, &p.Price, &p.Tag, &p.Description, &p.Archived)
    if err != nil {
        return nil, err
    }
    return &p, nil
}

func (c *Connection) CreateProduct(in models.ProductInput) (int, error) {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    result, err := c.db.ExecContext(ctx, `
        INSERT INTO products (name, image, price, tag, description, archived)
        VALUES (?, ?, ?, ?, ?, 0)
    `, in.Name, in.Image, in.Price, in.Tag, in.Description)
    if err != nil {
        return 0, fmt.Errorf("error creating product: %v", err)
    }

    id, err := result.LastInsertId()
    if err != nil {
        return 0, fmt.Errorf("error getting product id: %v", err)
    }
    return int(id), nil
}

func (c *Connection) UpdateProduct(id int, in models.ProductInput) error {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    result, err := c.db.ExecContext(ctx, `
        UPDATE products
        SET name = ?, image = ?, price = ?, tag = ?, description = ?
        WHERE id = ? AND deleted_at IS NULL
    `, in.Name, in.Image, in.Price, in.Tag, in.Description, id)
    if err != nil {
        return fmt.Errorf("error updating product %d: %v", id, err)
    }
    return requireRowAffected(result, "product", id)
}

// SetProductArchived flips the archive flag. The handler uses it as both the
// optimistic apply and the compensating revert.
func (c *Connection) SetProductArchived(id int, archived bool) error {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    result, err := c.db.ExecContext(ctx, `
        UPDATE products SET archived = ? WHERE id = ? AND deleted_at IS NULL
    `, archived, id)
    if err != nil {
        return fmt.Errorf("error archiving product %d: %v", id, err)
    }
    return requireRowAffected(result, "product", id)
}

func (c *Connection) DeleteProduct(id int) error {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    result, err := c.db.ExecContext(ctx, `
        UPDATE products SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL
    `, id)
    if err != nil {
        return fmt.Errorf("error deleting product %d: %v", id, err)
    }
    return requireRowAffected(result, "product", id)
}

func requireRowAffected(result sql.Result, kind string, id int) error {
    rows, err := result.RowsAffected()
    if err != nil {
        return fmt.Errorf("error getting rows affected: %v", err)
    }
    if rows == 0 {
        return fmt.Errorf("no %s found with id %d", kind, id)
    }
    return nil
}
