package database

import (
    "context"
    "fmt"
    "time"

    "arbt-storefront-api/models"
)

// About-us content: team members, subscription plans and promotional
// campaigns managed from the admin back office.

func (c *Connection) GetTeamMembers(activeOnly bool) ([]models.TeamMember, error) {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    query := `SELECT id, name, role, image, active, priority FROM team_members`
    if activeOnly {
        query += ` WHERE active = 1`
    }
    query += ` ORDER BY priority ASC, id ASC`

    rows, err := c.db.QueryContext(ctx, query)
    if err != nil {
        return nil, fmt.Errorf("error listing team members: %v", err)
    }
    defer rows.Close()

    var members []models.TeamMember
    for rows.Next() {
        var m models.TeamMember
        if err := rows.Scan(&m.ID, &m.Name, &m.Role, &m.Image, &m.Active, &m.Priority); err != nil {
            return nil, fmt.Errorf("error scanning team member: %v", err)
        }
        members = append(members, m)
    }
    return members, rows.Err()
}

func (c *Connection) UpsertTeamMember(m *models.TeamMember) (int, error) {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    if m.ID == 0 {
        result, err := c.db.ExecContext(ctx, `
            INSERT INTO team_members (name, role, image, active, priority)
            VALUES (?, ?, ?, ?, ?)
        `, m.Name, m.Role, m.Image, m.Active, m.Priority)
        if err != nil {
            return 0, fmt.Errorf("error creating team member: %v", err)
        }
        id, _ := result.LastInsertId()
        return int(id), nil
    }

    result, err := c.db.ExecContext(ctx, `
        UPDATE team_members SET name = ?, role = ?, image = ?, active = ?, priority = ?
        WHERE id = ?
    `, m.Name, m.Role, m.Image, m.Active, m.Priority, m.ID)
    if err != nil {
        return 0, fmt.Errorf("error updating team member %d: %v", m.ID, err)
    }
    if err := requireRowAffected(result, "team member", m.ID); err != nil {
        return 0, err
    }
    return m.ID, nil
}

func (c *Connection) DeleteTeamMember(id int) error {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    result, err := c.db.ExecContext(ctx, `DELETE FROM team_members WHERE id = ?`, id)
    if err != nil {
        return fmt.Errorf("error deleting team member %d: %v", id, err)
    }
    return requireRowAffected(result, "team member", id)
}

func (c *Connection) GetSubscriptionPlans(activeOnly bool) ([]models.SubscriptionPlan, error) {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    query := `SELECT id, name, description, price, features, active FROM subscription_plans`
    if activeOnly {
        query += ` WHERE active = 1`
    }
    query += ` ORDER BY price ASC`

    rows, err := c.db.QueryContext(ctx, query)
    if err != nil {
        return nil, fmt.Errorf("error listing subscription plans: %v", err)
    }
    defer rows.Close()

    var plans []models.SubscriptionPlan
    for rows.Next() {
        var p models.SubscriptionPlan
        if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Features, &p.Active); err != nil {
            return nil, fmt.Errorf("error scanning subscription plan: %v", err)
        }
        plans = append(plans, p)
    }
    return plans, rows.Err()
}

func (c *Connection) UpsertSubscriptionPlan(p *models.SubscriptionPlan) (int, error) {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    if p.ID == 0 {
        result, err := c.db.ExecContext(ctx, `
            INSERT INTO subscription_plans (name, description, price, features, active)
            VALUES (?, ?, ?, ?, ?)
        `, p.Name, p.Description, p.Price, p.Features, p.Active)
        if err != nil {
            return 0, fmt.Errorf("error creating subscription plan: %v", err)
        }
        id, _ := result.LastInsertId()
        return int(id), nil
    }

    result, err := c.db.ExecContext(ctx, `
        UPDATE subscription_plans SET name = ?, description = ?, price = ?, features = ?, active = ?
        WHERE id = ?
    `, p.Name, p.Description, p.Price, p.Features, p.Active, p.ID)
    if err != nil {
        return 0, fmt.Errorf("error updating subscription plan %d: %v", p.ID, err)
    }
    if err := requireRowAffected(result, "subscription plan", p.ID); err != nil {
        return 0, err
    }
    return p.ID, nil
}

func (c *Connection) GetPromotions(publishedOnly bool) ([]models.Promotion, error) {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    query := `SELECT id, title, body, image, starts_at, ends_at, published FROM promotions`
    if publishedOnly {
        query += ` WHERE published = 1 AND CURDATE() BETWEEN starts_at AND ends_at`
    }
    query += ` ORDER BY starts_at DESC`

    rows, err := c.db.QueryContext(ctx, query)
    if err != nil {
        return nil, fmt.Errorf("error listing promotions: %v", err)
    }
    defer rows.Close()

    var promos []models.Promotion
    for rows.Next() {
        var p models.Promotion
        if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.Image, &p.StartsAt, &p.EndsAt, &p.Published); err != nil {
            return nil, fmt.Errorf("error scanning promotion: %v", err)
        }
        promos = append(promos, p)
    }
    return promos, rows.Err()
}

func (c *Connection) UpsertPromotion(p *models.Promotion) (int, error) {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    if p.ID == 0 {
        result, err := c.db.ExecContext(ctx, `
            INSERT INTO promotions (title, body, image, starts_at, ends_at, published)
            VALUES (?, ?, ?, ?, ?, ?)
        `, p.Title, p.Body, p.Image, p.StartsAt, p.EndsAt, p.Published)
        if err != nil {
            return 0, fmt.Errorf("error creating promotion: %v", err)
        }
        id, _ := result.LastInsertId()
        return int(id), nil
    }

    result, err := c.db.ExecContext(ctx, `
        UPDATE promotions SET title = ?, body = ?, image = ?, starts_at = ?, ends_at = ?, published = ?
        WHERE id = ?
    `, p.Title, p.Body, p.Image, p.StartsAt, p.EndsAt, p.Published, p.ID)
    if err != nil {
        return 0, fmt.Errorf("error updating promotion %d: %v", p.ID, err)
    }
    if err := requireRowAffected(result, "promotion", p.ID); err != nil {
        return 0, err
    }
    return p.ID, nil
}

func (c *Connection) DeletePromotion(id int) error {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    result, err := c.db.ExecContext(ctx, `DELETE FROM promotions WHERE id = ?`, id)
    if err != nil {
        return fmt.Errorf("error deleting promotion %d: %v", id, err)
    }
    return requireRowAffected(result, "promotion", id)
}
