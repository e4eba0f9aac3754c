package models

// About-us content managed from the admin back office.

type TeamMember struct {
    ID       int    `json:"id"`
    Name     string `json:"name"`
    Role     string `json:"role"`
    Image    string `json:"image"`
    Active   bool   `json:"active"`
    Priority int    `json:"priority"`
}

type SubscriptionPlan struct {
    ID          int     `json:"id"`
    Name        string  `json:"name"`
    Description string  `json:"description"`
    Price       float64 `json:"price"`
    Features    string  `json:"features"`
    Active      bool    `json:"active"`
}

type Promotion struct {
    ID        int    `json:"id"`
    Title     string `json:"title"`
    Body      string `json:"body"`
    Image     string `json:"image"`
    StartsAt  string `json:"starts_at"`
    EndsAt    string `json:"ends_at"`
    Published bool   `json:"published"`
}
