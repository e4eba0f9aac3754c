package models

type Product struct {
    ID          int     `json:"id" db:"id"`
    Name        string  `json:"name" db:"name"`
    Image       string  `json:"image" db:"image"`
    Price       float64 `json:"price" db:"price"`
    Tag         string  `json:"tag,omitempty" db:"tag"`
    Description string  `json:"description,omitempty" db:"description"`
    Archived    bool    `json:"archived" db:"archived"`
    DeletedAt   *string `json:"deleted_at,omitempty" db:"deleted_at"`
}

type ProductInput struct {
    Name        string  `json:"name"`
    Image       string  `json:"image"`
    Price       float64 `json:"price"`
    Tag         string  `json:"tag"`
    Description string  `json:"description"`
}
