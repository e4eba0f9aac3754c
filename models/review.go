package models

import "time"

type Review struct {
    ID        int       `json:"id"`
    UserID    string    `json:"user_id"`
    Name      string    `json:"name"`
    Rating    int       `json:"rating"`
    Comment   string    `json:"comment"`
    CreatedAt time.Time `json:"created_at"`
}

type ReviewInput struct {
    Name    string `json:"name"`
    Rating  int    `json:"rating"`
    Comment string `json:"comment"`
}
