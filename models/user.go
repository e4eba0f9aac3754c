package models

type User struct {
    ID            string `json:"id"`
    Name          string `json:"name"`
    Email         string `json:"email"`
    ContactNumber string `json:"contact_number"`
    Passphrase    string `json:"-"`
    IsAdmin       bool   `json:"is_admin"`
}
