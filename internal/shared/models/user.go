package models

import "github.com/golang-jwt/jwt/v5"

type User struct {
	ID           string                 `db:"id" json:"id"`
	Email        string                 `db:"email" json:"email"`
	Phone        string                 `db:"phone" json:"phone"`
	Role         string                 `db:"role" json:"role"`
	Status       string                 `db:"status" json:"status"`
	PasswordHash string                 `db:"password_hash" json:"-"`
	Attrs        map[string]interface{} `db:"attrs" json:"attrs,omitempty"`
}

type Claims struct {
	UserID string `json:"sub"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
