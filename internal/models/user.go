package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID           int64     `db:"id" json:"user_id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	RoleName     string    `db:"role_name" json:"role_name"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
}

// Claims defines the structure of the JWT claims. Subject (from
// RegisteredClaims) carries the user id as a decimal string.
type Claims struct {
	Username string `json:"username"`
	RoleName string `json:"role_name"`
	jwt.RegisteredClaims
}
