package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int       `bun:",pk,nullzero" json:"id"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
	Email        string    `bun:",nullzero" json:"email"`
	Username     *string   `json:"username"`
	PasswordHash string    `json:"-"` // Never expose password hash
}
