package models

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// ThemePresetDefault is the theme assigned when a user has no stored
// preferences or saves without one.
const ThemePresetDefault = "green"

type UserPreferences struct {
	bun.BaseModel `bun:"table:user_preferences,alias:up"`

	ID           int             `bun:",pk,autoincrement" json:"-"`
	CreatedAt    time.Time       `bun:",nullzero,notnull,default:current_timestamp" json:"-"`
	UpdatedAt    time.Time       `bun:",nullzero,notnull,default:current_timestamp" json:"-"`
	UserID       int             `bun:",notnull,unique" json:"-"`
	ThemePreset  string          `bun:",notnull,default:'green'" json:"themePreset"`
	CustomColors json.RawMessage `json:"customColors"`
}

// DefaultUserPreferences returns a UserPreferences with default values.
func DefaultUserPreferences() *UserPreferences {
	return &UserPreferences{
		ThemePreset: ThemePresetDefault,
	}
}
