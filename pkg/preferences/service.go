package preferences

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/verseflow/verseflow/pkg/models"
)

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// Get retrieves preferences for a user. If none exist yet, the default row is
// created and returned, so the default is persisted from the first read.
func (svc *Service) Get(ctx context.Context, userID int) (*models.UserPreferences, error) {
	prefs := &models.UserPreferences{}
	err := svc.db.NewSelect().
		Model(prefs).
		Where("user_id = ?", userID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			prefs = models.DefaultUserPreferences()
			prefs.UserID = userID
			_, err = svc.db.NewInsert().Model(prefs).Exec(ctx)
			if err != nil {
				return nil, errors.WithStack(err)
			}
			return prefs, nil
		}
		return nil, errors.WithStack(err)
	}

	return prefs, nil
}

// Set upserts preferences for a user. A missing theme falls back to the
// default and missing colors clear any stored ones.
func (svc *Service) Set(ctx context.Context, userID int, themePreset string, customColors json.RawMessage) (*models.UserPreferences, error) {
	if themePreset == "" {
		themePreset = models.ThemePresetDefault
	}

	now := time.Now()
	prefs := &models.UserPreferences{
		CreatedAt:    now,
		UpdatedAt:    now,
		UserID:       userID,
		ThemePreset:  themePreset,
		CustomColors: customColors,
	}

	_, err := svc.db.NewInsert().
		Model(prefs).
		On("CONFLICT (user_id) DO UPDATE").
		Set("updated_at = EXCLUDED.updated_at").
		Set("theme_preset = EXCLUDED.theme_preset").
		Set("custom_colors = EXCLUDED.custom_colors").
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return prefs, nil
}
