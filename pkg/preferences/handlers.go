package preferences

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/verseflow/verseflow/pkg/auth"
	"github.com/verseflow/verseflow/pkg/errcodes"
)

type handler struct {
	preferencesService *Service
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := auth.UserFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	prefs, err := h.preferencesService.Get(ctx, user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, PreferencesResponse{
		ThemePreset:  prefs.ThemePreset,
		CustomColors: prefs.CustomColors,
	}))
}

func (h *handler) set(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := auth.UserFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := SetPreferencesPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	_, err := h.preferencesService.Set(ctx, user.ID, params.ThemePreset, params.CustomColors)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, MessageResponse{
		Message: "Preferences saved successfully",
	}))
}
