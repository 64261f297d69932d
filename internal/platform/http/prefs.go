package http

import (
	"encoding/json"
	"net/http"

	"github.com/nimbuslabs/nimbus/internal/platform/domain"
	"github.com/nimbuslabs/nimbus/pkg/httpx"
)

// themeCookie is the single key the theme preference lives under. It is
// shared by every surface; there is no per-page theme.
const themeCookie = "nimbus-ui-theme"

type ThemeHandler struct{}

type themeResponse struct {
	Theme string `json:"theme"`
}

// HandleGet reads the stored theme preference.
//
//	@Summary		Get the theme preference
//	@Description	Returns the persisted theme, defaulting to light when none is stored or the stored value is unrecognised.
//	@Tags			Preferences
//	@Produce		json
//	@Success		200	{object}	themeResponse	"Current theme"
//	@Router			/v1/prefs/theme [get].
func (h *ThemeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	theme := domain.ThemeLight
	if c, err := r.Cookie(themeCookie); err == nil {
		theme = domain.ParseTheme(c.Value)
	}
	httpx.WriteJSON(w, http.StatusOK, themeResponse{Theme: string(theme)})
}

// HandlePut stores the theme preference.
//
//	@Summary		Set the theme preference
//	@Description	Persists the theme under the shared preference key.
//	@Tags			Preferences
//	@Accept			json
//	@Produce		json
//	@Param			request	body		themeResponse	true	"Theme to store"
//	@Success		200		{object}	themeResponse	"Stored theme"
//	@Failure		400		{object}	ErrorResponse	"Unknown theme"
//	@Router			/v1/prefs/theme [put].
func (h *ThemeHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	var req themeResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	theme := domain.Theme(req.Theme)
	if theme != domain.ThemeLight && theme != domain.ThemeDark {
		writeError(w, http.StatusBadRequest, "invalid_theme", "theme must be light or dark")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     themeCookie,
		Value:    string(theme),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
	})
	httpx.WriteJSON(w, http.StatusOK, themeResponse{Theme: string(theme)})
}
