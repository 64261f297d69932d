package platformsdk

import (
	"context"
	"net/http"
)

// Theme reads the stored theme preference. The preference rides on the
// client's cookie jar, so consecutive calls on one client see stored values.
func (c *SDKClient) Theme(ctx context.Context) (string, error) {
	var resp ThemeResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/prefs/theme", "", nil, &resp, http.StatusOK); err != nil {
		return "", err
	}
	return resp.Theme, nil
}

// SetTheme stores the theme preference.
func (c *SDKClient) SetTheme(ctx context.Context, theme string) error {
	return c.doJSON(ctx, http.MethodPut, "/v1/prefs/theme", "", ThemeResponse{Theme: theme}, nil, http.StatusOK)
}
