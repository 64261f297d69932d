package platform_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nimbuslabs/nimbus/pkg/platformsdk"
)

func TestSignUpSignInAndSessionResolution(t *testing.T) {
	client, cleanup := setupPlatformContainer(t)
	defer cleanup()
	ctx := context.Background()

	// Register and verify the profile row was written from the form.
	session, created, err := client.SignUp(ctx, platformsdk.SignUpRequest{
		FirstName: "Alice",
		LastName:  "Example",
		Company:   "Acme",
		Email:     "alice@example.com",
		Password:  testPassword,
	})
	require.NoError(t, err)
	require.Equal(t, "Alice Example", created.Profile.Name)
	require.Equal(t, "Acme", created.Profile.Company)
	require.Equal(t, "alice", created.Profile.Username)

	// The session endpoint resolves the same profile for the token.
	auth, err := session.CurrentAuth(ctx)
	require.NoError(t, err)
	require.NotNil(t, auth.Session)
	require.Equal(t, "alice@example.com", auth.Session.Email)
	require.NotNil(t, auth.Profile)
	require.Equal(t, created.Profile.ID, auth.Profile.ID)

	// Duplicate registration conflicts.
	_, _, err = client.SignUp(ctx, platformsdk.SignUpRequest{
		Email:    "alice@example.com",
		Password: "another-password1",
	})
	var apiErr *platformsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.StatusCode)

	// Wrong password is rejected.
	_, _, err = client.SignIn(ctx, "alice@example.com", "wrong-password")
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	// Correct credentials sign in to the same account.
	signedIn, resp, err := client.SignIn(ctx, "alice@example.com", testPassword)
	require.NoError(t, err)
	require.Equal(t, created.Session.UserID, resp.Session.UserID)

	require.NoError(t, signedIn.SignOut(ctx))
}

func TestAnonymousSessionIsNull(t *testing.T) {
	client, cleanup := setupPlatformContainer(t)
	defer cleanup()
	ctx := context.Background()

	auth, err := client.CurrentAuth(ctx, "")
	require.NoError(t, err)
	require.Nil(t, auth.Session)
	require.Nil(t, auth.Profile)

	// A garbage token behaves like no token rather than an error.
	auth, err = client.CurrentAuth(ctx, "garbage-token")
	require.NoError(t, err)
	require.Nil(t, auth.Session)
}

func TestPagesGating(t *testing.T) {
	client, cleanup := setupPlatformContainer(t)
	defer cleanup()
	ctx := context.Background()

	pages, err := client.Pages(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, pages)

	// Public routes are open.
	page, err := client.Page(ctx, "pricing")
	require.NoError(t, err)
	require.False(t, page.RequiresAuth)

	// Gated routes reject anonymous callers.
	_, err = client.Page(ctx, "dashboard")
	var apiErr *platformsdk.APIError
	if errors.As(err, &apiErr) {
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	} else {
		require.Error(t, err)
	}

	// And admit a signed-in session.
	session := signUpUser(t, client, "gate@example.com")
	page, err = session.Page(ctx, "dashboard")
	require.NoError(t, err)
	require.True(t, page.RequiresAuth)
}

func TestThemePreferencePersists(t *testing.T) {
	client, cleanup := setupPlatformContainer(t)
	defer cleanup()
	ctx := context.Background()

	theme, err := client.Theme(ctx)
	require.NoError(t, err)
	require.Equal(t, "light", theme)

	require.NoError(t, client.SetTheme(ctx, "dark"))

	theme, err = client.Theme(ctx)
	require.NoError(t, err)
	require.Equal(t, "dark", theme)
}

func TestHealthProbes(t *testing.T) {
	client, cleanup := setupPlatformContainer(t)
	defer cleanup()
	ctx := context.Background()

	livez, err := client.Livez(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", livez.Status)

	readyz, err := client.Readyz(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", readyz.Status)
	require.NotNil(t, readyz.Checks)
	require.Equal(t, "ok", readyz.Checks.Database)
}
