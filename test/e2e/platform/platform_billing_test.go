package platform_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nimbuslabs/nimbus/pkg/platformsdk"
)

func TestPlansAreUnavailableWithoutBilling(t *testing.T) {
	client, cleanup := setupPlatformContainer(t)
	defer cleanup()
	ctx := context.Background()

	plans, err := client.Plans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)

	for _, plan := range plans {
		require.False(t, plan.Available, "plan %s should carry a placeholder price", plan.Key)
	}
}

func TestCheckoutRefusedWithoutBilling(t *testing.T) {
	client, cleanup := setupPlatformContainer(t)
	defer cleanup()
	ctx := context.Background()

	session := signUpUser(t, client, "buyer@example.com")

	// No billing configuration in the container: checkout must refuse
	// before contacting any provider.
	_, err := session.CreateCheckoutSession(ctx, "PRO")
	var apiErr *platformsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	require.Equal(t, "billing_not_configured", apiErr.Code)

	// Unknown plans are a 400 regardless of configuration.
	_, err = session.CreateCheckoutSession(ctx, "BASIC")
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestCheckoutRequiresSession(t *testing.T) {
	client, cleanup := setupPlatformContainer(t)
	defer cleanup()
	ctx := context.Background()

	anonymous := client.NewSessionFromToken("")
	_, err := anonymous.CreateCheckoutSession(ctx, "PRO")
	require.Error(t, err)
}

func TestSubscriptionDefaultsToFree(t *testing.T) {
	client, cleanup := setupPlatformContainer(t)
	defer cleanup()
	ctx := context.Background()

	session := signUpUser(t, client, "free@example.com")

	sub, err := session.Subscription(ctx)
	require.NoError(t, err)
	require.Equal(t, "free", sub.PlanType)
	require.Equal(t, "active", sub.Status)
}
