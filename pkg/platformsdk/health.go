package platformsdk

import (
	"context"
	"net/http"
)

// Livez calls the liveness probe.
func (c *SDKClient) Livez(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", "", nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Readyz calls the readiness probe.
func (c *SDKClient) Readyz(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/readyz", "", nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}
