package platformsdk

import (
	"context"
	"net/http"
)

// Pages fetches the route manifest.
func (c *SDKClient) Pages(ctx context.Context) ([]Page, error) {
	var pages []Page
	if err := c.doJSON(ctx, http.MethodGet, "/v1/pages", "", nil, &pages, http.StatusOK); err != nil {
		return nil, err
	}
	return pages, nil
}

// Page fetches one route descriptor anonymously.
func (c *SDKClient) Page(ctx context.Context, name string) (*Page, error) {
	var page Page
	if err := c.doJSON(ctx, http.MethodGet, "/v1/pages/"+name, "", nil, &page, http.StatusOK); err != nil {
		return nil, err
	}
	return &page, nil
}

// Page fetches one route descriptor with the session's token, passing gated
// routes.
func (s *Session) Page(ctx context.Context, name string) (*Page, error) {
	var page Page
	if err := s.client.doJSON(ctx, http.MethodGet, "/v1/pages/"+name, s.token, nil, &page, http.StatusOK); err != nil {
		return nil, err
	}
	return &page, nil
}
