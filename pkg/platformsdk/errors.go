package platformsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the platform service.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("platform api: %d %s: %s", e.StatusCode, e.Code, e.Description)
	}
	return fmt.Sprintf("platform api: %d %s", e.StatusCode, e.Code)
}

func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
