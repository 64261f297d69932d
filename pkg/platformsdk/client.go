// Package platformsdk is a small Go client for the Nimbus platform API. It
// backs the end-to-end tests and is usable by other services that need to
// call the platform.
package platformsdk

import (
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// SDKClient is a client for the platform service. It provides access to
// unauthenticated operations and can create authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new platform client. The client carries a cookie
// jar so cookie-backed surfaces (theme preference, OAuth state) behave the
// way a browser would.
func NewSDKClient(baseURL string) *SDKClient {
	jar, _ := cookiejar.New(nil)
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}
}

// Session is an authenticated view of the API, bound to one access token.
type Session struct {
	client *SDKClient
	token  string
}

// NewSessionFromToken wraps an existing access token in a Session.
func (c *SDKClient) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}

// Token returns the session's raw access token.
func (s *Session) Token() string { return s.token }
