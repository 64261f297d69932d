package http

import (
	"net/http"
	"time"

	"github.com/nimbuslabs/nimbus/internal/platform/domain"
	"github.com/nimbuslabs/nimbus/pkg/httpx"
)

// ErrorResponse is the wire form of every error this API returns.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

func writeError(w http.ResponseWriter, code int, err, desc string) {
	httpx.WriteJSON(w, code, ErrorResponse{Error: err, ErrorDescription: desc})
}

// SessionResponse is the wire form of a session. Null when anonymous.
type SessionResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Provider  string    `json:"provider"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// ProfileResponse is the wire form of a profile row.
type ProfileResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Company   string `json:"company,omitempty"`
}

// AuthResponse bundles the session with its resolved profile. Profile may be
// null while a session is present: profile resolution failures do not undo
// the sign-in.
type AuthResponse struct {
	AccessToken string           `json:"access_token,omitempty"`
	Session     *SessionResponse `json:"session"`
	Profile     *ProfileResponse `json:"profile"`
}

func sessionResponse(s domain.Session) *SessionResponse {
	return &SessionResponse{
		UserID:    s.Subject,
		Email:     s.Email,
		Provider:  s.Provider,
		ExpiresAt: s.ExpiresAt,
	}
}

func profileResponse(p domain.Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:        p.ID,
		Email:     p.Email,
		Name:      p.Name,
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Company:   p.Company,
	}
}

// PlanResponse is one row of the public pricing table.
type PlanResponse struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	MonthlyPrice int      `json:"monthly_price"`
	Features     []string `json:"features"`
	Available    bool     `json:"available"`
}

// SubscriptionResponse is the wire form of the user's billing state.
type SubscriptionResponse struct {
	Status   string `json:"status"`
	PlanType string `json:"plan_type"`
}

// HealthResponse is returned by the probe endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency health in readyz responses.
type HealthChecks struct {
	Database string `json:"database"`
}
