package platformsdk

import "time"

// SessionInfo mirrors the server's session payload.
type SessionInfo struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Provider  string    `json:"provider"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Profile mirrors the server's profile payload.
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Company   string `json:"company,omitempty"`
}

// AuthResponse bundles a session with its resolved profile. Profile may be
// nil while Session is set.
type AuthResponse struct {
	AccessToken string       `json:"access_token,omitempty"`
	Session     *SessionInfo `json:"session"`
	Profile     *Profile     `json:"profile"`
}

// SignUpRequest is the registration form.
type SignUpRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company,omitempty"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Plan is one row of the public pricing table.
type Plan struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	MonthlyPrice int      `json:"monthly_price"`
	Features     []string `json:"features"`
	Available    bool     `json:"available"`
}

// Subscription is the caller's billing state.
type Subscription struct {
	Status   string `json:"status"`
	PlanType string `json:"plan_type"`
}

// CheckoutResponse carries the hosted payment page URL.
type CheckoutResponse struct {
	URL string `json:"url"`
}

// Page is one route of the front-end shell's manifest.
type Page struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	Title        string `json:"title"`
	RequiresAuth bool   `json:"requires_auth"`
}

// ThemeResponse is the stored theme preference.
type ThemeResponse struct {
	Theme string `json:"theme"`
}

// HealthResponse is returned by the probe endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency health.
type HealthChecks struct {
	Database string `json:"database"`
}
