package http

import (
	"net/http"

	"github.com/nimbuslabs/nimbus/internal/platform/identity"
	"github.com/nimbuslabs/nimbus/pkg/httpx"
)

// PageResponse describes one route of the front-end shell: where it lives and
// whether it sits behind the auth gate.
type PageResponse struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	Title        string `json:"title"`
	RequiresAuth bool   `json:"requires_auth"`
}

// pageTable is the static routing manifest. Everything under /dashboard is
// gated; the marketing surface is public.
var pageTable = []PageResponse{
	{Name: "home", Path: "/", Title: "Home"},
	{Name: "pricing", Path: "/pricing", Title: "Pricing"},
	{Name: "login", Path: "/login", Title: "Log in"},
	{Name: "signup", Path: "/signup", Title: "Sign up"},
	{Name: "dashboard", Path: "/dashboard", Title: "Dashboard", RequiresAuth: true},
	{Name: "projects", Path: "/dashboard/projects", Title: "Projects", RequiresAuth: true},
	{Name: "analytics", Path: "/dashboard/analytics", Title: "Analytics", RequiresAuth: true},
	{Name: "team", Path: "/dashboard/team", Title: "Team", RequiresAuth: true},
	{Name: "messages", Path: "/dashboard/messages", Title: "Messages", RequiresAuth: true},
	{Name: "files", Path: "/dashboard/files", Title: "Files", RequiresAuth: true},
	{Name: "settings", Path: "/dashboard/settings", Title: "Settings", RequiresAuth: true},
	{Name: "admin", Path: "/dashboard/admin", Title: "Admin", RequiresAuth: true},
}

type PagesHandler struct {
	Identity identity.Client
}

// HandleList returns the routing manifest.
//
//	@Summary		List pages
//	@Description	Returns the route manifest for the front-end shell, including which routes require a session.
//	@Tags			Pages
//	@Produce		json
//	@Success		200	{array}	PageResponse	"Route manifest"
//	@Router			/v1/pages [get].
func (h *PagesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, pageTable)
}

// HandleGet returns one page descriptor, enforcing the auth gate.
//
//	@Summary		Get a page
//	@Description	Returns one route descriptor. Gated routes require a valid session; unknown names fall through to 404, matching the catch-all route.
//	@Tags			Pages
//	@Produce		json
//	@Param			name	path		string			true	"Page name"
//	@Success		200		{object}	PageResponse	"Route descriptor"
//	@Failure		401		{object}	ErrorResponse	"Gated route without a valid session"
//	@Failure		404		{object}	ErrorResponse	"Unknown page"
//	@Router			/v1/pages/{name} [get].
func (h *PagesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	for _, page := range pageTable {
		if page.Name != name {
			continue
		}
		if page.RequiresAuth {
			token := tokenFromRequest(r)
			if token == "" {
				writeBearerError(w, "missing session token")
				return
			}
			if _, err := h.Identity.SessionFromToken(r.Context(), token); err != nil {
				writeBearerError(w, "invalid session token")
				return
			}
		}
		httpx.WriteJSON(w, http.StatusOK, page)
		return
	}

	// Catch-all: anything off the manifest is a 404, signed in or not.
	writeError(w, http.StatusNotFound, "not_found", "no such page: "+name)
}
