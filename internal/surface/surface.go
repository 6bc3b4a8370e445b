// Package surface declares API surfaces as static route tables. The same table drives
// HTTP routing and the per-surface schema document, so the two cannot drift apart.
package surface

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Route is one endpoint of a surface. Body and Response are zero values of the
// request and response types; they are only inspected by the schema builder.
type Route struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	Tag         string
	Handler     fiber.Handler
	Body        any
	Response    any
	// Paginated wraps Response in the {count,next,previous,results} envelope.
	Paginated bool
	// Status is the success status; zero means 200.
	Status int
}

// SuccessStatus returns the declared success status, defaulting to 200.
func (r Route) SuccessStatus() int {
	if r.Status == 0 {
		return fiber.StatusOK
	}
	return r.Status
}

// Surface is an independently versioned, independently documented set of routes.
type Surface struct {
	Name    string
	Version string
	// Secured marks surfaces whose every route requires a bearer token.
	Secured    bool
	Middleware []fiber.Handler
	Routes     []Route
}

// Prefix returns the mount point, e.g. "/api/v1/portal".
func (s Surface) Prefix() string {
	return fmt.Sprintf("/api/%s/%s", strings.Trim(s.Version, "/"), s.Name)
}

// Validate rejects tables that would register ambiguous or unroutable endpoints.
func (s Surface) Validate() error {
	if s.Name == "" || s.Version == "" {
		return fmt.Errorf("surface needs a name and a version")
	}
	seen := make(map[string]struct{}, len(s.Routes))
	ops := make(map[string]struct{}, len(s.Routes))
	for _, r := range s.Routes {
		if r.Handler == nil {
			return fmt.Errorf("%s: route %s %s has no handler", s.Name, r.Method, r.Path)
		}
		if !strings.HasPrefix(r.Path, "/") {
			return fmt.Errorf("%s: route path %q must start with /", s.Name, r.Path)
		}
		key := r.Method + " " + r.Path
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%s: duplicate route %s", s.Name, key)
		}
		seen[key] = struct{}{}
		if r.OperationID != "" {
			if _, dup := ops[r.OperationID]; dup {
				return fmt.Errorf("%s: duplicate operation id %q", s.Name, r.OperationID)
			}
			ops[r.OperationID] = struct{}{}
		}
	}
	return nil
}

// Mount registers the surface's routes on router under Prefix, behind the surface middleware.
func (s Surface) Mount(router fiber.Router) (fiber.Router, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	group := router.Group(s.Prefix(), s.Middleware...)
	for _, r := range s.Routes {
		group.Add(r.Method, r.Path, r.Handler)
	}
	return group, nil
}
