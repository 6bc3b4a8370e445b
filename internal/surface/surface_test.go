package surface

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(body string) fiber.Handler {
	return func(c *fiber.Ctx) error { return c.SendString(body) }
}

func TestSurface_Prefix(t *testing.T) {
	assert.Equal(t, "/api/v1/portal", Surface{Name: "portal", Version: "v1"}.Prefix())
	assert.Equal(t, "/api/v2/dashboard", Surface{Name: "dashboard", Version: "/v2/"}.Prefix())
}

func TestSurface_Validate(t *testing.T) {
	base := Surface{Name: "portal", Version: "v1"}

	s := base
	s.Routes = []Route{{Method: fiber.MethodGet, Path: "/posts"}}
	assert.Error(t, s.Validate(), "missing handler")

	s.Routes = []Route{{Method: fiber.MethodGet, Path: "posts", Handler: ok("")}}
	assert.Error(t, s.Validate(), "relative path")

	s.Routes = []Route{
		{Method: fiber.MethodGet, Path: "/posts", Handler: ok("")},
		{Method: fiber.MethodGet, Path: "/posts", Handler: ok("")},
	}
	assert.Error(t, s.Validate(), "duplicate route")

	s.Routes = []Route{
		{Method: fiber.MethodGet, Path: "/posts", OperationID: "list", Handler: ok("")},
		{Method: fiber.MethodGet, Path: "/posts/:id", OperationID: "list", Handler: ok("")},
	}
	assert.Error(t, s.Validate(), "duplicate operation id")

	assert.Error(t, Surface{Name: "portal"}.Validate())
}

func TestSurface_MountRunsMiddlewareAndRoutes(t *testing.T) {
	app := fiber.New()
	var seen []string
	s := Surface{
		Name:    "portal",
		Version: "v1",
		Middleware: []fiber.Handler{func(c *fiber.Ctx) error {
			seen = append(seen, c.Path())
			return c.Next()
		}},
		Routes: []Route{
			{Method: fiber.MethodGet, Path: "/posts", Handler: ok("list")},
			{Method: fiber.MethodGet, Path: "/posts/:id", Handler: ok("detail")},
		},
	}
	_, err := s.Mount(app)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/portal/posts/3", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "detail", string(body))
	assert.Equal(t, []string{"/api/v1/portal/posts/3"}, seen)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/dashboard/posts", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRoute_SuccessStatus(t *testing.T) {
	assert.Equal(t, fiber.StatusOK, Route{}.SuccessStatus())
	assert.Equal(t, fiber.StatusNoContent, Route{Status: fiber.StatusNoContent}.SuccessStatus())
}
