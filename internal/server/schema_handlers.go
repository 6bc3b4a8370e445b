package server

import (
	"fmt"
	"sync"

	"inkwell/internal/openapi"
	"inkwell/internal/surface"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/swaggo/swag"
)

// liveDoc is a swag provider whose content can be replaced. swag.Register panics on a
// second registration of the same name, so each name is registered once and rebuilt apps
// only swap the document.
type liveDoc struct {
	mu  sync.RWMutex
	doc string
}

func (d *liveDoc) ReadDoc() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.doc
}

func (d *liveDoc) set(doc []byte) {
	d.mu.Lock()
	d.doc = string(doc)
	d.mu.Unlock()
}

var liveDocs sync.Map

func publishDoc(instance string, doc []byte) {
	v, loaded := liveDocs.LoadOrStore(instance, &liveDoc{})
	d := v.(*liveDoc)
	d.set(doc)
	if !loaded {
		swag.Register(instance, d)
	}
}

// SchemaInstance names the swag instance holding a surface's document.
func SchemaInstance(surfaceName string) string {
	return "inkwell-" + surfaceName
}

// SchemaInfo returns the document metadata for a surface.
func SchemaInfo(surfaceName string) openapi.Info {
	switch surfaceName {
	case DashboardSurface:
		return openapi.Info{
			Title:       "Inkwell Dashboard API",
			Description: "Authenticated management of users, posts and comments.",
		}
	case PortalSurface:
		return openapi.Info{
			Title:       "Inkwell Portal API",
			Description: "Public, read-only access to published posts.",
		}
	default:
		return openapi.Info{}
	}
}

// registerSchemas serves each surface's document at /schema/{surface} and its
// Swagger UI at /schema/{surface}/swagger/.
func (s *Server) registerSchemas(api fiber.Router, surfaces []surface.Surface) error {
	for _, sf := range surfaces {
		doc, err := openapi.Build(sf, SchemaInfo(sf.Name))
		if err != nil {
			return fmt.Errorf("build %s schema: %w", sf.Name, err)
		}
		raw, err := openapi.Encode(doc, openapi.FormatJSON)
		if err != nil {
			return fmt.Errorf("encode %s schema: %w", sf.Name, err)
		}

		instance := SchemaInstance(sf.Name)
		publishDoc(instance, raw)

		schema := api.Group("/schema/" + sf.Name)
		schema.Get("/", func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
			return c.Send(raw)
		})
		schema.Get("/swagger/*", swagger.New(swagger.Config{
			InstanceName: instance,
			Title:        SchemaInfo(sf.Name).Title,
		}))
	}
	return nil
}
