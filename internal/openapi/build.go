// Package openapi partitions the API into one Swagger 2.0 document per surface.
// A document is built from a single surface's route table, so it can only ever
// describe that surface's paths, payloads and projections.
package openapi

import (
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/pagination"
	"inkwell/internal/surface"

	"github.com/go-openapi/spec"
)

const (
	bearerScheme   = "Bearer"
	errorModelName = "ErrorResponse"
	jsonMIME       = "application/json"
)

var (
	fiberParam = regexp.MustCompile(`:([A-Za-z_][A-Za-z0-9_]*)`)
	timeType   = reflect.TypeOf(time.Time{})
)

// Info is the document metadata that is not derived from the route table.
type Info struct {
	Title       string
	Description string
	// Version overrides the surface version in info.version when set.
	Version string
}

// Build returns the Swagger document of s. Every path is absolute and carries the surface prefix.
func Build(s surface.Surface, info Info) (*spec.Swagger, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	version := info.Version
	if version == "" {
		version = s.Version
	}
	title := info.Title
	if title == "" {
		title = s.Name + " API"
	}

	b := &builder{defs: spec.Definitions{}}
	doc := &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger:  "2.0",
			Consumes: []string{jsonMIME},
			Produces: []string{jsonMIME},
			Info: &spec.Info{
				InfoProps: spec.InfoProps{
					Title:       title,
					Description: info.Description,
					Version:     version,
				},
			},
			Paths:       &spec.Paths{Paths: map[string]spec.PathItem{}},
			Definitions: b.defs,
		},
	}
	b.ref(reflect.TypeOf(models.ErrorResponse{}))

	if s.Secured {
		scheme := spec.APIKeyAuth("Authorization", "header")
		scheme.Description = `JWT access token, sent as "Bearer <token>".`
		doc.SecurityDefinitions = spec.SecurityDefinitions{bearerScheme: scheme}
	}

	seenTags := map[string]bool{}
	for _, r := range s.Routes {
		path := s.Prefix() + fiberParam.ReplaceAllString(r.Path, "{$1}")
		item := doc.Paths.Paths[path]
		op := b.operation(s, r)
		if err := setOperation(&item, r.Method, op); err != nil {
			return nil, fmt.Errorf("%s %s: %w", r.Method, r.Path, err)
		}
		doc.Paths.Paths[path] = item

		if r.Tag != "" && !seenTags[r.Tag] {
			seenTags[r.Tag] = true
			doc.Tags = append(doc.Tags, spec.NewTag(r.Tag, "", nil))
		}
	}

	return doc, nil
}

func (b *builder) operation(s surface.Surface, r surface.Route) *spec.Operation {
	op := spec.NewOperation(r.OperationID).WithSummary(r.Summary)
	if r.Tag != "" {
		op.WithTags(r.Tag)
	}

	params := fiberParam.FindAllStringSubmatch(r.Path, -1)
	for _, m := range params {
		op.AddParam(spec.PathParam(m[1]).Typed("integer", "int64").AsRequired())
	}
	if r.Paginated {
		op.AddParam(spec.QueryParam(pagination.PageParam).Typed("integer", "int64").
			WithDescription("1-based page number."))
		op.AddParam(spec.QueryParam(pagination.PageSizeParam).Typed("integer", "int64").
			WithDescription("Results per page; clamped to the server maximum."))
	}
	if r.Body != nil {
		op.AddParam(spec.BodyParam("body", b.ref(reflect.TypeOf(r.Body))).AsRequired())
	}

	status := r.SuccessStatus()
	success := spec.NewResponse().WithDescription(http.StatusText(status))
	if r.Response != nil && status != http.StatusNoContent {
		if r.Paginated {
			success.WithSchema(b.paginated(reflect.TypeOf(r.Response)))
		} else {
			success.WithSchema(b.ref(reflect.TypeOf(r.Response)))
		}
	}
	op.RespondsWith(status, success)

	errSchema := spec.RefSchema("#/definitions/" + errorModelName)
	if r.Body != nil || len(params) > 0 || r.Paginated {
		op.RespondsWith(http.StatusBadRequest, spec.NewResponse().WithDescription("Validation error").WithSchema(errSchema))
	}
	if s.Secured {
		op.SecuredWith(bearerScheme)
		op.RespondsWith(http.StatusUnauthorized, spec.NewResponse().WithDescription("Missing or invalid credentials").WithSchema(errSchema))
	}
	if len(params) > 0 {
		op.RespondsWith(http.StatusNotFound, spec.NewResponse().WithDescription("Not found").WithSchema(errSchema))
	}
	return op
}

func setOperation(item *spec.PathItem, method string, op *spec.Operation) error {
	switch strings.ToUpper(method) {
	case http.MethodGet:
		item.Get = op
	case http.MethodPost:
		item.Post = op
	case http.MethodPut:
		item.Put = op
	case http.MethodPatch:
		item.Patch = op
	case http.MethodDelete:
		item.Delete = op
	case http.MethodHead:
		item.Head = op
	case http.MethodOptions:
		item.Options = op
	default:
		return fmt.Errorf("unsupported method %q", method)
	}
	return nil
}

// builder derives definitions from Go types through their json tags.
type builder struct {
	defs spec.Definitions
}

func (b *builder) paginated(item reflect.Type) *spec.Schema {
	item = indirect(item)
	name := "Paginated" + item.Name()
	if _, ok := b.defs[name]; !ok {
		nullableURL := spec.StringProperty()
		nullableURL.Format = "uri"
		nullableURL.AddExtension("x-nullable", true)

		envelope := new(spec.Schema).Typed("object", "")
		envelope.SetProperty("count", *spec.Int64Property())
		envelope.SetProperty("next", *nullableURL)
		envelope.SetProperty("previous", *nullableURL)
		envelope.SetProperty("results", *spec.ArrayProperty(b.ref(item)))
		envelope.WithRequired("count", "next", "previous", "results")
		b.defs[name] = *envelope
	}
	return spec.RefSchema("#/definitions/" + name)
}

// ref returns a reference to the definition of t, registering it on first use.
func (b *builder) ref(t reflect.Type) *spec.Schema {
	t = indirect(t)
	if t.Kind() != reflect.Struct || t == timeType {
		return b.schema(t)
	}
	name := t.Name()
	if _, ok := b.defs[name]; !ok {
		// Placeholder first so self-referencing types terminate.
		b.defs[name] = spec.Schema{}
		b.defs[name] = *b.object(t)
	}
	return spec.RefSchema("#/definitions/" + name)
}

func (b *builder) object(t reflect.Type) *spec.Schema {
	obj := new(spec.Schema).Typed("object", "")
	var required []string
	b.collectFields(t, obj, &required)
	if len(required) > 0 {
		obj.WithRequired(required...)
	}
	return obj
}

func (b *builder) collectFields(t reflect.Type, obj *spec.Schema, required *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, omitEmpty, skip := jsonName(f)
		if skip {
			continue
		}
		if f.Anonymous && indirect(f.Type).Kind() == reflect.Struct && f.Tag.Get("json") == "" {
			b.collectFields(indirect(f.Type), obj, required)
			continue
		}

		prop := b.fieldSchema(f)
		obj.SetProperty(name, *prop)

		rules := f.Tag.Get("validate")
		if hasRule(rules, "required") || (!omitEmpty && f.Type.Kind() != reflect.Ptr) {
			*required = append(*required, name)
		}
	}
}

func (b *builder) fieldSchema(f reflect.StructField) *spec.Schema {
	t := indirect(f.Type)
	var prop *spec.Schema
	if t.Kind() == reflect.Struct && t != timeType {
		prop = b.ref(t)
	} else {
		prop = b.schema(t)
	}

	rules := f.Tag.Get("validate")
	if t.Kind() == reflect.String {
		if n, ok := ruleValue(rules, "max"); ok {
			prop.WithMaxLength(n)
		}
		if n, ok := ruleValue(rules, "min"); ok {
			prop.WithMinLength(n)
		}
	}
	return prop
}

// schema maps a non-struct (or time) type onto an inline schema.
func (b *builder) schema(t reflect.Type) *spec.Schema {
	t = indirect(t)
	if t == timeType {
		return spec.DateTimeProperty()
	}
	switch t.Kind() {
	case reflect.String:
		return spec.StringProperty()
	case reflect.Bool:
		return spec.BooleanProperty()
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return spec.Int64Property()
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return spec.Int32Property()
	case reflect.Float32:
		return spec.Float32Property()
	case reflect.Float64:
		return spec.Float64Property()
	case reflect.Slice, reflect.Array:
		return spec.ArrayProperty(b.ref(t.Elem()))
	case reflect.Map:
		return spec.MapProperty(b.ref(t.Elem()))
	case reflect.Struct:
		return b.ref(t)
	default:
		return new(spec.Schema)
	}
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func jsonName(f reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	for _, o := range strings.Split(opts, ",") {
		if o == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

func hasRule(rules, rule string) bool {
	for _, r := range strings.Split(rules, ",") {
		if r == rule {
			return true
		}
	}
	return false
}

func ruleValue(rules, rule string) (int64, bool) {
	for _, r := range strings.Split(rules, ",") {
		k, v, ok := strings.Cut(r, "=")
		if !ok || k != rule {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
