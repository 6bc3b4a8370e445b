package middleware

import (
	"fmt"

	"inkwell/internal/observability"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TracingMiddleware opens a server span per request, continuing any incoming W3C trace context,
// and exposes the trace id to handlers (Locals "traceID") and clients (X-Trace-ID).
func TracingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := otel.GetTextMapPropagator().Extract(c.UserContext(), propagation.HeaderCarrier(c.GetReqHeaders()))

		ctx, span := observability.Tracer.Start(ctx, c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Method()),
				attribute.String("http.target", c.OriginalURL()),
				attribute.String("net.peer.ip", c.IP()),
			),
		)
		defer span.End()

		sc := span.SpanContext()
		c.Locals("traceID", sc.TraceID().String())
		c.Locals("spanID", sc.SpanID().String())
		c.Set("X-Trace-ID", sc.TraceID().String())
		c.SetUserContext(ctx)

		err := c.Next()
		finishServerSpan(c, span, err)
		return err
	}
}

// finishServerSpan renames the span after the matched route so span names stay low-cardinality,
// and records what the handlers left in Locals.
func finishServerSpan(c *fiber.Ctx, span trace.Span, err error) {
	if route := c.Route(); route != nil && route.Path != "" && route.Path != "/" {
		span.SetName(c.Method() + " " + route.Path)
		span.SetAttributes(attribute.String("http.route", route.Path))
	}

	status := c.Response().StatusCode()
	span.SetAttributes(attribute.Int("http.status_code", status))

	for local, attr := range map[string]string{
		"requestid": "request.id",
		"surface":   "api.surface",
		"userID":    "enduser.id",
	} {
		if v := c.Locals(local); v != nil {
			span.SetAttributes(attribute.String(attr, fmt.Sprint(v)))
		}
	}

	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case status >= fiber.StatusInternalServerError:
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", status))
	}
}
