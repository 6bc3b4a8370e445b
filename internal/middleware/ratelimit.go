package middleware

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy decides what happens to a request when Redis cannot be reached.
type FailPolicy int

const (
	// FailOpen lets the request through.
	FailOpen FailPolicy = iota
	// FailClosed answers 503.
	FailClosed
)

var errNoRedis = errors.New("redis client is nil")

// Limit is a fixed-window budget of Max requests per Window for one named resource.
type Limit struct {
	Name   string
	Max    int
	Window time.Duration
	Policy FailPolicy
}

// Decision is the outcome of charging one request against a Limit.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// rateLimitBypassed reports whether APP_ENV disables throttling for local and test runs.
func rateLimitBypassed() bool {
	switch os.Getenv("APP_ENV") {
	case "", "test", "development", "stress":
		return true
	}
	return false
}

func limitKey(name, id string) string {
	return fmt.Sprintf("rl:%s:%s", name, id)
}

// Allow charges one request by id against l. The counter and its TTL are read in one round trip;
// a counter without a TTL gets the window applied, so a lost EXPIRE never pins a client forever.
func Allow(ctx context.Context, rdb *redis.Client, l Limit, id string) (Decision, error) {
	if rateLimitBypassed() {
		return Decision{Allowed: true, Remaining: l.Max}, nil
	}
	if rdb == nil {
		return Decision{}, errNoRedis
	}

	key := limitKey(l.Name, id)
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, key)
		ttl = p.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return Decision{}, err
	}

	retry := ttl.Val()
	if retry < 0 {
		if err := rdb.Expire(ctx, key, l.Window).Err(); err != nil {
			return Decision{}, err
		}
		retry = l.Window
	}

	count := incr.Val()
	return Decision{
		Allowed:    count <= int64(l.Max),
		Remaining:  max(l.Max-int(min(count, math.MaxInt32)), 0),
		RetryAfter: retry,
	}, nil
}

// RateLimit enforces l per client: the authenticated user when known, the remote IP otherwise.
// Responses carry X-RateLimit-Limit and X-RateLimit-Remaining; a 429 also carries Retry-After.
func RateLimit(rdb *redis.Client, l Limit) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := "ip:" + c.IP()
		if uid := c.Locals("userID"); uid != nil {
			id = fmt.Sprintf("user:%v", uid)
		}
		name := l.Name
		if name == "" {
			name = c.Path()
		}

		d, err := Allow(c.UserContext(), rdb, Limit{Name: name, Max: l.Max, Window: l.Window}, id)
		if err != nil {
			if l.Policy == FailClosed {
				Logger.WarnContext(c.UserContext(), "rate limit store unavailable, failing closed",
					"limit", name, "error", err)
				return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
					Error: "Rate limiting is temporarily unavailable.",
					Code:  models.CodeInternal,
				})
			}
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(l.Max))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		if !d.Allowed {
			observability.RateLimitRejections.WithLabelValues(name).Inc()
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(d.RetryAfter.Seconds()))))
			return models.RespondWithError(c, fiber.StatusTooManyRequests, &models.AppError{
				Code:    models.CodeRateLimited,
				Message: "Request was throttled.",
			})
		}
		return c.Next()
	}
}
