// Package pagination implements page-number pagination with a
// {count, next, previous, results} envelope.
package pagination

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	PageParam     = "page"
	PageSizeParam = "page_size"
)

// Limits bounds the page size a client may ask for.
type Limits struct {
	DefaultSize int
	MaxSize     int
}

// Params is a parsed page request. Page is 1-based and may be out of range.
type Params struct {
	Page     int
	PageSize int
}

// Parse reads page and page_size. A non-numeric page is a validation error.
// page_size falls back to the default when absent, non-numeric or non-positive,
// and is clamped to the maximum.
func Parse(rawPage, rawSize string, limits Limits) (Params, error) {
	p := Params{Page: 1, PageSize: limits.DefaultSize}

	if rawPage = strings.TrimSpace(rawPage); rawPage != "" {
		page, err := strconv.Atoi(rawPage)
		if err != nil {
			return Params{}, models.NewFieldValidationError(map[string]string{
				PageParam: "A valid integer is required.",
			})
		}
		p.Page = page
	}

	if size, err := strconv.Atoi(strings.TrimSpace(rawSize)); err == nil && size > 0 {
		p.PageSize = size
	}
	if limits.MaxSize > 0 && p.PageSize > limits.MaxSize {
		p.PageSize = limits.MaxSize
	}
	return p, nil
}

// FromRequest parses pagination parameters from the query string.
func FromRequest(c *fiber.Ctx, limits Limits) (Params, error) {
	return Parse(c.Query(PageParam), c.Query(PageSizeParam), limits)
}

// InRange reports whether the page number can address rows at all.
func (p Params) InRange() bool {
	return p.Page >= 1
}

// Covers reports whether the page holds rows out of count matching rows.
// It compares page numbers, so a huge page never overflows into a valid offset.
func (p Params) Covers(count int64) bool {
	return p.InRange() && p.Page <= p.LastPage(count)
}

// Offset is the number of rows skipped before this page, saturating at math.MaxInt.
func (p Params) Offset() int {
	if !p.InRange() || p.PageSize <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// Limit is the maximum number of rows on this page.
func (p Params) Limit() int {
	return p.PageSize
}

// LastPage is the highest page number holding rows; zero when there are none.
func (p Params) LastPage(count int64) int {
	if count <= 0 || p.PageSize <= 0 {
		return 0
	}
	return int((count + int64(p.PageSize) - 1) / int64(p.PageSize))
}

// Page is the paginated response envelope.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// New builds the envelope for items fetched with p out of count matching rows.
// Links are absolute and derived from requestURL with only the page parameter replaced.
func New[T any](items []T, count int64, p Params, requestURL *url.URL) Page[T] {
	if items == nil {
		items = []T{}
	}
	page := Page[T]{Count: count, Results: items}

	last := p.LastPage(count)
	switch {
	case last == 0:
		// No rows: neither direction exists.
	case p.Page < 1:
		page.Next = pageLink(requestURL, 1)
	case p.Page > last:
		page.Previous = pageLink(requestURL, last)
	default:
		if p.Page < last {
			page.Next = pageLink(requestURL, p.Page+1)
		}
		if p.Page > 1 {
			page.Previous = pageLink(requestURL, p.Page-1)
		}
	}
	return page
}

// pageLink returns requestURL pointing at page n; page 1 drops the parameter.
func pageLink(requestURL *url.URL, n int) *string {
	if requestURL == nil {
		return nil
	}
	u := *requestURL
	q := u.Query()
	if n <= 1 {
		q.Del(PageParam)
	} else {
		q.Set(PageParam, strconv.Itoa(n))
	}
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}

// RequestURL reconstructs the absolute URL of the current request.
func RequestURL(c *fiber.Ctx) *url.URL {
	u, err := url.Parse(c.BaseURL() + c.OriginalURL())
	if err != nil {
		return nil
	}
	return u
}
