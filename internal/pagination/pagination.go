// Package pagination implements the page/limit query convention and the
// count/next/previous/results envelope shared by list endpoints.
package pagination

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is a parsed page request.
type Params struct {
	Page  int
	Limit int
}

// FromQuery reads `page` and `limit`, falling back to sane defaults on
// anything unparsable.
func FromQuery(c *gin.Context) Params {
	p := Params{Page: 1, Limit: DefaultLimit}
	if raw := c.Query("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			p.Page = page
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			p.Limit = limit
		}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is the response envelope.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPage wraps results, deriving next/previous links from the request
// URL.
func NewPage[T any](r *http.Request, p Params, count int64, results []T) Page[T] {
	page := Page[T]{Count: count, Results: results}
	if results == nil {
		page.Results = []T{}
	}
	if int64(p.Offset()+p.Limit) < count {
		page.Next = pageURL(r, p.Page+1, p.Limit)
	}
	if p.Page > 1 {
		page.Previous = pageURL(r, p.Page-1, p.Limit)
	}
	return page
}

func pageURL(r *http.Request, page, limit int) *string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
