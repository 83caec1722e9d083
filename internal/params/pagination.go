package params

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultSize = 20
	MaxSize     = 100
	// MaxPage keeps (page-1)*size within int for every accepted size.
	MaxPage = math.MaxInt / MaxSize
)

// URL: /restaurants/7/reviews?page=2&size=30
// → ParsePagination() → Pagination{Size:30, Page:2, Offset:30}
// → SQL: ... LIMIT 30 OFFSET 30
// → ComputeMeta(total) fills TotalPages, HasNext, HasPrev.
type Pagination struct {
	Size       int  `json:"size"`
	Offset     int  `json:"-"`
	Page       int  `json:"page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// New returns a normalized Pagination for page and size.
func New(page, size int) Pagination {
	switch {
	case size <= 0:
		size = DefaultSize
	case size > MaxSize:
		size = MaxSize
	}
	switch {
	case page <= 0:
		page = 1
	case page > MaxPage:
		page = MaxPage
	}
	return Pagination{Page: page, Size: size, Offset: (page - 1) * size}
}

// ParsePagination parses ?page=...&size=... safely. `limit` is accepted as an
// alias for size.
func ParsePagination(q url.Values) Pagination {
	size := 0
	raw := strings.TrimSpace(q.Get("size"))
	if raw == "" {
		raw = strings.TrimSpace(q.Get("limit"))
	}
	if raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			size = n
		}
	}

	page := 0
	if pageStr := strings.TrimSpace(q.Get("page")); pageStr != "" {
		n, err := strconv.Atoi(pageStr)
		switch {
		case err == nil:
			page = n
		case errors.Is(err, strconv.ErrRange) && n > 0:
			page = MaxPage
		}
	}

	return New(page, size)
}

// ComputeMeta updates pagination after fetching total count.
func (p *Pagination) ComputeMeta(total int) {
	p.Total = total
	if p.Size > 0 {
		p.TotalPages = int(math.Ceil(float64(total) / float64(p.Size)))
	}
	p.HasPrev = p.Page > 1
	p.HasNext = p.Offset+p.Size < total
}

// Page is one page of items plus the metadata the wire contract exposes.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	Size       int  `json:"size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// NewPage computes the metadata of p for total and wraps items.
func NewPage[T any](items []T, p Pagination, total int) *Page[T] {
	p.ComputeMeta(total)
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:      items,
		Page:       p.Page,
		Size:       p.Size,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		HasNext:    p.HasNext,
	}
}
