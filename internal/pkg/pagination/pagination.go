package pagination

import "github.com/lingrid/core/internal/pkg/response"

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

// Query holds normalized pagination parameters.
type Query struct {
	Page int
	Size int
}

// Normalize clamps raw page/size values from an RPC input into valid bounds.
func Normalize(page, size int) Query {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Query{Page: page, Size: size}
}

// Offset returns the row offset for the query.
func (q Query) Offset() int { return (q.Page - 1) * q.Size }

// Meta builds the pagination metadata for a total row count.
func (q Query) Meta(total int64) response.Pagination {
	totalPage := int((total + int64(q.Size) - 1) / int64(q.Size))
	return response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   totalPage,
		Size:        q.Size,
		HasNextPage: q.Page < totalPage,
	}
}
