package record

import "math"

// DefaultPageSize is the page size used when a resource does not configure one.
const DefaultPageSize = 10

// PageSizing selects how a resource resolves its page size. With Fixed > 0
// the caller-supplied value is ignored entirely; otherwise the caller value
// is used, falling back to Default (or DefaultPageSize) when missing or
// non-positive.
type PageSizing struct {
	Fixed   int
	Default int
}

// Resolve returns the effective page size for a request.
func (p PageSizing) Resolve(requested int) int {
	if p.Fixed > 0 {
		return p.Fixed
	}
	if requested > 0 {
		return requested
	}
	if p.Default > 0 {
		return p.Default
	}
	return DefaultPageSize
}

// NormalizePage clamps the requested page number up to 1. Out-of-range input
// is never rejected.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// PagedResult is the paging envelope returned by every list endpoint. Field
// names are part of the wire contract.
type PagedResult[T any] struct {
	Page       int   `json:"Page"`
	PageSize   int   `json:"PageSize"`
	TotalItems int64 `json:"TotalItems"`
	TotalPages int   `json:"TotalPages"`
	Items      []T   `json:"Items"`
}

// AssemblePage builds the paging envelope from a fetched slice. It assumes
// items came from a find with skip = (page-1)*pageSize and limit = pageSize;
// it never re-fetches or re-sorts.
func AssemblePage[T any](page, pageSize int, totalItems int64, items []T) PagedResult[T] {
	page = NormalizePage(page)
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(pageSize)))
	}
	if items == nil {
		items = []T{}
	}
	return PagedResult[T]{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
		Items:      items,
	}
}
