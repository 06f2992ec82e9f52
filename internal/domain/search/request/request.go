package request

import (
	"fmt"

	"github.com/kailas-cloud/salarydex/internal/domain/search/filter"
)

// List parameter limits.
const (
	// MaxQueryLength is the maximum allowed name query length.
	MaxQueryLength  = 256
	DefaultPage     = 1
	DefaultPerPage  = 10
	MaxPerPage      = 100
	MaxResultWindow = 10000
)

// Request is a validated, paginated record listing.
type Request struct {
	name    string
	filters filter.Expression
	page    int
	perPage int
}

// New validates and normalizes list parameters.
// Zero page or perPage select the defaults. Offset plus page size must stay
// within the engine result window.
func New(name string, filters filter.Expression, page, perPage, maxPerPage int) (Request, error) {
	if len(name) > MaxQueryLength {
		return Request{}, fmt.Errorf("name too long (max %d chars)", MaxQueryLength)
	}
	if maxPerPage <= 0 || maxPerPage > MaxPerPage {
		maxPerPage = MaxPerPage
	}
	if page == 0 {
		page = DefaultPage
	}
	if page < 1 {
		return Request{}, fmt.Errorf("page must be >= 1")
	}
	if perPage == 0 {
		perPage = min(DefaultPerPage, maxPerPage)
	}
	if perPage < 1 || perPage > maxPerPage {
		return Request{}, fmt.Errorf("per_page must be between 1 and %d", maxPerPage)
	}
	if (page-1)*perPage+perPage > MaxResultWindow {
		return Request{}, fmt.Errorf("page %d exceeds the result window of %d records", page, MaxResultWindow)
	}
	return Request{name: name, filters: filters, page: page, perPage: perPage}, nil
}

// Name returns the fuzzy name query, empty when unset.
func (r *Request) Name() string { return r.name }

// Filters returns the exact-match conditions.
func (r *Request) Filters() filter.Expression { return r.filters }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// PerPage returns the page size.
func (r *Request) PerPage() int { return r.perPage }

// Offset returns the number of records skipped before this page.
func (r *Request) Offset() int { return (r.page - 1) * r.perPage }

// Limit returns the number of records requested.
func (r *Request) Limit() int { return r.perPage }

// TotalPages returns the number of pages needed for total records.
func (r *Request) TotalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(r.perPage) - 1) / int64(r.perPage))
}
