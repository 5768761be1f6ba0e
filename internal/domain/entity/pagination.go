package entity

// Pagination constants.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MinPageSize     = 1
	MaxPageSize     = 100

	DefaultSortField = "created_at"
	SortAsc          = "asc"
	SortDesc         = "desc"
)

// ListParams holds the shared list query parameters.
type ListParams struct {
	Page      int    `query:"page"`
	PageSize  int    `query:"page_size"`
	SortBy    string `query:"sort_by"`
	SortOrder string `query:"sort_order"`
}

// Normalize clamps pagination values into their valid ranges and applies
// defaults. Anything but "asc" sorts descending.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < MinPageSize {
		p.PageSize = DefaultPageSize
	} else if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if p.SortBy == "" {
		p.SortBy = DefaultSortField
	}
	if p.SortOrder != SortAsc {
		p.SortOrder = SortDesc
	}
}

// Offset calculates the row offset for the current page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns ceil(total/pageSize). A zero page size yields zero
// pages instead of a division error.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := total / int64(pageSize)
	if total%int64(pageSize) > 0 {
		pages++
	}
	return int(pages)
}

// PaginatedResponse is the shared list response envelope.
type PaginatedResponse[T any] struct {
	Items      []T    `json:"items"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	Total      int64  `json:"total"`
	TotalPages int    `json:"total_pages"`
	SortBy     string `json:"sort_by"`
	SortOrder  string `json:"sort_order"`
}

// NewPaginatedResponse builds the list envelope from items, the total row
// count and the normalized list parameters.
func NewPaginatedResponse[T any](items []T, total int64, params ListParams) PaginatedResponse[T] {
	if items == nil {
		items = []T{}
	}
	return PaginatedResponse[T]{
		Items:      items,
		Page:       params.Page,
		PageSize:   params.PageSize,
		Total:      total,
		TotalPages: TotalPages(total, params.PageSize),
		SortBy:     params.SortBy,
		SortOrder:  params.SortOrder,
	}
}
