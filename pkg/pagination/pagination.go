// Package pagination slices full collections into pages for rendering. The
// storefront pages client-side: the backend returns whole lists and the UI
// windows them.
package pagination

// Params selects one page of a collection.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// DefaultParams returns sensible pagination defaults.
func DefaultParams() Params {
	return Params{Page: 1, PerPage: 20}
}

// Normalize clamps out-of-range values to the defaults. PerPage is capped
// at 100.
func (p Params) Normalize() Params {
	d := DefaultParams()
	if p.Page < 1 {
		p.Page = d.Page
	}
	if p.PerPage < 1 || p.PerPage > 100 {
		p.PerPage = d.PerPage
	}
	return p
}

// offset returns the index of the first item on the page.
func (p Params) offset() int {
	return (p.Page - 1) * p.PerPage
}

// Result is one page of a collection.
type Result[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Paginate windows items down to the requested page. A page past the end
// yields empty data, not an error.
func Paginate[T any](items []T, params Params) Result[T] {
	params = params.Normalize()

	totalPages := len(items) / params.PerPage
	if len(items)%params.PerPage > 0 {
		totalPages++
	}

	start := params.offset()
	if start > len(items) {
		start = len(items)
	}
	end := start + params.PerPage
	if end > len(items) {
		end = len(items)
	}

	return Result[T]{
		Data:       items[start:end],
		TotalCount: len(items),
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1 && totalPages > 0,
	}
}
