package model

// PageMeta describes the pagination window returned by list endpoints.
type PageMeta struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

// Page is a paginated list response: {"meta": {...}, "data": [...]}.
type Page[T any] struct {
	Meta PageMeta `json:"meta"`
	Data []T      `json:"data"`
}

// TotalPages returns the number of pages implied by Meta, at least 1.
func (p Page[T]) TotalPages() int {
	if p.Meta.PerPage <= 0 || p.Meta.Total <= 0 {
		return 1
	}
	return (p.Meta.Total + p.Meta.PerPage - 1) / p.Meta.PerPage
}
