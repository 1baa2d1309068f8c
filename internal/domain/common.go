package domain

// Page is the paginated envelope returned by list endpoints.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// PageRequest is a 1-based page number and page size.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// HasNext reports whether rows remain after this page.
func (p PageRequest) HasNext(count int64) bool {
	return int64(p.Offset()+p.Limit) < count
}

// HasPrevious reports whether this is not the first page.
func (p PageRequest) HasPrevious() bool {
	return p.Page > 1
}
