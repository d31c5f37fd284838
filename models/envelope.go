package models

// Envelope is the paginated wrapper used by the API's list endpoints.
type Envelope[T any] struct {
	Status bool `json:"status"`
	Data   T    `json:"data"`
	Meta   Meta `json:"meta"`
}

type Meta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

func (m Meta) HasNext() bool {
	return m.CurrentPage < m.LastPage
}

func (m Meta) HasPrev() bool {
	return m.CurrentPage > 1
}

// ListQuery carries the common list parameters.
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	Filters map[string]string
}
