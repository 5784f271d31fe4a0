package models

import "encoding/json"

// Envelope wraps every API response.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Meta    *PageMeta       `json:"meta,omitempty"`
}

type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// HasNext reports whether a page after m.Page exists.
func (m *PageMeta) HasNext() bool {
	return m != nil && m.Page < m.TotalPages
}

// Page is one page of a paginated listing. Meta is nil when the backend
// sent none.
type Page[T any] struct {
	Items []T
	Meta  *PageMeta
}
