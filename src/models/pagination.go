package models

import "math"

// PaginationParams holds paging query values. Limit 0 returns everything.
type PaginationParams struct {
	Page  int `json:"page" query:"page" example:"1"`
	Limit int `json:"limit" query:"limit" example:"10"`
}

// PaginatedResponse is the paged response envelope
type PaginatedResponse struct {
	Data        interface{} `json:"data"`
	Total       int64       `json:"total"`
	Page        int         `json:"page"`
	Limit       int         `json:"limit"`
	TotalPages  int         `json:"totalPages"`
	HasNext     bool        `json:"hasNext"`
	HasPrevious bool        `json:"hasPrevious"`
}

// Normalize clamps page to at least 1 and limit to at least 0.
func (p PaginationParams) Normalize() PaginationParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 0 {
		p.Limit = 0
	}
	return p
}

// NewPaginatedResponse builds the envelope for one page of data
func NewPaginatedResponse(data interface{}, total int64, params PaginationParams) *PaginatedResponse {
	params = params.Normalize()
	limit := params.Limit
	if limit == 0 {
		limit = int(total)
	}
	totalPages := 1
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	if totalPages == 0 {
		totalPages = 1
	}

	return &PaginatedResponse{
		Data:        data,
		Total:       total,
		Page:        params.Page,
		Limit:       limit,
		TotalPages:  totalPages,
		HasNext:     params.Page < totalPages,
		HasPrevious: params.Page > 1,
	}
}

// Paginate returns the requested page of items.
func Paginate[T any](items []T, params PaginationParams) []T {
	params = params.Normalize()
	if params.Limit == 0 {
		return items
	}
	// compare page counts before multiplying so a huge page cannot overflow
	pages := len(items) / params.Limit
	if len(items)%params.Limit != 0 {
		pages++
	}
	if params.Page > pages {
		return []T{}
	}
	start := (params.Page - 1) * params.Limit
	end := start + params.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
