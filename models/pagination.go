package models

// Pager mirrors the shape the frontend table component consumes.
type Pager struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
	PerPage     int `json:"perPage"`
}

type ListMeta struct {
	Total       int `json:"total"`
	PerPage     int `json:"per_page"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	From        int `json:"from"`
	To          int `json:"to"`
}

type InspectionList struct {
	Success bool                 `json:"success"`
	Data    []*InspectionWithSmp `json:"data"`
	Pager   Pager                `json:"pager"`
	Meta    ListMeta             `json:"meta"`
}

// InspectionFilters is the filter set understood by Search.
type InspectionFilters struct {
	Q                    string
	SmpName              string
	ControllingAuthority string
	Status               string
	StartDate            string
	EndDate              string
}

// ListParams is the clamped pagination request.
type ListParams struct {
	Page    int
	PerPage int
	Filters InspectionFilters
}

// Clamp enforces page >= 1 and per_page >= 1.
func (p *ListParams) Clamp() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 1
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// TotalPages is ceil(total / perPage).
func TotalPages(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
