package dto

// Pagination is the envelope shared by every list endpoint.
type Pagination struct {
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
}

// NewPagination computes the envelope from a total count and page params.
func NewPagination(total int64, page, limit int) Pagination {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return Pagination{
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    limit,
	}
}
