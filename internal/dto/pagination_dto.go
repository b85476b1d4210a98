package dto

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ClampPage normalizes a raw page/limit pair: page starts at 1 and the
// page size is bounded to [1, 100].
func ClampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func NewPaginationResponse(page, limit int, totalItems int64) PaginationResponse {
	totalPages := int(totalItems / int64(limit))
	if totalItems%int64(limit) != 0 {
		totalPages++
	}
	return PaginationResponse{
		Page:       page,
		Limit:      limit,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}
