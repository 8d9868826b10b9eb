package response

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// MaxPageSize bounds the page size a caller may request.
const MaxPageSize = 500

// Paginate computes the window of a list of total items. Page is 1-based;
// out-of-range pages yield an empty window (From == To). Page sizes above
// MaxPageSize are clamped.
func Paginate(page, pageSize, total int) Pagination {
	if pageSize <= 0 {
		pageSize = 50
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page <= 0 {
		page = 1
	}
	if total < 0 {
		total = 0
	}
	totalPages := (total + pageSize - 1) / pageSize

	from, to := total, total
	if page <= totalPages {
		from = (page - 1) * pageSize
		to = min(total, from+pageSize)
	}
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int64(totalPages),
		TotalItems: int64(total),
		HasMore:    page < totalPages,
		From:       from,
		To:         to,
	}
}
