package service

// Pagination 描述分页结果的元信息
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// NewPagination 根据过滤后的总数计算分页元信息
func NewPagination(total, limit, offset int) Pagination {
	return Pagination{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	}
}

// paginate 在已排序的结果集上做确定性切片。
// 必须在过滤与排序全部完成后调用，Total 才与过滤集一致。
// offset 超出总长时返回空切片而非错误。
func paginate[T any](items []T, limit, offset int) ([]T, Pagination) {
	meta := NewPagination(len(items), limit, offset)

	if offset >= len(items) {
		return []T{}, meta
	}

	end := offset + limit
	if end > len(items) {
		end = len(items)
	}

	return items[offset:end], meta
}
