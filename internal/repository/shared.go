package repository

// Page size bounds of list queries.
const (
	DefaultPageSize int32 = 50
	MaxPageSize     int32 = 10000
)

// Pagination selects one page of a list, numbered from 1.
type Pagination struct {
	PageNo   int32
	PageSize int32
}

// Normalize returns p with the first page and the default size filled in and the size capped.
func (p Pagination) Normalize() Pagination {
	if p.PageNo <= 0 {
		p.PageNo = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	return Pagination{PageNo: p.PageNo, PageSize: min(p.PageSize, MaxPageSize)}
}

func (p Pagination) Offset() int32 { return (p.PageNo - 1) * p.PageSize }

// FilterOrder carries the raw filter expression and order_by clause of a list request.
type FilterOrder struct {
	Filter  string
	OrderBy string
}

func (fo FilterOrder) GetFilter() string  { return fo.Filter }
func (fo FilterOrder) GetOrderBy() string { return fo.OrderBy }
