package repository

// ListWordQuery holds parameters for listing words of the collection.
type ListWordQuery struct {
	Pagination
	FilterOrder
}
