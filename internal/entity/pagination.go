package entity

// PaginationInput with a zero Limit returns every row starting at Offset.
type PaginationInput struct {
	Limit  uint64
	Offset uint64
}

func NewPaginationInput(limit, offset uint64) *PaginationInput {
	return &PaginationInput{Limit: limit, Offset: offset}
}
