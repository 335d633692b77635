package shell

import "github.com/AntonStoeckl/library-catalog-go/catalogstore"

// PageInfo describes the position of a result page within all results.
type PageInfo struct {
	Number     uint
	Size       uint
	TotalItems int
	TotalPages uint
}

// NewPageInfo computes the page count for totalItems. There is always at least one page.
// A number past the last page is clamped to the last page.
func NewPageInfo(number uint, size uint, totalItems int) PageInfo {
	if number < 1 {
		number = 1
	}

	totalPages := uint(1)
	if size > 0 && totalItems > 0 {
		totalPages = (uint(totalItems) + size - 1) / size
	}

	if number > totalPages {
		number = totalPages
	}

	return PageInfo{
		Number:     number,
		Size:       size,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Page returns the store page for this position.
func (p PageInfo) Page() catalogstore.Page {
	return catalogstore.PageNumber(p.Number, p.Size)
}

// HasPrevious reports whether there is a page before this one.
func (p PageInfo) HasPrevious() bool {
	return p.Number > 1
}

// HasNext reports whether there is a page after this one.
func (p PageInfo) HasNext() bool {
	return p.Number < p.TotalPages
}
