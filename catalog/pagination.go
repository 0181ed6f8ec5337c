package catalog

import "fmt"

// PageSize is the number of records shown per listing page
const PageSize = 10

// Page is one slice of a listing
type Page[T any] struct {
	Items  []T
	Number int
	Size   int
	Total  int
}

// Pages returns the number of pages needed for the listing. An empty listing still has one page.
func (p Page[T]) Pages() int {
	if p.Total == 0 {
		return 1
	}
	return (p.Total + p.Size - 1) / p.Size
}

// Paginate cuts page number (1-based) out of items. Asking for a page past the
// last one is ErrNotFound; page 1 of an empty listing is an empty page.
func Paginate[T any](items []T, number int) (Page[T], error) {
	if number < 1 {
		number = 1
	}
	p := Page[T]{Number: number, Size: PageSize, Total: len(items)}
	if number > p.Pages() {
		return Page[T]{}, fmt.Errorf("page %d: %w", number, ErrNotFound)
	}
	start := (number - 1) * PageSize
	end := min(start+PageSize, len(items))
	p.Items = items[start:end]
	return p, nil
}
