package catalog

import (
	"fmt"
	"slices"
)

// Book is a title in the catalog, independent of its physical copies
type Book struct {
	ID         int64
	Title      string
	AuthorID   int64
	Summary    string
	ISBN       string
	GenreIDs   []int64
	LanguageID *int64
}

// Validate checks the fields every book must carry
func (b Book) Validate() error {
	if b.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if b.AuthorID <= 0 {
		return fmt.Errorf("%w: author is required", ErrInvalid)
	}
	genres := slices.Clone(b.GenreIDs)
	slices.Sort(genres)
	if len(slices.Compact(genres)) != len(b.GenreIDs) {
		return fmt.Errorf("%w: genres must not repeat", ErrInvalid)
	}
	return nil
}

// Genre is a lookup entity, e.g. "Science Fiction"
type Genre struct {
	ID   int64
	Name string
}

// Language is the language a book is written in
type Language struct {
	ID   int64
	Name string
}
