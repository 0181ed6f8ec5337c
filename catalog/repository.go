package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuthorReader provides read operations for authors
type AuthorReader interface {
	SelectAuthor(ctx context.Context, id int64) (Author, error)
	SelectAuthors(ctx context.Context) ([]Author, error)
	CountAuthors(ctx context.Context) (int64, error)
}

// AuthorWriter provides write operations for authors
type AuthorWriter interface {
	InsertAuthor(ctx context.Context, a Author) (int64, error)
	UpdateAuthor(ctx context.Context, a Author) error
	DeleteAuthor(ctx context.Context, id int64) error
}

type BookReader interface {
	SelectBook(ctx context.Context, id int64) (Book, error)
	SelectBooks(ctx context.Context) ([]Book, error)
	SelectBooksByAuthor(ctx context.Context, authorID int64) ([]Book, error)
	CountBooks(ctx context.Context) (int64, error)
}

type BookWriter interface {
	InsertBook(ctx context.Context, b Book) (int64, error)
	UpdateBook(ctx context.Context, b Book) error
	DeleteBook(ctx context.Context, id int64) error
}

// LookupRepository holds the genre and language lookup tables
type LookupRepository interface {
	SelectGenres(ctx context.Context) ([]Genre, error)
	InsertGenre(ctx context.Context, g Genre) (int64, error)
	SelectLanguages(ctx context.Context) ([]Language, error)
	InsertLanguage(ctx context.Context, l Language) (int64, error)
}

// InstanceFilter selects instances by exact match. Zero values match anything.
type InstanceFilter struct {
	Status   Status
	Borrower string
}

// InstanceReader provides read operations for book instances.
// SelectInstances returns rows ordered by due_back ascending with nulls last, then by id.
type InstanceReader interface {
	SelectInstance(ctx context.Context, id uuid.UUID) (Instance, error)
	SelectInstances(ctx context.Context, filter InstanceFilter) ([]Instance, error)
	SelectInstancesByBook(ctx context.Context, bookID int64) ([]Instance, error)
	CountInstances(ctx context.Context, filter InstanceFilter) (int64, error)
}

type InstanceWriter interface {
	InsertInstance(ctx context.Context, i Instance) error
	UpdateInstance(ctx context.Context, i Instance) error
	// UpdateDueBack sets due_back only if the stored version still equals version.
	// It returns ErrConflict on a version mismatch and ErrNotFound for an unknown id.
	UpdateDueBack(ctx context.Context, id uuid.UUID, dueBack time.Time, version int64) error
}

type Repository interface {
	AuthorReader
	AuthorWriter
	BookReader
	BookWriter
	LookupRepository
	InstanceReader
	InstanceWriter
	Close(ctx context.Context) error
}
