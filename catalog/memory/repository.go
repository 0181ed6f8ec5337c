package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/local-library/catalog"
)

/* In-memory implementation of catalog.Repository
 * Mirrors the SQL store semantics (ordering, not found, conflicts) so it can back
 * local runs and tests without a database
 */

type Repository struct {
	mu        sync.RWMutex
	nextID    int64
	authors   map[int64]catalog.Author
	books     map[int64]catalog.Book
	genres    map[int64]catalog.Genre
	languages map[int64]catalog.Language
	instances map[uuid.UUID]catalog.Instance
}

func NewRepository() *Repository {
	return &Repository{
		authors:   make(map[int64]catalog.Author),
		books:     make(map[int64]catalog.Book),
		genres:    make(map[int64]catalog.Genre),
		languages: make(map[int64]catalog.Language),
		instances: make(map[uuid.UUID]catalog.Instance),
	}
}

func (r *Repository) id() int64 {
	r.nextID++
	return r.nextID
}

func (r *Repository) SelectAuthor(ctx context.Context, id int64) (catalog.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.authors[id]
	if !ok {
		return catalog.Author{}, catalog.ErrNotFound
	}
	return a, nil
}

// SelectAuthors returns authors ordered by last then first name
func (r *Repository) SelectAuthors(ctx context.Context) ([]catalog.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]catalog.Author, 0, len(r.authors))
	for _, a := range r.authors {
		all = append(all, a)
	}
	slices.SortFunc(all, func(a, b catalog.Author) int {
		if c := strings.Compare(a.LastName, b.LastName); c != 0 {
			return c
		}
		if c := strings.Compare(a.FirstName, b.FirstName); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return all, nil
}

func (r *Repository) CountAuthors(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.authors)), nil
}

func (r *Repository) InsertAuthor(ctx context.Context, a catalog.Author) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.id()
	r.authors[a.ID] = a
	return a.ID, nil
}

func (r *Repository) UpdateAuthor(ctx context.Context, a catalog.Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.authors[a.ID]; !ok {
		return catalog.ErrNotFound
	}
	r.authors[a.ID] = a
	return nil
}

func (r *Repository) DeleteAuthor(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.authors[id]; !ok {
		return catalog.ErrNotFound
	}
	for _, b := range r.books {
		if b.AuthorID == id {
			return fmt.Errorf("author %d has books: %w", id, catalog.ErrInUse)
		}
	}
	delete(r.authors, id)
	return nil
}

func (r *Repository) SelectBook(ctx context.Context, id int64) (catalog.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.books[id]
	if !ok {
		return catalog.Book{}, catalog.ErrNotFound
	}
	return b, nil
}

func (r *Repository) SelectBooks(ctx context.Context) ([]catalog.Book, error) {
	return r.filterBooks(func(catalog.Book) bool { return true }), nil
}

func (r *Repository) SelectBooksByAuthor(ctx context.Context, authorID int64) ([]catalog.Book, error) {
	return r.filterBooks(func(b catalog.Book) bool { return b.AuthorID == authorID }), nil
}

// filterBooks returns the books matching keep, ordered by title
func (r *Repository) filterBooks(keep func(catalog.Book) bool) []catalog.Book {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]catalog.Book, 0, len(r.books))
	for _, b := range r.books {
		if keep(b) {
			all = append(all, b)
		}
	}
	slices.SortFunc(all, func(a, b catalog.Book) int {
		if c := strings.Compare(a.Title, b.Title); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return all
}

func (r *Repository) CountBooks(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.books)), nil
}

// checkBookRefs must be called with the lock held
func (r *Repository) checkBookRefs(b catalog.Book) error {
	if _, ok := r.authors[b.AuthorID]; !ok {
		return fmt.Errorf("author %d: %w", b.AuthorID, catalog.ErrNotFound)
	}
	for _, g := range b.GenreIDs {
		if _, ok := r.genres[g]; !ok {
			return fmt.Errorf("genre %d: %w", g, catalog.ErrNotFound)
		}
	}
	if b.LanguageID != nil {
		if _, ok := r.languages[*b.LanguageID]; !ok {
			return fmt.Errorf("language %d: %w", *b.LanguageID, catalog.ErrNotFound)
		}
	}
	return nil
}

func (r *Repository) InsertBook(ctx context.Context, b catalog.Book) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkBookRefs(b); err != nil {
		return 0, err
	}
	b.ID = r.id()
	b.GenreIDs = slices.Clone(b.GenreIDs)
	r.books[b.ID] = b
	return b.ID, nil
}

func (r *Repository) UpdateBook(ctx context.Context, b catalog.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[b.ID]; !ok {
		return catalog.ErrNotFound
	}
	if err := r.checkBookRefs(b); err != nil {
		return err
	}
	b.GenreIDs = slices.Clone(b.GenreIDs)
	r.books[b.ID] = b
	return nil
}

func (r *Repository) DeleteBook(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return catalog.ErrNotFound
	}
	for _, i := range r.instances {
		if i.BookID == id {
			return fmt.Errorf("book %d has instances: %w", id, catalog.ErrInUse)
		}
	}
	delete(r.books, id)
	return nil
}

func (r *Repository) SelectGenres(ctx context.Context) ([]catalog.Genre, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]catalog.Genre, 0, len(r.genres))
	for _, g := range r.genres {
		all = append(all, g)
	}
	slices.SortFunc(all, func(a, b catalog.Genre) int { return strings.Compare(a.Name, b.Name) })
	return all, nil
}

func (r *Repository) InsertGenre(ctx context.Context, g catalog.Genre) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.genres {
		if existing.Name == g.Name {
			return 0, fmt.Errorf("genre %q: %w", g.Name, catalog.ErrDuplicate)
		}
	}
	g.ID = r.id()
	r.genres[g.ID] = g
	return g.ID, nil
}

func (r *Repository) SelectLanguages(ctx context.Context) ([]catalog.Language, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]catalog.Language, 0, len(r.languages))
	for _, l := range r.languages {
		all = append(all, l)
	}
	slices.SortFunc(all, func(a, b catalog.Language) int { return strings.Compare(a.Name, b.Name) })
	return all, nil
}

func (r *Repository) InsertLanguage(ctx context.Context, l catalog.Language) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.languages {
		if existing.Name == l.Name {
			return 0, fmt.Errorf("language %q: %w", l.Name, catalog.ErrDuplicate)
		}
	}
	l.ID = r.id()
	r.languages[l.ID] = l
	return l.ID, nil
}

func (r *Repository) SelectInstance(ctx context.Context, id uuid.UUID) (catalog.Instance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.instances[id]
	if !ok {
		return catalog.Instance{}, catalog.ErrNotFound
	}
	return i, nil
}

func (r *Repository) SelectInstances(ctx context.Context, filter catalog.InstanceFilter) ([]catalog.Instance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var all []catalog.Instance
	for _, i := range r.instances {
		if matches(i, filter) {
			all = append(all, i)
		}
	}
	sortByDueBack(all)
	return all, nil
}

func (r *Repository) SelectInstancesByBook(ctx context.Context, bookID int64) ([]catalog.Instance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var all []catalog.Instance
	for _, i := range r.instances {
		if i.BookID == bookID {
			all = append(all, i)
		}
	}
	sortByDueBack(all)
	return all, nil
}

func (r *Repository) CountInstances(ctx context.Context, filter catalog.InstanceFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, i := range r.instances {
		if matches(i, filter) {
			n++
		}
	}
	return n, nil
}

func (r *Repository) InsertInstance(ctx context.Context, i catalog.Instance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[i.BookID]; !ok {
		return fmt.Errorf("book %d: %w", i.BookID, catalog.ErrNotFound)
	}
	if _, ok := r.instances[i.ID]; ok {
		return fmt.Errorf("instance %s: %w", i.ID, catalog.ErrDuplicate)
	}
	if i.Version == 0 {
		i.Version = 1
	}
	r.instances[i.ID] = i
	return nil
}

func (r *Repository) UpdateInstance(ctx context.Context, i catalog.Instance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.instances[i.ID]
	if !ok {
		return catalog.ErrNotFound
	}
	if stored.Version != i.Version {
		return catalog.ErrConflict
	}
	if _, ok := r.books[i.BookID]; !ok {
		return fmt.Errorf("book %d: %w", i.BookID, catalog.ErrNotFound)
	}
	i.Version++
	r.instances[i.ID] = i
	return nil
}

func (r *Repository) UpdateDueBack(ctx context.Context, id uuid.UUID, dueBack time.Time, version int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.instances[id]
	if !ok {
		return catalog.ErrNotFound
	}
	if stored.Version != version {
		return catalog.ErrConflict
	}
	stored.DueBack = catalog.DayPtr(dueBack)
	stored.Version++
	r.instances[id] = stored
	return nil
}

func (r *Repository) Close(ctx context.Context) error {
	return nil
}

func matches(i catalog.Instance, f catalog.InstanceFilter) bool {
	if f.Status != 0 && i.Status != f.Status {
		return false
	}
	if f.Borrower != "" && i.Borrower != f.Borrower {
		return false
	}
	return true
}

// sortByDueBack orders by due date ascending with undated instances last, then by id
func sortByDueBack(all []catalog.Instance) {
	slices.SortFunc(all, func(a, b catalog.Instance) int {
		switch {
		case a.DueBack == nil && b.DueBack != nil:
			return 1
		case a.DueBack != nil && b.DueBack == nil:
			return -1
		case a.DueBack != nil && b.DueBack != nil:
			if c := a.DueBack.Compare(*b.DueBack); c != 0 {
				return c
			}
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
}
