package fixtures

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/marcelsud/local-library/catalog"
	"gopkg.in/yaml.v3"
)

/* Loader reads catalog fixtures from YAML and seeds a catalog with them
 * Authors and books get a key so later records can reference them
 * before the store has assigned any ids
 */

type Loader struct {
	file      File
	authors   map[string]catalog.Author
	books     map[string]catalog.Book
	instances []catalog.Instance
}

func NewLoader() *Loader {
	return &Loader{
		authors: make(map[string]catalog.Author),
		books:   make(map[string]catalog.Book),
	}
}

// Load reads, parses and validates a fixture file
func (l *Loader) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading fixtures file: %w", err)
	}
	return l.Parse(data)
}

// Parse validates fixtures already in memory
func (l *Loader) Parse(data []byte) error {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing fixtures YAML: %w", err)
	}
	l.file = file
	l.authors = make(map[string]catalog.Author)
	l.books = make(map[string]catalog.Book)
	l.instances = nil

	for _, af := range file.Authors {
		if err := l.addAuthor(af); err != nil {
			return fmt.Errorf("validating author %q: %w", af.Key, err)
		}
	}
	for _, bf := range file.Books {
		if err := l.addBook(bf); err != nil {
			return fmt.Errorf("validating book %q: %w", bf.Key, err)
		}
	}
	for n, inf := range file.Instances {
		if err := l.addInstance(inf); err != nil {
			return fmt.Errorf("validating instance %d: %w", n+1, err)
		}
	}
	return nil
}

func (l *Loader) addAuthor(af AuthorFixture) error {
	if af.Key == "" {
		return fmt.Errorf("key is required")
	}
	if _, exists := l.authors[af.Key]; exists {
		return fmt.Errorf("duplicate key")
	}
	born, err := optionalDay(af.DateOfBirth)
	if err != nil {
		return fmt.Errorf("date_of_birth: %w", err)
	}
	died, err := optionalDay(af.DateOfDeath)
	if err != nil {
		return fmt.Errorf("date_of_death: %w", err)
	}
	a := catalog.Author{
		FirstName:   af.FirstName,
		LastName:    af.LastName,
		DateOfBirth: born,
		DateOfDeath: died,
	}
	if err := a.Validate(); err != nil {
		return err
	}
	l.authors[af.Key] = a
	return nil
}

func (l *Loader) addBook(bf BookFixture) error {
	if bf.Key == "" {
		return fmt.Errorf("key is required")
	}
	if _, exists := l.books[bf.Key]; exists {
		return fmt.Errorf("duplicate key")
	}
	if _, ok := l.authors[bf.Author]; !ok {
		return fmt.Errorf("unknown author %q", bf.Author)
	}
	for _, g := range bf.Genres {
		if !slices.Contains(l.file.Genres, g) {
			return fmt.Errorf("unknown genre %q", g)
		}
	}
	if bf.Language != "" && !slices.Contains(l.file.Languages, bf.Language) {
		return fmt.Errorf("unknown language %q", bf.Language)
	}
	// AuthorID is resolved in Apply
	b := catalog.Book{Title: bf.Title, AuthorID: 1, Summary: bf.Summary, ISBN: bf.ISBN}
	if err := b.Validate(); err != nil {
		return err
	}
	l.books[bf.Key] = b
	return nil
}

func (l *Loader) addInstance(inf InstanceFixture) error {
	if _, ok := l.books[inf.Book]; !ok {
		return fmt.Errorf("unknown book %q", inf.Book)
	}
	status, err := catalog.ParseStatus(inf.Status)
	if err != nil {
		return err
	}
	dueBack, err := optionalDay(inf.DueBack)
	if err != nil {
		return fmt.Errorf("due_back: %w", err)
	}
	i := catalog.Instance{BookID: 1, Imprint: inf.Imprint, Status: status, DueBack: dueBack, Borrower: inf.Borrower}
	if err := i.Validate(); err != nil {
		return err
	}
	l.instances = append(l.instances, i)
	return nil
}

func optionalDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := catalog.ParseDay(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// File returns the parsed fixtures
func (l *Loader) File() File {
	return l.file
}

// Apply creates the loaded records through svc, resolving keys and names to the ids it assigns
func (l *Loader) Apply(ctx context.Context, svc catalog.UseCase) (Result, error) {
	var res Result

	genreIDs := make(map[string]int64, len(l.file.Genres))
	for _, name := range l.file.Genres {
		g, err := svc.CreateGenre(ctx, name)
		if err != nil {
			return res, fmt.Errorf("creating genre %q: %w", name, err)
		}
		genreIDs[name] = g.ID
		res.Genres++
	}

	languageIDs := make(map[string]int64, len(l.file.Languages))
	for _, name := range l.file.Languages {
		lang, err := svc.CreateLanguage(ctx, name)
		if err != nil {
			return res, fmt.Errorf("creating language %q: %w", name, err)
		}
		languageIDs[name] = lang.ID
		res.Languages++
	}

	authorIDs := make(map[string]int64, len(l.file.Authors))
	for _, af := range l.file.Authors {
		a, err := svc.CreateAuthor(ctx, l.authors[af.Key])
		if err != nil {
			return res, fmt.Errorf("creating author %q: %w", af.Key, err)
		}
		authorIDs[af.Key] = a.ID
		res.Authors++
	}

	bookIDs := make(map[string]int64, len(l.file.Books))
	for _, bf := range l.file.Books {
		b := l.books[bf.Key]
		b.AuthorID = authorIDs[bf.Author]
		for _, g := range bf.Genres {
			b.GenreIDs = append(b.GenreIDs, genreIDs[g])
		}
		if bf.Language != "" {
			id := languageIDs[bf.Language]
			b.LanguageID = &id
		}
		created, err := svc.CreateBook(ctx, b)
		if err != nil {
			return res, fmt.Errorf("creating book %q: %w", bf.Key, err)
		}
		bookIDs[bf.Key] = created.ID
		res.Books++
	}

	for n, inf := range l.file.Instances {
		i := l.instances[n]
		i.BookID = bookIDs[inf.Book]
		if _, err := svc.CreateInstance(ctx, i); err != nil {
			return res, fmt.Errorf("creating instance %d: %w", n+1, err)
		}
		res.Instances++
	}

	return res, nil
}
