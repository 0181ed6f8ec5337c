package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// UseCase defines the catalog operations exposed to the HTTP layer
type UseCase interface {
	CreateAuthor(ctx context.Context, a Author) (Author, error)
	GetAuthor(ctx context.Context, id int64) (Author, error)
	ListAuthors(ctx context.Context) ([]Author, error)
	UpdateAuthor(ctx context.Context, a Author) error
	DeleteAuthor(ctx context.Context, id int64) error

	CreateBook(ctx context.Context, b Book) (Book, error)
	GetBook(ctx context.Context, id int64) (Book, error)
	ListBooks(ctx context.Context) ([]Book, error)
	ListBooksByAuthor(ctx context.Context, authorID int64) ([]Book, error)
	UpdateBook(ctx context.Context, b Book) error
	DeleteBook(ctx context.Context, id int64) error

	CreateGenre(ctx context.Context, name string) (Genre, error)
	ListGenres(ctx context.Context) ([]Genre, error)
	CreateLanguage(ctx context.Context, name string) (Language, error)
	ListLanguages(ctx context.Context) ([]Language, error)

	CreateInstance(ctx context.Context, i Instance) (Instance, error)
	GetInstance(ctx context.Context, id uuid.UUID) (Instance, error)
	ListInstancesByBook(ctx context.Context, bookID int64) ([]Instance, error)
	UpdateInstance(ctx context.Context, i Instance) error
	ListPartition(ctx context.Context, p Partition, requester string) ([]Instance, error)
}

type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		Repo: repo,
	}
}

func (s *Service) CreateAuthor(ctx context.Context, a Author) (Author, error) {
	if err := a.Validate(); err != nil {
		return Author{}, fmt.Errorf("validating author: %w", err)
	}
	id, err := s.Repo.InsertAuthor(ctx, a)
	if err != nil {
		return Author{}, fmt.Errorf("inserting author: %w", err)
	}
	a.ID = id
	return a, nil
}

func (s *Service) GetAuthor(ctx context.Context, id int64) (Author, error) {
	a, err := s.Repo.SelectAuthor(ctx, id)
	if err != nil {
		return Author{}, fmt.Errorf("selecting author: %w", err)
	}
	return a, nil
}

func (s *Service) ListAuthors(ctx context.Context) ([]Author, error) {
	all, err := s.Repo.SelectAuthors(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting authors: %w", err)
	}
	return all, nil
}

func (s *Service) UpdateAuthor(ctx context.Context, a Author) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("validating author: %w", err)
	}
	if err := s.Repo.UpdateAuthor(ctx, a); err != nil {
		return fmt.Errorf("updating author: %w", err)
	}
	return nil
}

func (s *Service) DeleteAuthor(ctx context.Context, id int64) error {
	if err := s.Repo.DeleteAuthor(ctx, id); err != nil {
		return fmt.Errorf("deleting author: %w", err)
	}
	return nil
}

func (s *Service) CreateBook(ctx context.Context, b Book) (Book, error) {
	if err := b.Validate(); err != nil {
		return Book{}, fmt.Errorf("validating book: %w", err)
	}
	id, err := s.Repo.InsertBook(ctx, b)
	if err != nil {
		return Book{}, fmt.Errorf("inserting book: %w", err)
	}
	b.ID = id
	return b, nil
}

func (s *Service) GetBook(ctx context.Context, id int64) (Book, error) {
	b, err := s.Repo.SelectBook(ctx, id)
	if err != nil {
		return Book{}, fmt.Errorf("selecting book: %w", err)
	}
	return b, nil
}

func (s *Service) ListBooks(ctx context.Context) ([]Book, error) {
	all, err := s.Repo.SelectBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	return all, nil
}

func (s *Service) ListBooksByAuthor(ctx context.Context, authorID int64) ([]Book, error) {
	all, err := s.Repo.SelectBooksByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("selecting books of author %d: %w", authorID, err)
	}
	return all, nil
}

func (s *Service) UpdateBook(ctx context.Context, b Book) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("validating book: %w", err)
	}
	if err := s.Repo.UpdateBook(ctx, b); err != nil {
		return fmt.Errorf("updating book: %w", err)
	}
	return nil
}

func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	if err := s.Repo.DeleteBook(ctx, id); err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	return nil
}

func (s *Service) CreateGenre(ctx context.Context, name string) (Genre, error) {
	if name == "" {
		return Genre{}, fmt.Errorf("%w: genre name is required", ErrInvalid)
	}
	g := Genre{Name: name}
	id, err := s.Repo.InsertGenre(ctx, g)
	if err != nil {
		return Genre{}, fmt.Errorf("inserting genre: %w", err)
	}
	g.ID = id
	return g, nil
}

func (s *Service) ListGenres(ctx context.Context) ([]Genre, error) {
	all, err := s.Repo.SelectGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting genres: %w", err)
	}
	return all, nil
}

func (s *Service) CreateLanguage(ctx context.Context, name string) (Language, error) {
	if name == "" {
		return Language{}, fmt.Errorf("%w: language name is required", ErrInvalid)
	}
	l := Language{Name: name}
	id, err := s.Repo.InsertLanguage(ctx, l)
	if err != nil {
		return Language{}, fmt.Errorf("inserting language: %w", err)
	}
	l.ID = id
	return l, nil
}

func (s *Service) ListLanguages(ctx context.Context) ([]Language, error) {
	all, err := s.Repo.SelectLanguages(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting languages: %w", err)
	}
	return all, nil
}

// CreateInstance registers a new copy of a book under a fresh random id
func (s *Service) CreateInstance(ctx context.Context, i Instance) (Instance, error) {
	if i.DueBack != nil {
		i.DueBack = DayPtr(*i.DueBack)
	}
	if err := i.Validate(); err != nil {
		return Instance{}, fmt.Errorf("validating instance: %w", err)
	}
	i.ID = uuid.New()
	i.Version = 1
	if err := s.Repo.InsertInstance(ctx, i); err != nil {
		return Instance{}, fmt.Errorf("inserting instance: %w", err)
	}
	return i, nil
}

func (s *Service) GetInstance(ctx context.Context, id uuid.UUID) (Instance, error) {
	i, err := s.Repo.SelectInstance(ctx, id)
	if err != nil {
		return Instance{}, fmt.Errorf("selecting instance: %w", err)
	}
	return i, nil
}

func (s *Service) ListInstancesByBook(ctx context.Context, bookID int64) ([]Instance, error) {
	all, err := s.Repo.SelectInstancesByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("selecting instances of book %d: %w", bookID, err)
	}
	return all, nil
}

// UpdateInstance applies an administrative change (status, borrower, due date).
// The instance's Version must match the stored one.
func (s *Service) UpdateInstance(ctx context.Context, i Instance) error {
	if i.DueBack != nil {
		i.DueBack = DayPtr(*i.DueBack)
	}
	if err := i.Validate(); err != nil {
		return fmt.Errorf("validating instance: %w", err)
	}
	if err := s.Repo.UpdateInstance(ctx, i); err != nil {
		return fmt.Errorf("updating instance: %w", err)
	}
	return nil
}

// ListPartition returns the instances of partition p, earliest due first.
// requester is the authenticated user id and only matters for PartitionMyLoans.
func (s *Service) ListPartition(ctx context.Context, p Partition, requester string) ([]Instance, error) {
	filter, err := p.Filter(requester)
	if err != nil {
		return nil, err
	}
	all, err := s.Repo.SelectInstances(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("selecting %s instances: %w", p, err)
	}
	return all, nil
}
