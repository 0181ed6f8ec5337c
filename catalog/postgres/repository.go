package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq" // PostgreSQL driver
	"github.com/marcelsud/local-library/catalog"
)

/*
PostgreSQL implementation of catalog.Repository

- Placeholders are $1, $2...
- Foreign keys keep books tied to authors and instances tied to books;
  violations come back as catalog.ErrInUse / catalog.ErrNotFound
- book_instances.version backs optimistic concurrency for due date changes
*/

type Repository struct {
	DB *sql.DB
}

const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

// NewRepository creates a PostgreSQL repository with the default pool (25, 5, 5 min)
func NewRepository(connectionString string) (*Repository, error) {
	return NewRepositoryWithPoolConfig(connectionString, 25, 5, 5)
}

// NewRepositoryWithPoolConfig creates a PostgreSQL repository with a custom pool
// maxOpenConns: max simultaneous connections (0 = unlimited)
// maxIdleConns: idle connections kept in the pool
// maxLifeMinutes: how long a connection may be reused
func NewRepositoryWithPoolConfig(connectionString string, maxOpenConns, maxIdleConns, maxLifeMinutes int) (*Repository, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
	if maxLifeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(maxLifeMinutes) * time.Minute)
	}

	return &Repository{
		DB: db,
	}, nil
}

// Close closes the database connection
func (r *Repository) Close(ctx context.Context) error {
	if r.DB != nil {
		return r.DB.Close()
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS authors (
		id BIGSERIAL PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		date_of_birth DATE,
		date_of_death DATE
	)`,
	`CREATE TABLE IF NOT EXISTS genres (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS languages (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		author_id BIGINT NOT NULL REFERENCES authors(id) ON DELETE RESTRICT,
		summary TEXT NOT NULL DEFAULT '',
		isbn TEXT NOT NULL DEFAULT '',
		language_id BIGINT REFERENCES languages(id)
	)`,
	`CREATE TABLE IF NOT EXISTS book_genres (
		book_id BIGINT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
		genre_id BIGINT NOT NULL REFERENCES genres(id),
		PRIMARY KEY (book_id, genre_id)
	)`,
	`CREATE TABLE IF NOT EXISTS book_instances (
		id UUID PRIMARY KEY,
		book_id BIGINT NOT NULL REFERENCES books(id) ON DELETE RESTRICT,
		imprint TEXT NOT NULL DEFAULT '',
		due_back DATE,
		status CHAR(1) NOT NULL DEFAULT 'm',
		borrower TEXT NOT NULL DEFAULT '',
		version BIGINT NOT NULL DEFAULT 1
	)`,
	`CREATE INDEX IF NOT EXISTS book_instances_status_due_back ON book_instances (status, due_back)`,
}

// CreateTables creates the catalog tables if they don't exist
func (r *Repository) CreateTables(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
	}
	return nil
}

// DropTables removes the catalog tables (useful for tests)
func (r *Repository) DropTables(ctx context.Context) error {
	query := "DROP TABLE IF EXISTS book_instances, book_genres, books, languages, genres, authors CASCADE"
	if _, err := r.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("dropping tables: %w", err)
	}
	return nil
}

// translate maps constraint violations onto catalog errors
func translate(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pqForeignKeyViolation:
		// raised by a referencing row: "update or delete on table ... violates foreign key constraint"
		if strings.HasPrefix(pqErr.Message, "update or delete") {
			return fmt.Errorf("%s: %w", pqErr.Constraint, catalog.ErrInUse)
		}
		return fmt.Errorf("%s: %w", pqErr.Constraint, catalog.ErrNotFound)
	case pqUniqueViolation:
		return fmt.Errorf("%s: %w", pqErr.Constraint, catalog.ErrDuplicate)
	}
	return err
}

func rowsAffected(result sql.Result) (int64, error) {
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}
	return rows, nil
}

func nullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: catalog.Day(*t), Valid: true}
}

func datePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return catalog.DayPtr(t.Time)
}
