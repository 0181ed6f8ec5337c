package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/marcelsud/local-library/catalog"
)

// Genres are aggregated into a bigint[] so a book comes back in one row
const bookSelect = `
	SELECT b.id, b.title, b.author_id, b.summary, b.isbn, b.language_id,
		COALESCE(array_agg(bg.genre_id ORDER BY bg.genre_id) FILTER (WHERE bg.genre_id IS NOT NULL), '{}')
	FROM books b
	LEFT JOIN book_genres bg ON bg.book_id = b.id`

func scanBook(s scanner) (catalog.Book, error) {
	var b catalog.Book
	var language sql.NullInt64
	var genres []int64
	if err := s.Scan(&b.ID, &b.Title, &b.AuthorID, &b.Summary, &b.ISBN, &language, pq.Array(&genres)); err != nil {
		return catalog.Book{}, err
	}
	if language.Valid {
		b.LanguageID = &language.Int64
	}
	b.GenreIDs = genres
	return b, nil
}

func nullID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

// SelectBook finds a book by ID
func (r *Repository) SelectBook(ctx context.Context, id int64) (catalog.Book, error) {
	query := bookSelect + " WHERE b.id = $1 GROUP BY b.id"

	b, err := scanBook(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Book{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Book{}, fmt.Errorf("selecting book: %w", err)
	}
	return b, nil
}

// SelectBooks returns all books ordered by title
func (r *Repository) SelectBooks(ctx context.Context) ([]catalog.Book, error) {
	return r.selectBooks(ctx, bookSelect+" GROUP BY b.id ORDER BY b.title, b.id")
}

func (r *Repository) SelectBooksByAuthor(ctx context.Context, authorID int64) ([]catalog.Book, error) {
	return r.selectBooks(ctx, bookSelect+" WHERE b.author_id = $1 GROUP BY b.id ORDER BY b.title, b.id", authorID)
}

func (r *Repository) selectBooks(ctx context.Context, query string, args ...any) ([]catalog.Book, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	defer rows.Close()

	books := []catalog.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating books: %w", err)
	}
	return books, nil
}

func (r *Repository) CountBooks(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting books: %w", err)
	}
	return n, nil
}

// InsertBook inserts a book with its genres in one transaction
func (r *Repository) InsertBook(ctx context.Context, b catalog.Book) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO books (title, author_id, summary, isbn, language_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err = tx.QueryRowContext(ctx, query, b.Title, b.AuthorID, b.Summary, b.ISBN, nullID(b.LanguageID)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting book: %w", translate(err))
	}
	if err := insertGenres(ctx, tx, id, b.GenreIDs); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing book: %w", err)
	}
	return id, nil
}

// UpdateBook rewrites the book row and replaces its genre set
func (r *Repository) UpdateBook(ctx context.Context, b catalog.Book) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE books
		SET title = $1, author_id = $2, summary = $3, isbn = $4, language_id = $5
		WHERE id = $6
	`
	result, err := tx.ExecContext(ctx, query, b.Title, b.AuthorID, b.Summary, b.ISBN, nullID(b.LanguageID), b.ID)
	if err != nil {
		return fmt.Errorf("updating book: %w", translate(err))
	}
	rows, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if rows == 0 {
		return catalog.ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM book_genres WHERE book_id = $1", b.ID); err != nil {
		return fmt.Errorf("clearing genres: %w", err)
	}
	if err := insertGenres(ctx, tx, b.ID, b.GenreIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing book: %w", err)
	}
	return nil
}

func insertGenres(ctx context.Context, tx *sql.Tx, bookID int64, genreIDs []int64) error {
	if len(genreIDs) == 0 {
		return nil
	}
	query := "INSERT INTO book_genres (book_id, genre_id) SELECT $1, unnest($2::bigint[])"
	if _, err := tx.ExecContext(ctx, query, bookID, pq.Array(genreIDs)); err != nil {
		return fmt.Errorf("inserting genres: %w", translate(err))
	}
	return nil
}

// DeleteBook removes a book. Books with instances can't be deleted.
func (r *Repository) DeleteBook(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM books WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting book: %w", translate(err))
	}
	rows, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if rows == 0 {
		return catalog.ErrNotFound
	}
	return nil
}
