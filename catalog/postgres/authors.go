package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/marcelsud/local-library/catalog"
)

const authorColumns = "id, first_name, last_name, date_of_birth, date_of_death"

type scanner interface {
	Scan(dest ...any) error
}

func scanAuthor(s scanner) (catalog.Author, error) {
	var a catalog.Author
	var born, died sql.NullTime
	if err := s.Scan(&a.ID, &a.FirstName, &a.LastName, &born, &died); err != nil {
		return catalog.Author{}, err
	}
	a.DateOfBirth = datePtr(born)
	a.DateOfDeath = datePtr(died)
	return a, nil
}

// SelectAuthor finds an author by ID
func (r *Repository) SelectAuthor(ctx context.Context, id int64) (catalog.Author, error) {
	query := "SELECT " + authorColumns + " FROM authors WHERE id = $1"

	a, err := scanAuthor(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Author{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Author{}, fmt.Errorf("selecting author: %w", err)
	}
	return a, nil
}

// SelectAuthors returns all authors ordered by last, first name
func (r *Repository) SelectAuthors(ctx context.Context) ([]catalog.Author, error) {
	query := "SELECT " + authorColumns + " FROM authors ORDER BY last_name, first_name, id"

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("selecting authors: %w", err)
	}
	defer rows.Close()

	authors := []catalog.Author{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating authors: %w", err)
	}
	return authors, nil
}

func (r *Repository) CountAuthors(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM authors").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting authors: %w", err)
	}
	return n, nil
}

// InsertAuthor inserts an author and returns the generated ID
func (r *Repository) InsertAuthor(ctx context.Context, a catalog.Author) (int64, error) {
	query := `
		INSERT INTO authors (first_name, last_name, date_of_birth, date_of_death)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.DB.QueryRowContext(ctx, query, a.FirstName, a.LastName, nullDate(a.DateOfBirth), nullDate(a.DateOfDeath)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting author: %w", err)
	}
	return id, nil
}

func (r *Repository) UpdateAuthor(ctx context.Context, a catalog.Author) error {
	query := `
		UPDATE authors
		SET first_name = $1, last_name = $2, date_of_birth = $3, date_of_death = $4
		WHERE id = $5
	`

	result, err := r.DB.ExecContext(ctx, query, a.FirstName, a.LastName, nullDate(a.DateOfBirth), nullDate(a.DateOfDeath), a.ID)
	if err != nil {
		return fmt.Errorf("updating author: %w", err)
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

// DeleteAuthor removes an author. Authors with books can't be deleted.
func (r *Repository) DeleteAuthor(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM authors WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting author: %w", translate(err))
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
