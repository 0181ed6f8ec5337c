package postgres

import (
	"context"
	"fmt"

	"github.com/marcelsud/local-library/catalog"
)

func (r *Repository) SelectGenres(ctx context.Context) ([]catalog.Genre, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name FROM genres ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("selecting genres: %w", err)
	}
	defer rows.Close()

	genres := []catalog.Genre{}
	for rows.Next() {
		var g catalog.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scanning genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating genres: %w", err)
	}
	return genres, nil
}

func (r *Repository) InsertGenre(ctx context.Context, g catalog.Genre) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, "INSERT INTO genres (name) VALUES ($1) RETURNING id", g.Name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting genre: %w", translate(err))
	}
	return id, nil
}

func (r *Repository) SelectLanguages(ctx context.Context) ([]catalog.Language, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name FROM languages ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("selecting languages: %w", err)
	}
	defer rows.Close()

	languages := []catalog.Language{}
	for rows.Next() {
		var l catalog.Language
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, fmt.Errorf("scanning language: %w", err)
		}
		languages = append(languages, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating languages: %w", err)
	}
	return languages, nil
}

func (r *Repository) InsertLanguage(ctx context.Context, l catalog.Language) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, "INSERT INTO languages (name) VALUES ($1) RETURNING id", l.Name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting language: %w", translate(err))
	}
	return id, nil
}
