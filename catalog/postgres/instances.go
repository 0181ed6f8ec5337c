package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/local-library/catalog"
)

const (
	instanceColumns = "id, book_id, imprint, due_back, status, borrower, version"
	// Undated instances (available, maintenance) sort after dated ones
	instanceOrder = " ORDER BY due_back ASC NULLS LAST, id"
)

func scanInstance(s scanner) (catalog.Instance, error) {
	var i catalog.Instance
	var due sql.NullTime
	var status string
	if err := s.Scan(&i.ID, &i.BookID, &i.Imprint, &due, &status, &i.Borrower, &i.Version); err != nil {
		return catalog.Instance{}, err
	}
	st, err := catalog.ParseStatus(status)
	if err != nil {
		return catalog.Instance{}, err
	}
	i.Status = st
	i.DueBack = datePtr(due)
	return i, nil
}

// where builds the WHERE clause for an exact-match filter
func where(f catalog.InstanceFilter) (string, []any) {
	var conds []string
	var args []any
	if f.Status != 0 {
		args = append(args, f.Status.Code())
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Borrower != "" {
		args = append(args, f.Borrower)
		conds = append(conds, fmt.Sprintf("borrower = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *Repository) SelectInstance(ctx context.Context, id uuid.UUID) (catalog.Instance, error) {
	query := "SELECT " + instanceColumns + " FROM book_instances WHERE id = $1"

	i, err := scanInstance(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Instance{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Instance{}, fmt.Errorf("selecting instance: %w", err)
	}
	return i, nil
}

// SelectInstances returns the instances matching filter, earliest due first
func (r *Repository) SelectInstances(ctx context.Context, filter catalog.InstanceFilter) ([]catalog.Instance, error) {
	cond, args := where(filter)
	return r.selectInstances(ctx, "SELECT "+instanceColumns+" FROM book_instances"+cond+instanceOrder, args...)
}

func (r *Repository) SelectInstancesByBook(ctx context.Context, bookID int64) ([]catalog.Instance, error) {
	return r.selectInstances(ctx, "SELECT "+instanceColumns+" FROM book_instances WHERE book_id = $1"+instanceOrder, bookID)
}

func (r *Repository) selectInstances(ctx context.Context, query string, args ...any) ([]catalog.Instance, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting instances: %w", err)
	}
	defer rows.Close()

	instances := []catalog.Instance{}
	for rows.Next() {
		i, err := scanInstance(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning instance: %w", err)
		}
		instances = append(instances, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating instances: %w", err)
	}
	return instances, nil
}

func (r *Repository) CountInstances(ctx context.Context, filter catalog.InstanceFilter) (int64, error) {
	cond, args := where(filter)
	var n int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM book_instances"+cond, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting instances: %w", err)
	}
	return n, nil
}

func (r *Repository) InsertInstance(ctx context.Context, i catalog.Instance) error {
	query := `
		INSERT INTO book_instances (id, book_id, imprint, due_back, status, borrower, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	version := i.Version
	if version == 0 {
		version = 1
	}
	_, err := r.DB.ExecContext(ctx, query, i.ID, i.BookID, i.Imprint, nullDate(i.DueBack), i.Status.Code(), i.Borrower, version)
	if err != nil {
		return fmt.Errorf("inserting instance: %w", translate(err))
	}
	return nil
}

// UpdateInstance rewrites an instance if its version is unchanged
func (r *Repository) UpdateInstance(ctx context.Context, i catalog.Instance) error {
	query := `
		UPDATE book_instances
		SET book_id = $1, imprint = $2, due_back = $3, status = $4, borrower = $5, version = version + 1
		WHERE id = $6 AND version = $7
	`
	result, err := r.DB.ExecContext(ctx, query, i.BookID, i.Imprint, nullDate(i.DueBack), i.Status.Code(), i.Borrower, i.ID, i.Version)
	if err != nil {
		return fmt.Errorf("updating instance: %w", translate(err))
	}
	return r.checkVersioned(ctx, result, i.ID)
}

// UpdateDueBack is the single-field update used by renewals
func (r *Repository) UpdateDueBack(ctx context.Context, id uuid.UUID, dueBack time.Time, version int64) error {
	query := `
		UPDATE book_instances
		SET due_back = $1, version = version + 1
		WHERE id = $2 AND version = $3
	`
	result, err := r.DB.ExecContext(ctx, query, catalog.Day(dueBack), id, version)
	if err != nil {
		return fmt.Errorf("updating due back: %w", err)
	}
	return r.checkVersioned(ctx, result, id)
}

// checkVersioned tells a stale version apart from a missing row when nothing was updated
func (r *Repository) checkVersioned(ctx context.Context, result sql.Result, id uuid.UUID) error {
	rows, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}
	var exists bool
	err = r.DB.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM book_instances WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking instance: %w", err)
	}
	if exists {
		return catalog.ErrConflict
	}
	return catalog.ErrNotFound
}
