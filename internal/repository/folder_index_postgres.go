package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"

	"photofolio/internal/storage/postgresql"
)

type PostgresFolderIndex struct {
	db  *pgxpool.Pool
	sb  sq.StatementBuilderType
	now func() time.Time
}

func NewPostgresFolderIndex(db *pgxpool.Pool) *PostgresFolderIndex {
	return &PostgresFolderIndex{
		db:  db,
		sb:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		now: time.Now,
	}
}

func (r *PostgresFolderIndex) Add(ctx context.Context, name string) error {
	const op = "repository.folder_index_postgres.Add"

	query, args, err := r.sb.Insert(postgresql.EventFoldersTable).
		Columns("name", "added_at").
		Values(name, r.now().UTC()).
		Suffix("ON CONFLICT (name) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %s %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *PostgresFolderIndex) Remove(ctx context.Context, name string) error {
	const op = "repository.folder_index_postgres.Remove"

	query, args, err := r.sb.Delete(postgresql.EventFoldersTable).
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %s %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *PostgresFolderIndex) All(ctx context.Context) ([]string, error) {
	const op = "repository.folder_index_postgres.All"

	query, args, err := r.sb.Select("name").
		From(postgresql.EventFoldersTable).
		OrderBy("added_at DESC", "name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %s %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%s: can't scan name: %w", op, err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return names, nil
}
