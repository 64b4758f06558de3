package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dlalic/unpacking/internal/model"
)

var _ model.AuthorStore = (*AuthorRepository)(nil)

type AuthorRepository struct {
	db DB
}

func NewAuthorRepository(db DB) *AuthorRepository {
	return &AuthorRepository{
		db: db,
	}
}

// insertAuthors inserts one author row per name and returns the generated
// ids, in input order. It runs on the caller's transaction: snippet create
// and update use it to promote free-text author names to rows before writing
// the junctions that reference them.
func insertAuthors(ctx context.Context, tx pgx.Tx, names []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		author := model.NewAuthor(name)
		_, err := tx.Exec(ctx,
			`INSERT INTO authors (id, name, created_at, updated_at)
			 VALUES ($1, $2, $3, $4)`,
			author.ID, author.Name, author.CreatedAt, author.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		ids = append(ids, author.ID)
	}
	return ids, nil
}

func (r *AuthorRepository) CreateMany(ctx context.Context, names []string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		ids, err = insertAuthors(ctx, tx, names)
		return err
	})
	if err != nil {
		return nil, mapError("failed to create authors", err)
	}
	return ids, nil
}

func (r *AuthorRepository) List(ctx context.Context) ([]model.Author, error) {
	query := `SELECT id, name, created_at, updated_at FROM authors ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapError("failed to list authors", err)
	}
	defer rows.Close()

	var authors []model.Author
	for rows.Next() {
		var author model.Author
		if err := rows.Scan(&author.ID, &author.Name, &author.CreatedAt, &author.UpdatedAt); err != nil {
			return nil, mapError("failed to scan author", err)
		}
		authors = append(authors, author)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError("failed to list authors", err)
	}

	return authors, nil
}

func (r *AuthorRepository) Update(ctx context.Context, id uuid.UUID, name string) error {
	query := `UPDATE authors SET name = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id, name); err != nil {
		return mapError("failed to update author", err)
	}
	return nil
}

func (r *AuthorRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return 0, mapError("failed to delete author", err)
	}
	return cmd.RowsAffected(), nil
}
