package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dlalic/unpacking/internal/model"
)

var _ model.SnippetStore = (*SnippetRepository)(nil)

type SnippetRepository struct {
	db DB
}

func NewSnippetRepository(db DB) *SnippetRepository {
	return &SnippetRepository{
		db: db,
	}
}

func insertTermJunctions(ctx context.Context, tx pgx.Tx, snippetID uuid.UUID, terms []uuid.UUID) error {
	for _, termID := range terms {
		_, err := tx.Exec(ctx,
			`INSERT INTO terms_snippets (term_id, snippet_id) VALUES ($1, $2)`,
			termID, snippetID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func insertAuthorJunctions(ctx context.Context, tx pgx.Tx, snippetID uuid.UUID, authors []uuid.UUID) error {
	for _, authorID := range authors {
		_, err := tx.Exec(ctx,
			`INSERT INTO authors_snippets (author_id, snippet_id) VALUES ($1, $2)`,
			authorID, snippetID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// nonEmpty drops empty strings from free-text author names before they are
// promoted to rows.
func nonEmpty(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// Create inserts the snippet, its term and author junction rows, and one
// author row per non-empty free-text name, all in a single transaction.
func (r *SnippetRepository) Create(ctx context.Context, snippet model.Snippet, terms, existingAuthors []uuid.UUID, newAuthors []string) (uuid.UUID, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO snippets (id, text, media, link, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			snippet.ID, snippet.Text, string(snippet.Media), snippet.Link, snippet.CreatedAt, snippet.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if err := insertTermJunctions(ctx, tx, snippet.ID, terms); err != nil {
			return err
		}
		if err := insertAuthorJunctions(ctx, tx, snippet.ID, existingAuthors); err != nil {
			return err
		}
		names := nonEmpty(newAuthors)
		if len(names) == 0 {
			return nil
		}
		ids, err := insertAuthors(ctx, tx, names)
		if err != nil {
			return err
		}
		return insertAuthorJunctions(ctx, tx, snippet.ID, ids)
	})
	if err != nil {
		return uuid.Nil, mapError("failed to create snippet", err)
	}

	return snippet.ID, nil
}

// Update rewrites the snippet body and fully replaces both junction sets:
// existing rows are deleted and the new sets reinserted, never diffed.
func (r *SnippetRepository) Update(ctx context.Context, id uuid.UUID, text string, media model.Media, link *string, terms, existingAuthors []uuid.UUID, newAuthors []string) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`UPDATE snippets SET text = $2, media = $3, link = $4, updated_at = NOW() WHERE id = $1`,
			id, text, string(media), link,
		)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `DELETE FROM terms_snippets WHERE snippet_id = $1`, id)
		if err != nil {
			return err
		}
		if err := insertTermJunctions(ctx, tx, id, terms); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `DELETE FROM authors_snippets WHERE snippet_id = $1`, id)
		if err != nil {
			return err
		}
		if err := insertAuthorJunctions(ctx, tx, id, existingAuthors); err != nil {
			return err
		}
		names := nonEmpty(newAuthors)
		if len(names) == 0 {
			return nil
		}
		ids, err := insertAuthors(ctx, tx, names)
		if err != nil {
			return err
		}
		return insertAuthorJunctions(ctx, tx, id, ids)
	})
	if err != nil {
		return mapError("failed to update snippet", err)
	}

	return nil
}

// Delete removes both junction sets before the snippet row so no dangling
// junctions survive the transaction.
func (r *SnippetRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	var deleted int64
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `DELETE FROM authors_snippets WHERE snippet_id = $1`, id)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `DELETE FROM terms_snippets WHERE snippet_id = $1`, id)
		if err != nil {
			return err
		}
		cmd, err := tx.Exec(ctx, `DELETE FROM snippets WHERE id = $1`, id)
		if err != nil {
			return err
		}
		deleted = cmd.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, mapError("failed to delete snippet", err)
	}

	return deleted, nil
}

// Search joins snippets with their terms and authors and aggregates the
// matches per snippet, deduplicated by id inside the aggregate, newest
// snippet first. A non-nil termID restricts to snippets tagged with it.
func (r *SnippetRepository) Search(ctx context.Context, termID *uuid.UUID, limit, offset *int64) ([]model.SnippetWithRelated, error) {
	query := `SELECT s.id, s.text, s.media, s.link,
		COALESCE(jsonb_agg(DISTINCT jsonb_build_object('id', t.id, 'name', t.name)) FILTER (WHERE t.id IS NOT NULL), '[]'),
		COALESCE(jsonb_agg(DISTINCT jsonb_build_object('id', a.id, 'name', a.name)) FILTER (WHERE a.id IS NOT NULL), '[]')
	FROM snippets s
	LEFT JOIN terms_snippets ts ON ts.snippet_id = s.id
	LEFT JOIN terms t ON t.id = ts.term_id
	LEFT JOIN authors_snippets aus ON aus.snippet_id = s.id
	LEFT JOIN authors a ON a.id = aus.author_id`

	args := make([]any, 0, 3)
	if termID != nil {
		args = append(args, *termID)
		query += fmt.Sprintf(" WHERE ts.term_id = $%d", len(args))
	}
	query += " GROUP BY s.id ORDER BY s.created_at DESC"
	if limit != nil {
		args = append(args, *limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset != nil {
		args = append(args, *offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("failed to search snippets", err)
	}
	defer rows.Close()

	var snippets []model.SnippetWithRelated
	for rows.Next() {
		var snippet model.SnippetWithRelated
		var media string
		var termsJSON, authorsJSON []byte
		err := rows.Scan(&snippet.ID, &snippet.Text, &media, &snippet.Link, &termsJSON, &authorsJSON)
		if err != nil {
			return nil, mapError("failed to scan snippet", err)
		}
		snippet.Media = model.Media(media)
		if err := json.Unmarshal(termsJSON, &snippet.Terms); err != nil {
			return nil, fmt.Errorf("failed to decode snippet terms: %w", err)
		}
		if err := json.Unmarshal(authorsJSON, &snippet.Authors); err != nil {
			return nil, fmt.Errorf("failed to decode snippet authors: %w", err)
		}
		snippets = append(snippets, snippet)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError("failed to search snippets", err)
	}

	return snippets, nil
}

// Count returns the number of result pages for the given page size, using
// integer ceiling division over the matching snippet total.
func (r *SnippetRepository) Count(ctx context.Context, termID *uuid.UUID, pageSize int64) (int64, error) {
	var total int64
	var err error
	if termID == nil {
		err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM snippets`).Scan(&total)
	} else {
		err = r.db.QueryRow(ctx,
			`SELECT COUNT(*) FROM snippets s
			 LEFT JOIN terms_snippets ts ON ts.snippet_id = s.id
			 WHERE ts.term_id = $1`,
			*termID,
		).Scan(&total)
	}
	if err != nil {
		return 0, mapError("failed to count snippets", err)
	}

	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return pages, nil
}

// MediaStats returns the snippet count per media kind.
func (r *SnippetRepository) MediaStats(ctx context.Context) ([]model.MediaStat, error) {
	rows, err := r.db.Query(ctx, `SELECT media, COUNT(*) FROM snippets GROUP BY media`)
	if err != nil {
		return nil, mapError("failed to load media stats", err)
	}
	defer rows.Close()

	var stats []model.MediaStat
	for rows.Next() {
		var stat model.MediaStat
		var media string
		if err := rows.Scan(&media, &stat.Count); err != nil {
			return nil, mapError("failed to scan media stat", err)
		}
		stat.Media = model.Media(media)
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError("failed to load media stats", err)
	}

	return stats, nil
}
