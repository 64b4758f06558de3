package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dlalic/unpacking/internal/model"
)

var _ model.TermStore = (*TermRepository)(nil)

type TermRepository struct {
	db DB
}

func NewTermRepository(db DB) *TermRepository {
	return &TermRepository{
		db: db,
	}
}

func insertRelated(ctx context.Context, tx pgx.Tx, termID uuid.UUID, related []uuid.UUID) error {
	for _, relatedID := range related {
		_, err := tx.Exec(ctx,
			`INSERT INTO terms_related (term_id, related_id) VALUES ($1, $2)`,
			termID, relatedID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *TermRepository) Create(ctx context.Context, term model.Term, related []uuid.UUID) (uuid.UUID, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO terms (id, name, created_at, updated_at)
			 VALUES ($1, $2, $3, $4)`,
			term.ID, term.Name, term.CreatedAt, term.UpdatedAt,
		)
		if err != nil {
			return err
		}
		return insertRelated(ctx, tx, term.ID, related)
	})
	if err != nil {
		return uuid.Nil, mapError("failed to create term", err)
	}

	return term.ID, nil
}

func (r *TermRepository) List(ctx context.Context) ([]model.Term, error) {
	query := `SELECT id, name, created_at, updated_at FROM terms ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapError("failed to list terms", err)
	}
	defer rows.Close()

	var terms []model.Term
	for rows.Next() {
		var term model.Term
		if err := rows.Scan(&term.ID, &term.Name, &term.CreatedAt, &term.UpdatedAt); err != nil {
			return nil, mapError("failed to scan term", err)
		}
		terms = append(terms, term)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError("failed to list terms", err)
	}

	return terms, nil
}

func (r *TermRepository) ListRelated(ctx context.Context) ([]model.TermRelated, error) {
	rows, err := r.db.Query(ctx, `SELECT term_id, related_id FROM terms_related`)
	if err != nil {
		return nil, mapError("failed to list term relations", err)
	}
	defer rows.Close()

	var edges []model.TermRelated
	for rows.Next() {
		var edge model.TermRelated
		if err := rows.Scan(&edge.TermID, &edge.RelatedID); err != nil {
			return nil, mapError("failed to scan term relation", err)
		}
		edges = append(edges, edge)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError("failed to list term relations", err)
	}

	return edges, nil
}

// Update replaces the name and the full outgoing edge set in one
// transaction. The edges are deleted and reinserted even when unchanged.
func (r *TermRepository) Update(ctx context.Context, id uuid.UUID, name string, related []uuid.UUID) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`UPDATE terms SET name = $2, updated_at = NOW() WHERE id = $1`,
			id, name,
		)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `DELETE FROM terms_related WHERE term_id = $1`, id)
		if err != nil {
			return err
		}
		return insertRelated(ctx, tx, id, related)
	})
	if err != nil {
		return mapError("failed to update term", err)
	}

	return nil
}

// Delete removes the term's outgoing edges, then the term. Edges where the
// term is the related_id target are deliberately left in place, which can
// leave one-directional edges pointing at a deleted term.
func (r *TermRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	var deleted int64
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `DELETE FROM terms_related WHERE term_id = $1`, id)
		if err != nil {
			return err
		}
		cmd, err := tx.Exec(ctx, `DELETE FROM terms WHERE id = $1`, id)
		if err != nil {
			return err
		}
		deleted = cmd.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, mapError("failed to delete term", err)
	}

	return deleted, nil
}

// Graph projects the relation table for rendering: the term names in listing
// order plus every edge as a pair of indexes into that list. The id-to-index
// lookup is built once and reused for all edges. Edges whose endpoint no
// longer exists are skipped.
func (r *TermRepository) Graph(ctx context.Context) (model.TermGraph, error) {
	terms, err := r.List(ctx)
	if err != nil {
		return model.TermGraph{}, err
	}
	related, err := r.ListRelated(ctx)
	if err != nil {
		return model.TermGraph{}, err
	}

	indexByID := make(map[uuid.UUID]int, len(terms))
	names := make([]string, len(terms))
	for i, term := range terms {
		indexByID[term.ID] = i
		names[i] = term.Name
	}

	edges := make([][2]int, 0, len(related))
	for _, edge := range related {
		from, ok := indexByID[edge.TermID]
		if !ok {
			continue
		}
		to, ok := indexByID[edge.RelatedID]
		if !ok {
			continue
		}
		edges = append(edges, [2]int{from, to})
	}

	return model.TermGraph{Names: names, Edges: edges}, nil
}
