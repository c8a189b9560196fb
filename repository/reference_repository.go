package repository

import (
	"context"

	"bridgefacile-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReferenceRepository handles database operations for law references
type ReferenceRepository struct {
	db *pgxpool.Pool
}

// NewReferenceRepository creates a new reference repository
func NewReferenceRepository(db *pgxpool.Pool) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// CreateReference inserts a reference edge and fills in its generated id
func (r *ReferenceRepository) CreateReference(ctx context.Context, ref *models.LawReference) error {
	query := `
		INSERT INTO law_references (
			source_law_id, target_law_number, target_law_title, context, position
		) VALUES (
			$1, $2, $3, $4, $5
		) RETURNING id`

	err := r.db.QueryRow(
		ctx, query,
		ref.SourceLawID,
		ref.TargetLawNumber,
		ref.TargetLawTitle,
		ref.Context,
		ref.Position,
	).Scan(&ref.ID)

	return err
}

// ListByTargetNumber returns references pointing at a law number, most
// recently inserted first.
func (r *ReferenceRepository) ListByTargetNumber(ctx context.Context, targetLawNumber string, limit int) ([]models.LawReference, error) {
	query := `
		SELECT id, source_law_id, target_law_number, target_law_title, context, position
		FROM law_references
		WHERE target_law_number = $1
		ORDER BY id DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, targetLawNumber, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReferences(rows)
}

// ListBySourceLaw returns the outgoing references of a law, in the order
// they appear in its text.
func (r *ReferenceRepository) ListBySourceLaw(ctx context.Context, sourceLawID int64) ([]models.LawReference, error) {
	query := `
		SELECT id, source_law_id, target_law_number, target_law_title, context, position
		FROM law_references
		WHERE source_law_id = $1
		ORDER BY position`

	rows, err := r.db.Query(ctx, query, sourceLawID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReferences(rows)
}

func scanReferences(rows pgx.Rows) ([]models.LawReference, error) {
	var refs []models.LawReference
	for rows.Next() {
		var ref models.LawReference
		err := rows.Scan(
			&ref.ID,
			&ref.SourceLawID,
			&ref.TargetLawNumber,
			&ref.TargetLawTitle,
			&ref.Context,
			&ref.Position,
		)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	return refs, rows.Err()
}
