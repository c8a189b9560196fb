package repository

import (
	"context"
	"errors"
	"fmt"

	"bridgefacile-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// allowed targets for ClearTables; anything else is refused
var clearableTables = map[string]bool{
	"code_laws":      true,
	"law_references": true,
	"documents":      true,
}

// LawRepository handles database operations for laws
type LawRepository struct {
	db *pgxpool.Pool
}

// NewLawRepository creates a new law repository
func NewLawRepository(db *pgxpool.Pool) *LawRepository {
	return &LawRepository{db: db}
}

// CreateLaw inserts a law and fills in its generated id and timestamp
func (r *LawRepository) CreateLaw(ctx context.Context, law *models.Law) error {
	query := `
		INSERT INTO code_laws (
			law_number, title, content, category, subcategory,
			source_file, page_number, char_count
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		law.LawNumber,
		law.Title,
		law.Content,
		law.Category,
		law.Subcategory,
		law.SourceFile,
		law.PageNumber,
		law.CharCount,
	).Scan(&law.ID, &law.CreatedAt)

	return err
}

// GetLawByNumber retrieves a law by its law number. A missing law is
// (nil, nil), not an error.
func (r *LawRepository) GetLawByNumber(ctx context.Context, lawNumber string) (*models.Law, error) {
	law := &models.Law{}
	query := `
		SELECT id, law_number, title, content, category, subcategory,
			source_file, page_number, char_count, created_at
		FROM code_laws
		WHERE law_number = $1`

	err := r.db.QueryRow(ctx, query, lawNumber).Scan(
		&law.ID,
		&law.LawNumber,
		&law.Title,
		&law.Content,
		&law.Category,
		&law.Subcategory,
		&law.SourceFile,
		&law.PageNumber,
		&law.CharCount,
		&law.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return law, nil
}

// GetLawByID retrieves a law by primary key. A missing law is (nil, nil).
func (r *LawRepository) GetLawByID(ctx context.Context, id int64) (*models.Law, error) {
	law := &models.Law{}
	query := `
		SELECT id, law_number, title, content, category, subcategory,
			source_file, page_number, char_count, created_at
		FROM code_laws
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&law.ID,
		&law.LawNumber,
		&law.Title,
		&law.Content,
		&law.Category,
		&law.Subcategory,
		&law.SourceFile,
		&law.PageNumber,
		&law.CharCount,
		&law.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return law, nil
}

// ListLawSummaries retrieves a compact projection of every law, used to
// rebuild the duplicate detector's in-memory index.
func (r *LawRepository) ListLawSummaries(ctx context.Context) ([]models.LawSummary, error) {
	query := `
		SELECT id, law_number, title, content
		FROM code_laws
		ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.LawSummary
	for rows.Next() {
		var s models.LawSummary
		if err := rows.Scan(&s.ID, &s.LawNumber, &s.Title, &s.Content); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// SearchLaws runs a case-insensitive text search over law number, title and
// content, with optional filters.
func (r *LawRepository) SearchLaws(ctx context.Context, queryText string, filters models.SearchFilters, limit int) ([]*models.Law, error) {
	query := `
		SELECT id, law_number, title, content, category, subcategory,
			source_file, page_number, char_count, created_at
		FROM code_laws
		WHERE (law_number ILIKE $1 OR title ILIKE $1 OR content ILIKE $1)`

	args := []interface{}{"%" + queryText + "%"}
	argIndex := 2

	if filters.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIndex)
		args = append(args, filters.Category)
		argIndex++
	}

	if filters.SourceFile != "" {
		query += fmt.Sprintf(" AND source_file = $%d", argIndex)
		args = append(args, filters.SourceFile)
		argIndex++
	}

	if filters.MinCharCount > 0 {
		query += fmt.Sprintf(" AND char_count >= $%d", argIndex)
		args = append(args, filters.MinCharCount)
		argIndex++
	}

	query += " ORDER BY law_number"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var laws []*models.Law
	for rows.Next() {
		law := &models.Law{}
		err := rows.Scan(
			&law.ID,
			&law.LawNumber,
			&law.Title,
			&law.Content,
			&law.Category,
			&law.Subcategory,
			&law.SourceFile,
			&law.PageNumber,
			&law.CharCount,
			&law.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		laws = append(laws, law)
	}

	return laws, rows.Err()
}

// SuggestLawNumbers returns law numbers starting with the given prefix.
func (r *LawRepository) SuggestLawNumbers(ctx context.Context, prefix string, limit int) ([]models.LawSuggestion, error) {
	query := `
		SELECT law_number, title
		FROM code_laws
		WHERE law_number ILIKE $1
		ORDER BY law_number
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, prefix+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suggestions []models.LawSuggestion
	for rows.Next() {
		var s models.LawSuggestion
		if err := rows.Scan(&s.LawNumber, &s.Title); err != nil {
			return nil, err
		}
		suggestions = append(suggestions, s)
	}

	return suggestions, rows.Err()
}

// ClearTables deletes all rows in the named tables and reports per-table
// deleted counts. Only known tables are accepted; law_references rows go
// away with their laws via ON DELETE CASCADE but may also be cleared
// explicitly.
func (r *LawRepository) ClearTables(ctx context.Context, tables []string) (map[string]int64, error) {
	for _, table := range tables {
		if !clearableTables[table] {
			return nil, fmt.Errorf("refusing to clear unknown table %q", table)
		}
	}

	deleted := make(map[string]int64, len(tables))
	for _, table := range tables {
		tag, err := r.db.Exec(ctx, "DELETE FROM "+table)
		if err != nil {
			return deleted, fmt.Errorf("failed to clear table %s: %w", table, err)
		}
		deleted[table] = tag.RowsAffected()
	}

	return deleted, nil
}
