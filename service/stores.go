package service

import (
	"context"

	"bridgefacile-backend/models"
)

// LawStore is the record-store surface the services need. The pgx-backed
// repository implements it; tests use an in-memory fake.
//
// Lookup methods return (nil, nil) when no row matches.
type LawStore interface {
	// CreateLaw persists a law and fills in its assigned ID and CreatedAt.
	CreateLaw(ctx context.Context, law *models.Law) error

	// GetLawByNumber retrieves a law by exact law number.
	GetLawByNumber(ctx context.Context, lawNumber string) (*models.Law, error)

	// GetLawByID retrieves a law by store id.
	GetLawByID(ctx context.Context, id int64) (*models.Law, error)

	// ListLawSummaries returns the projection used to seed the duplicate
	// detection index.
	ListLawSummaries(ctx context.Context) ([]models.LawSummary, error)

	// SearchLaws performs a substring search over title, content and law
	// number, narrowed by filters.
	SearchLaws(ctx context.Context, query string, filters models.SearchFilters, limit int) ([]*models.Law, error)

	// SuggestLawNumbers returns laws whose number starts with prefix.
	SuggestLawNumbers(ctx context.Context, prefix string, limit int) ([]models.LawSuggestion, error)

	// ClearTables bulk-deletes the named tables and returns per-table
	// deleted row counts.
	ClearTables(ctx context.Context, tables []string) (map[string]int64, error)
}

// ReferenceStore persists and queries law-reference edges.
type ReferenceStore interface {
	// CreateReference persists a reference edge and fills in its ID.
	CreateReference(ctx context.Context, ref *models.LawReference) error

	// ListByTargetNumber returns edges pointing at the given law number.
	ListByTargetNumber(ctx context.Context, targetLawNumber string, limit int) ([]models.LawReference, error)

	// ListBySourceLaw returns the outgoing edges of a law.
	ListBySourceLaw(ctx context.Context, sourceLawID int64) ([]models.LawReference, error)
}
