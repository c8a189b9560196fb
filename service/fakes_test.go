package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"bridgefacile-backend/models"
)

// fakeStore is an in-memory LawStore + ReferenceStore used across the
// service tests.
type fakeStore struct {
	nextLawID int64
	nextRefID int64
	laws      []*models.Law
	refs      []models.LawReference
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (f *fakeStore) CreateLaw(ctx context.Context, law *models.Law) error {
	f.nextLawID++
	law.ID = f.nextLawID
	law.CreatedAt = time.Now()
	stored := *law
	f.laws = append(f.laws, &stored)
	return nil
}

func (f *fakeStore) GetLawByNumber(ctx context.Context, lawNumber string) (*models.Law, error) {
	for _, law := range f.laws {
		if law.LawNumber == lawNumber {
			copied := *law
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetLawByID(ctx context.Context, id int64) (*models.Law, error) {
	for _, law := range f.laws {
		if law.ID == id {
			copied := *law
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListLawSummaries(ctx context.Context) ([]models.LawSummary, error) {
	var summaries []models.LawSummary
	for _, law := range f.laws {
		summaries = append(summaries, models.LawSummary{
			ID:        law.ID,
			LawNumber: law.LawNumber,
			Title:     law.Title,
			Content:   law.Content,
		})
	}
	return summaries, nil
}

func (f *fakeStore) SearchLaws(ctx context.Context, query string, filters models.SearchFilters, limit int) ([]*models.Law, error) {
	q := strings.ToLower(query)
	var results []*models.Law
	for _, law := range f.laws {
		if q != "" &&
			!strings.Contains(strings.ToLower(law.LawNumber), q) &&
			!strings.Contains(strings.ToLower(law.Title), q) &&
			!strings.Contains(strings.ToLower(law.Content), q) {
			continue
		}
		if filters.Category != "" && string(law.Category) != filters.Category {
			continue
		}
		if filters.SourceFile != "" && law.SourceFile != filters.SourceFile {
			continue
		}
		if filters.MinCharCount > 0 && law.CharCount < filters.MinCharCount {
			continue
		}
		copied := *law
		results = append(results, &copied)
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results, nil
}

func (f *fakeStore) SuggestLawNumbers(ctx context.Context, prefix string, limit int) ([]models.LawSuggestion, error) {
	var suggestions []models.LawSuggestion
	for _, law := range f.laws {
		if strings.HasPrefix(law.LawNumber, prefix) {
			suggestions = append(suggestions, models.LawSuggestion{
				LawNumber: law.LawNumber,
				Title:     law.Title,
			})
		}
	}
	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].LawNumber < suggestions[j].LawNumber
	})
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

func (f *fakeStore) ClearTables(ctx context.Context, tables []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(tables))
	for _, table := range tables {
		switch table {
		case "code_laws":
			counts[table] = int64(len(f.laws))
			f.laws = nil
		case "law_references":
			counts[table] = int64(len(f.refs))
			f.refs = nil
		default:
			counts[table] = 0
		}
	}
	return counts, nil
}

func (f *fakeStore) CreateReference(ctx context.Context, ref *models.LawReference) error {
	f.nextRefID++
	ref.ID = f.nextRefID
	f.refs = append(f.refs, *ref)
	return nil
}

func (f *fakeStore) ListByTargetNumber(ctx context.Context, targetLawNumber string, limit int) ([]models.LawReference, error) {
	var out []models.LawReference
	for i := len(f.refs) - 1; i >= 0; i-- {
		if f.refs[i].TargetLawNumber == targetLawNumber {
			out = append(out, f.refs[i])
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) ListBySourceLaw(ctx context.Context, sourceLawID int64) ([]models.LawReference, error) {
	var out []models.LawReference
	for _, ref := range f.refs {
		if ref.SourceLawID == sourceLawID {
			out = append(out, ref)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}
