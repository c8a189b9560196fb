package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"bridgefacile-backend/models"
	"bridgefacile-backend/parser"
)

const defaultBatchDelay = 100 * time.Millisecond

// IngestStats tracks aggregate counters across an ingest service's
// lifetime.
type IngestStats struct {
	TotalInserts        int `json:"total_inserts"`
	DuplicatesPrevented int `json:"duplicates_prevented"`
	ValidationErrors    int `json:"validation_errors"`
}

// InsertOutcome is the per-record result of an insert attempt. For a
// duplicate, LawID is the matched existing law's id (0 when the matching
// signal carries no record detail, e.g. a bare law-number collision).
type InsertOutcome struct {
	LawID      int64   `json:"law_id"`
	LawNumber  string  `json:"law_number"`
	Duplicate  bool    `json:"duplicate"`
	Confidence float64 `json:"confidence,omitempty"`
}

// BatchInsertResult aggregates a batch run. A failed record never aborts
// the batch; its error string is collected instead.
type BatchInsertResult struct {
	Successful         int      `json:"successful"`
	Failed             int      `json:"failed"`
	DuplicatesSkipped  int      `json:"duplicates_skipped"`
	Errors             []string `json:"errors,omitempty"`
	InsertedLawNumbers []string `json:"inserted_law_numbers,omitempty"`
}

// IngestService orchestrates validate, duplicate-check, store and
// index-update as one unit of work per law draft, with batching.
type IngestService struct {
	laws       LawStore
	refs       ReferenceStore
	validator  *LawValidator
	detector   *DuplicateDetector
	batchDelay time.Duration
	invalidate func()

	stats IngestStats
}

// IngestServiceOption is a functional option for IngestService
type IngestServiceOption func(*IngestService)

// WithLawStore sets the law store
func WithLawStore(laws LawStore) IngestServiceOption {
	return func(s *IngestService) {
		s.laws = laws
	}
}

// WithReferenceStore sets the reference store
func WithReferenceStore(refs ReferenceStore) IngestServiceOption {
	return func(s *IngestService) {
		s.refs = refs
	}
}

// WithDetector sets the duplicate detector
func WithDetector(detector *DuplicateDetector) IngestServiceOption {
	return func(s *IngestService) {
		s.detector = detector
	}
}

// WithCacheInvalidation registers a hook run after a bulk clear, for
// dropping caches that resolve against the same store (e.g. a co-resident
// CrossRefEngine's Invalidate).
func WithCacheInvalidation(fn func()) IngestServiceOption {
	return func(s *IngestService) {
		s.invalidate = fn
	}
}

// WithBatchDelay sets the pacing delay between batch chunks. This is a
// throttle on the downstream store, not a correctness mechanism.
func WithBatchDelay(d time.Duration) IngestServiceOption {
	return func(s *IngestService) {
		s.batchDelay = d
	}
}

// NewIngestService creates a new ingest service
func NewIngestService(opts ...IngestServiceOption) *IngestService {
	s := &IngestService{
		validator:  NewLawValidator(),
		batchDelay: defaultBatchDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats returns a copy of the running counters.
func (s *IngestService) Stats() IngestStats {
	return s.stats
}

// InsertLaw validates a draft, optionally checks it against the duplicate
// index, persists it and its outgoing references, and updates the index.
// A duplicate is a normal outcome, not an error: the returned outcome
// points at the matched existing law.
func (s *IngestService) InsertLaw(ctx context.Context, draft models.LawDraft, skipDuplicates bool) (*InsertOutcome, error) {
	if s.laws == nil {
		return nil, errors.New("law store not set")
	}

	validation := s.validator.Validate(draft)
	if !validation.Valid {
		s.stats.ValidationErrors++
		return nil, fmt.Errorf("validation failed for law %q: %s",
			draft.LawNumber, strings.Join(validation.Errors, "; "))
	}
	for _, warning := range validation.Warnings {
		log.Printf("law %s: %s", validation.Cleaned.LawNumber, warning)
	}
	cleaned := *validation.Cleaned

	if skipDuplicates && s.detector != nil {
		check := s.detector.Check(cleaned)
		if check.IsDuplicate {
			s.stats.DuplicatesPrevented++
			outcome := &InsertOutcome{
				LawNumber:  cleaned.LawNumber,
				Duplicate:  true,
				Confidence: check.Confidence,
			}
			if check.ExistingID != nil {
				outcome.LawID = *check.ExistingID
			}
			return outcome, nil
		}
	}

	law := &models.Law{
		LawNumber:   cleaned.LawNumber,
		Title:       cleaned.Title,
		Content:     cleaned.Content,
		Category:    cleaned.Category,
		Subcategory: cleaned.Subcategory,
		SourceFile:  cleaned.SourceFile,
		PageNumber:  cleaned.PageNumber,
		CharCount:   cleaned.CharCount,
	}
	if err := s.laws.CreateLaw(ctx, law); err != nil {
		return nil, fmt.Errorf("failed to insert law %s: %w", law.LawNumber, err)
	}
	if s.detector != nil {
		s.detector.Add(cleaned, law.ID)
	}
	s.stats.TotalInserts++

	references := cleaned.References
	if references == nil {
		references = parser.OutgoingReferences(cleaned.Content, cleaned.LawNumber)
	}

	if s.refs != nil {
		for _, ref := range references {
			edge := &models.LawReference{
				SourceLawID:     law.ID,
				TargetLawNumber: ref.TargetLawNumber,
				Context:         ref.Context,
				Position:        ref.Position,
			}
			if err := s.refs.CreateReference(ctx, edge); err != nil {
				log.Printf("failed to insert reference %s -> %s: %v",
					law.LawNumber, ref.TargetLawNumber, err)
			}
		}
	}

	return &InsertOutcome{LawID: law.ID, LawNumber: law.LawNumber}, nil
}

// InsertBatch processes drafts in fixed-size chunks with a pacing delay
// between chunks. Context cancellation is honored at the per-record
// boundary; records already processed stay processed.
func (s *IngestService) InsertBatch(ctx context.Context, drafts []models.LawDraft, skipDuplicates bool, batchSize int) BatchInsertResult {
	if batchSize <= 0 {
		batchSize = 50
	}

	var result BatchInsertResult
	log.Printf("starting batch insert of %d laws (batch size: %d)", len(drafts), batchSize)

	for start := 0; start < len(drafts); start += batchSize {
		end := start + batchSize
		if end > len(drafts) {
			end = len(drafts)
		}

		for _, draft := range drafts[start:end] {
			if err := ctx.Err(); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("batch aborted: %v", err))
				return result
			}

			outcome, err := s.InsertLaw(ctx, draft, skipDuplicates)
			switch {
			case err != nil:
				result.Failed++
				result.Errors = append(result.Errors, err.Error())
			case outcome.Duplicate:
				result.DuplicatesSkipped++
			default:
				result.Successful++
				result.InsertedLawNumbers = append(result.InsertedLawNumbers, outcome.LawNumber)
			}
		}

		if end < len(drafts) && s.batchDelay > 0 {
			time.Sleep(s.batchDelay)
		}
	}

	log.Printf("batch insert complete: %d successful, %d failed, %d duplicates skipped",
		result.Successful, result.Failed, result.DuplicatesSkipped)
	return result
}

// ClearTables bulk-deletes the named tables. The confirm flag is required;
// the duplicate index is rebuilt afterwards so it reflects the emptied
// store.
func (s *IngestService) ClearTables(ctx context.Context, tables []string, confirm bool) (map[string]int64, error) {
	if !confirm {
		return nil, ErrConfirmationRequired
	}
	if s.laws == nil {
		return nil, errors.New("law store not set")
	}

	counts, err := s.laws.ClearTables(ctx, tables)
	if err != nil {
		return nil, err
	}
	for table, count := range counts {
		log.Printf("cleared %d records from %s", count, table)
	}
	if s.invalidate != nil {
		s.invalidate()
	}

	if s.detector != nil {
		if err := s.detector.LoadFromStore(ctx); err != nil {
			return counts, err
		}
	}
	return counts, nil
}
