package service

import (
	"context"
	"testing"
	"time"

	"bridgefacile-backend/models"

	"github.com/stretchr/testify/require"
)

func newTestIngest(t *testing.T) (*IngestService, *fakeStore, *DuplicateDetector) {
	t.Helper()
	store := newFakeStore()
	detector := newLoadedDetector(t, store)
	ingest := NewIngestService(
		WithLawStore(store),
		WithReferenceStore(store),
		WithDetector(detector),
		WithBatchDelay(0),
	)
	return ingest, store, detector
}

func draftNumbered(number string) models.LawDraft {
	return models.LawDraft{
		LawNumber:  number,
		Title:      "Provision " + number + ".",
		Content:    "Contenu distinctif de la disposition numéro " + number + " du code.",
		Category:   models.CategoryGeneral,
		SourceFile: "code2017.pdf",
		PageNumber: 1,
	}
}

func TestInsertLawAssignsID(t *testing.T) {
	ingest, store, _ := newTestIngest(t)

	outcome, err := ingest.InsertLaw(context.Background(), draftNumbered("7"), true)
	require.NoError(t, err)
	require.False(t, outcome.Duplicate)
	require.Equal(t, int64(1), outcome.LawID)
	require.Len(t, store.laws, 1)
	require.Equal(t, 1, ingest.Stats().TotalInserts)
}

func TestInsertLawRejectsInvalidDraft(t *testing.T) {
	ingest, store, _ := newTestIngest(t)

	draft := draftNumbered("8")
	draft.Content = ""

	_, err := ingest.InsertLaw(context.Background(), draft, true)
	require.Error(t, err)
	require.Empty(t, store.laws)
	require.Equal(t, 1, ingest.Stats().ValidationErrors)
}

func TestInsertLawSkipsDuplicates(t *testing.T) {
	ingest, store, _ := newTestIngest(t)

	first, err := ingest.InsertLaw(context.Background(), draftNumbered("9"), true)
	require.NoError(t, err)
	require.False(t, first.Duplicate)

	second, err := ingest.InsertLaw(context.Background(), draftNumbered("9"), true)
	require.NoError(t, err)
	require.True(t, second.Duplicate)
	require.Equal(t, 1.0, second.Confidence)
	require.Len(t, store.laws, 1)
	require.Equal(t, 1, ingest.Stats().DuplicatesPrevented)
}

func TestInsertLawDuplicateCheckDisabled(t *testing.T) {
	ingest, store, _ := newTestIngest(t)

	_, err := ingest.InsertLaw(context.Background(), draftNumbered("9"), true)
	require.NoError(t, err)

	outcome, err := ingest.InsertLaw(context.Background(), draftNumbered("9"), false)
	require.NoError(t, err)
	require.False(t, outcome.Duplicate)
	require.Len(t, store.laws, 2)
}

func TestInsertBatchPartialFailure(t *testing.T) {
	ingest, _, _ := newTestIngest(t)

	drafts := []models.LawDraft{
		draftNumbered("1"),
		draftNumbered("2"),
		draftNumbered("3"),
		draftNumbered("4"),
		draftNumbered("5"),
	}
	drafts[2].Content = "" // fails validation

	result := ingest.InsertBatch(context.Background(), drafts, true, 2)
	require.Equal(t, 4, result.Successful)
	require.Equal(t, 1, result.Failed)
	require.Equal(t, 0, result.DuplicatesSkipped)
	require.NotEmpty(t, result.Errors)
	require.Equal(t, []string{"1", "2", "4", "5"}, result.InsertedLawNumbers)
}

func TestInsertBatchHonorsCancellation(t *testing.T) {
	ingest, store, _ := newTestIngest(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := ingest.InsertBatch(ctx, []models.LawDraft{draftNumbered("1")}, true, 10)
	require.Equal(t, 0, result.Successful)
	require.NotEmpty(t, result.Errors)
	require.Empty(t, store.laws)
}

func TestClearTablesRequiresConfirmation(t *testing.T) {
	ingest, _, _ := newTestIngest(t)

	_, err := ingest.ClearTables(context.Background(), []string{"code_laws"}, false)
	require.ErrorIs(t, err, ErrConfirmationRequired)
}

func TestClearTablesResetsDetectorIndex(t *testing.T) {
	ingest, store, detector := newTestIngest(t)

	_, err := ingest.InsertLaw(context.Background(), draftNumbered("7"), true)
	require.NoError(t, err)
	require.Equal(t, 1, detector.IndexSize())

	counts, err := ingest.ClearTables(context.Background(), []string{"law_references", "code_laws"}, true)
	require.NoError(t, err)
	require.Equal(t, int64(1), counts["code_laws"])
	require.Empty(t, store.laws)
	require.Equal(t, 0, detector.IndexSize())
}

func TestClearTablesDropsResolutionCache(t *testing.T) {
	store := newFakeStore()
	engine := NewCrossRefEngine(store, store)
	ingest := NewIngestService(
		WithLawStore(store),
		WithReferenceStore(store),
		WithDetector(newLoadedDetector(t, store)),
		WithBatchDelay(0),
		WithCacheInvalidation(engine.Invalidate),
	)
	ctx := context.Background()

	_, err := ingest.InsertLaw(ctx, draftNumbered("7"), true)
	require.NoError(t, err)

	law, err := engine.Resolve(ctx, "7")
	require.NoError(t, err)
	require.NotNil(t, law)

	_, err = ingest.ClearTables(ctx, []string{"law_references", "code_laws"}, true)
	require.NoError(t, err)

	stale, err := engine.Resolve(ctx, "7")
	require.NoError(t, err)
	require.Nil(t, stale)
}

func TestIngestEndToEnd(t *testing.T) {
	ingest, store, _ := newTestIngest(t)
	ctx := context.Background()

	first := models.LawDraft{
		LawNumber:  "1.1",
		Title:      "Bidding order.",
		Content:    "Players bid in turn. See Article 1.2 for exceptions.",
		Category:   models.CategoryBidding,
		SourceFile: "laws.pdf",
		PageNumber: 1,
	}
	second := models.LawDraft{
		LawNumber:  "1.2",
		Title:      "Exceptions.",
		Content:    "Exceptions to turn order apply under duress.",
		Category:   models.CategoryBidding,
		SourceFile: "laws.pdf",
		PageNumber: 1,
	}

	out1, err := ingest.InsertLaw(ctx, first, true)
	require.NoError(t, err)
	require.False(t, out1.Duplicate)

	out2, err := ingest.InsertLaw(ctx, second, true)
	require.NoError(t, err)
	require.False(t, out2.Duplicate)

	// Exactly one stored edge: 1.1 -> 1.2
	require.Len(t, store.refs, 1)
	require.Equal(t, out1.LawID, store.refs[0].SourceLawID)
	require.Equal(t, "1.2", store.refs[0].TargetLawNumber)

	// Same content as 1.1 under a fresh number: exact-content duplicate
	third := first
	third.LawNumber = "1.1b"
	third.Title = "Bidding order again."

	out3, err := ingest.InsertLaw(ctx, third, true)
	require.NoError(t, err)
	require.True(t, out3.Duplicate)
	require.Equal(t, out1.LawID, out3.LawID)
	require.Len(t, store.laws, 2)
	require.Len(t, store.refs, 1)
}

func TestBatchDelayDefault(t *testing.T) {
	s := NewIngestService()
	require.Equal(t, 100*time.Millisecond, s.batchDelay)
}
