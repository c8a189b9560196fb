package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"bridgefacile-backend/models"
)

// DetectorConfig carries the near-duplicate thresholds. The defaults
// reproduce the historical behavior; they are policy, not law.
type DetectorConfig struct {
	ContentThreshold float64
	TitleThreshold   float64
}

// DefaultDetectorConfig returns the standard thresholds.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		ContentThreshold: 0.90,
		TitleThreshold:   0.95,
	}
}

// DuplicateCheckResult is the outcome of comparing a draft against the
// in-memory index. Never persisted.
type DuplicateCheckResult struct {
	IsDuplicate bool               `json:"is_duplicate"`
	Confidence  float64            `json:"confidence"`
	ExistingID  *int64             `json:"existing_id,omitempty"`
	Reasons     []string           `json:"reasons,omitempty"`
	Existing    *models.LawSummary `json:"existing,omitempty"`
}

// DuplicateDetector decides whether an incoming draft is new, an exact
// duplicate, or a near-duplicate of a stored law. The index is built once
// via LoadFromStore and kept current through Add after every insert; it is
// not safe for concurrent mutation.
type DuplicateDetector struct {
	laws   LawStore
	config DetectorConfig

	lawNumbers   map[string]bool
	fingerprints map[string]models.LawSummary
}

// NewDuplicateDetector creates a detector over the given store. Call
// LoadFromStore before the first Check.
func NewDuplicateDetector(laws LawStore, config DetectorConfig) *DuplicateDetector {
	return &DuplicateDetector{
		laws:         laws,
		config:       config,
		lawNumbers:   make(map[string]bool),
		fingerprints: make(map[string]models.LawSummary),
	}
}

// LoadFromStore rebuilds the index from current store contents.
func (d *DuplicateDetector) LoadFromStore(ctx context.Context) error {
	summaries, err := d.laws.ListLawSummaries(ctx)
	if err != nil {
		return fmt.Errorf("failed to load existing laws: %w", err)
	}

	d.lawNumbers = make(map[string]bool, len(summaries))
	d.fingerprints = make(map[string]models.LawSummary, len(summaries))
	for _, s := range summaries {
		d.lawNumbers[s.LawNumber] = true
		d.fingerprints[Fingerprint(s.Content)] = s
	}
	return nil
}

// IndexSize returns the number of indexed content fingerprints.
func (d *DuplicateDetector) IndexSize() int {
	return len(d.fingerprints)
}

// Check compares a draft against the index. Signals are evaluated in
// priority order: exact law-number collision, exact content fingerprint,
// then word-set similarity over every indexed law (an O(n) scan, fine for
// a corpus of thousands).
func (d *DuplicateDetector) Check(draft models.LawDraft) DuplicateCheckResult {
	if d.lawNumbers[draft.LawNumber] {
		return DuplicateCheckResult{
			IsDuplicate: true,
			Confidence:  1.0,
			Reasons:     []string{"exact law number match"},
		}
	}

	if existing, ok := d.fingerprints[Fingerprint(draft.Content)]; ok {
		return DuplicateCheckResult{
			IsDuplicate: true,
			Confidence:  1.0,
			ExistingID:  &existing.ID,
			Reasons:     []string{"identical content hash"},
			Existing:    &existing,
		}
	}

	var maxSimilarity float64
	var mostSimilar *models.LawSummary
	for _, existing := range d.fingerprints {
		sim := JaccardSimilarity(draft.Content, existing.Content)
		if sim > maxSimilarity {
			maxSimilarity = sim
			e := existing
			mostSimilar = &e
		}
	}

	var titleSimilarity float64
	if mostSimilar != nil {
		titleSimilarity = JaccardSimilarity(draft.Title, mostSimilar.Title)
	}

	var reasons []string
	var confidence float64
	if maxSimilarity > d.config.ContentThreshold {
		confidence = maxSimilarity
		reasons = append(reasons, fmt.Sprintf("high content similarity (%.2f%%)", maxSimilarity*100))
	}
	if titleSimilarity > d.config.TitleThreshold {
		if titleSimilarity > confidence {
			confidence = titleSimilarity
		}
		reasons = append(reasons, fmt.Sprintf("very similar title (%.2f%%)", titleSimilarity*100))
	}

	if len(reasons) == 0 {
		return DuplicateCheckResult{}
	}
	return DuplicateCheckResult{
		IsDuplicate: true,
		Confidence:  confidence,
		ExistingID:  &mostSimilar.ID,
		Reasons:     reasons,
		Existing:    mostSimilar,
	}
}

// Add records a just-inserted law so later checks in the same run see it.
func (d *DuplicateDetector) Add(draft models.LawDraft, lawID int64) {
	d.lawNumbers[draft.LawNumber] = true
	d.fingerprints[Fingerprint(draft.Content)] = models.LawSummary{
		ID:        lawID,
		LawNumber: draft.LawNumber,
		Title:     draft.Title,
		Content:   draft.Content,
	}
}

// Fingerprint hashes content with all whitespace removed and letters
// lower-cased, so formatting differences do not defeat exact matching.
func Fingerprint(content string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(content)), "")
	sum := md5.Sum([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// JaccardSimilarity is intersection over union of the lower-cased word
// sets of two texts.
func JaccardSimilarity(a, b string) float64 {
	wordsA := wordSet(a)
	wordsB := wordSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	intersection := 0
	for w := range wordsA {
		if wordsB[w] {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}
