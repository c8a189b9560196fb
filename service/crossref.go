package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"

	"bridgefacile-backend/models"
	"bridgefacile-backend/parser"
)

// RelatedLaw pairs a law with its relationship to the law it was looked up
// for: "incoming" means the related law references it, "outgoing" means it
// references the related law.
type RelatedLaw struct {
	Law          *models.Law `json:"law"`
	Relationship string      `json:"relationship"`
}

// CrossRefEngine resolves law numbers to records and walks the reference
// graph in both directions. Resolution hits an in-process cache before the
// store.
type CrossRefEngine struct {
	laws LawStore
	refs ReferenceStore

	mu    sync.Mutex
	cache map[string]*models.Law
}

// NewCrossRefEngine creates a new cross-reference engine
func NewCrossRefEngine(laws LawStore, refs ReferenceStore) *CrossRefEngine {
	return &CrossRefEngine{
		laws:  laws,
		refs:  refs,
		cache: make(map[string]*models.Law),
	}
}

// Resolve returns the law with the given number, or (nil, nil) when no
// such law is stored. Hits populate the cache.
func (e *CrossRefEngine) Resolve(ctx context.Context, lawNumber string) (*models.Law, error) {
	e.mu.Lock()
	cached, ok := e.cache[lawNumber]
	e.mu.Unlock()
	if ok {
		return cached, nil
	}

	law, err := e.laws.GetLawByNumber(ctx, lawNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve law %s: %w", lawNumber, err)
	}
	if law == nil {
		return nil, nil
	}

	e.mu.Lock()
	e.cache[lawNumber] = law
	e.mu.Unlock()
	return law, nil
}

// Invalidate drops the resolution cache. Register it with the ingest
// service's WithCacheInvalidation when engine and ingestion share a
// process, so a bulk clear does not leave stale resolutions behind.
// Separate processes (the usual server/ingest split) need nothing here.
func (e *CrossRefEngine) Invalidate() {
	e.mu.Lock()
	e.cache = make(map[string]*models.Law)
	e.mu.Unlock()
}

// RelatedLaws returns laws connected to the given one through stored
// reference edges, incoming before outgoing, truncated to maxResults.
func (e *CrossRefEngine) RelatedLaws(ctx context.Context, law *models.Law, maxResults int) ([]RelatedLaw, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	var related []RelatedLaw

	incoming, err := e.refs.ListByTargetNumber(ctx, law.LawNumber, maxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to list incoming references: %w", err)
	}
	for _, ref := range incoming {
		source, err := e.laws.GetLawByID(ctx, ref.SourceLawID)
		if err != nil {
			return nil, fmt.Errorf("failed to load referencing law: %w", err)
		}
		if source != nil {
			related = append(related, RelatedLaw{Law: source, Relationship: "incoming"})
		}
	}

	outgoing, err := e.refs.ListBySourceLaw(ctx, law.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list outgoing references: %w", err)
	}
	for _, ref := range outgoing {
		target, err := e.Resolve(ctx, ref.TargetLawNumber)
		if err != nil {
			return nil, err
		}
		if target != nil {
			related = append(related, RelatedLaw{Law: target, Relationship: "outgoing"})
		}
	}

	if len(related) > maxResults {
		related = related[:maxResults]
	}
	return related, nil
}

// ClickableContent annotates content with navigable anchor spans for every
// reference that resolves to a stored law other than the current one.
// Matches are processed in reverse position order so earlier insertions do
// not shift the offsets of pending matches. A match whose span overlaps an
// already-annotated span is skipped so anchors never nest or slice each
// other.
func (e *CrossRefEngine) ClickableContent(ctx context.Context, content string, currentLawID int64) (string, error) {
	refs := parser.FindReferences(content)

	var b strings.Builder
	result := content
	annotatedStart := len(content)
	for i := len(refs) - 1; i >= 0; i-- {
		ref := refs[i]
		if ref.Position+len(ref.MatchedText) > annotatedStart {
			continue
		}
		law, err := e.Resolve(ctx, ref.LawNumber)
		if err != nil {
			return "", err
		}
		if law == nil || law.ID == currentLawID {
			continue
		}

		b.Reset()
		fmt.Fprintf(&b,
			`<a href="#" class="law-reference" data-law-id="%d" data-law-number="%s" title="%s">%s</a>`,
			law.ID, html.EscapeString(ref.LawNumber), html.EscapeString(law.Title),
			html.EscapeString(ref.MatchedText))

		start := ref.Position
		end := start + len(ref.MatchedText)
		result = result[:start] + b.String() + result[end:]
		annotatedStart = start
	}
	return result, nil
}
