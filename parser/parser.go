package parser

import (
	"regexp"
	"strings"

	"bridgefacile-backend/models"
)

// minContentLength is the shortest body accepted as a real provision;
// shorter matches are usually table-of-contents noise.
const minContentLength = 50

// lawPatterns match provision headers at line starts. Each pattern captures
// the law number as group 1; the body runs from the end of the header to
// the start of the next header of the same pattern (or end of text).
// Line anchoring keeps in-text mentions ("voir article 64") from being
// mistaken for headers.
var lawPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^\s*(?:Article|Art\.?)\s*(\d+(?:\.\d+)*)\s*[:\-]?\s*`),
	regexp.MustCompile(`(?m)^\s*(\d+(?:\.\d+)+)\s*[:\-]\s*`),
	regexp.MustCompile(`(?im)^\s*(?:Law|Rule)\s*(\d+(?:[A-Z])?)\s*[:\-]?\s*`),
}

// titlePattern captures the first sentence-terminated clause of a body.
var titlePattern = regexp.MustCompile(`^([^.!?]+[.!?])`)

// categoryKeywords maps categories to French and English trigger words.
// Order matters: the first category with a keyword hit wins.
var categoryKeywords = []struct {
	category models.LawCategory
	keywords []string
}{
	{models.CategoryBidding, []string{"enchère", "enchere", "bid", "auction", "annonce"}},
	{models.CategoryPlay, []string{"jeu", "play", "carte", "card", "pli", "trick"}},
	{models.CategoryScoring, []string{"marque", "score", "point", "vulnérabilité"}},
	{models.CategoryPenalties, []string{"pénalité", "penalty", "sanction", "amende"}},
	{models.CategoryProcedures, []string{"procédure", "procedure", "règlement", "regulation"}},
	{models.CategoryEthics, []string{"éthique", "ethics", "comportement", "conduct"}},
	{models.CategoryTournament, []string{"tournoi", "tournament", "compétition", "competition"}},
}

// LawParser turns raw page text into candidate law drafts.
type LawParser struct{}

// NewLawParser creates a new law parser
func NewLawParser() *LawParser {
	return &LawParser{}
}

// ExtractLaws produces candidate drafts from a block of text. The same
// provision may be emitted more than once when it matches several header
// patterns; deduplication is the duplicate detector's job, not the
// parser's.
func (p *LawParser) ExtractLaws(text, sourceFile string, pageNumber int) []models.LawDraft {
	var drafts []models.LawDraft

	for _, pattern := range lawPatterns {
		matches := pattern.FindAllStringSubmatchIndex(text, -1)

		for i, m := range matches {
			lawNumber := strings.TrimSpace(text[m[2]:m[3]])

			bodyEnd := len(text)
			if i < len(matches)-1 {
				bodyEnd = matches[i+1][0]
			}
			content := strings.TrimSpace(text[m[1]:bodyEnd])
			if len(content) < minContentLength {
				continue
			}

			drafts = append(drafts, models.LawDraft{
				LawNumber:  lawNumber,
				Title:      deriveTitle(content),
				Content:    content,
				Category:   Categorize(content),
				SourceFile: sourceFile,
				PageNumber: pageNumber,
				CharCount:  len([]rune(content)),
				References: OutgoingReferences(content, lawNumber),
			})
		}
	}

	return drafts
}

// deriveTitle takes the first sentence of the content, falling back to the
// first 100 characters with an ellipsis.
func deriveTitle(content string) string {
	if m := titlePattern.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	runes := []rune(content)
	if len(runes) <= 100 {
		return content
	}
	return string(runes[:100]) + "..."
}

// Categorize assigns a category by keyword lookup; unrecognized content is
// "general".
func Categorize(content string) models.LawCategory {
	lower := strings.ToLower(content)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.category
			}
		}
	}
	return models.CategoryGeneral
}

// OutgoingReferences finds mentions of other laws inside content,
// discarding self-references.
func OutgoingReferences(content, sourceLawNumber string) []models.ReferenceDraft {
	var out []models.ReferenceDraft
	for _, ref := range FindReferences(content) {
		if ref.LawNumber == sourceLawNumber {
			continue
		}
		out = append(out, models.ReferenceDraft{
			TargetLawNumber: ref.LawNumber,
			Context:         ref.Context,
			Position:        ref.Position,
		})
	}
	return out
}
