package parser

import (
	"regexp"
	"sort"
	"strings"
)

// ReferenceMatch is one in-text mention of a law number, with a context
// window around the match.
type ReferenceMatch struct {
	LawNumber   string `json:"law_number"`
	Position    int    `json:"position"`
	Context     string `json:"context"`
	MatchedText string `json:"match_text"`
}

// contextWindow is the number of characters captured on each side of a
// reference match.
const contextWindow = 100

// referencePatterns match law mentions in French and English text. Each
// pattern captures the law number as group 1.
var referencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Article|Art\.?)\s*(\d+(?:\.\d+)*(?:[A-Z])?)`),
	regexp.MustCompile(`(?i)(?:Law|Rule|Loi|Règle)\s*(\d+(?:[A-Z])?)`),
	regexp.MustCompile(`(?i)(?:Section|§)\s*(\d+(?:\.\d+)*)`),
	regexp.MustCompile(`(?i)(?:voir|see|cf\.?|selon|per)\s+(?:l')?(?:article|art\.?|law|rule)\s*(\d+(?:\.\d+)*)`),
	regexp.MustCompile(`(?i)(?:conformément à|according to|as per)\s+(?:l')?(?:article|art\.?)\s*(\d+(?:\.\d+)*)`),
}

// FindReferences returns every law mention in text, ordered by position.
// Mentions whose captured law number starts at the same offset (the same
// number matched by more than one pattern, e.g. "See Article 1.2", or a
// lettered number like "16B" matched both whole and as its numeric prefix)
// are reported once, keeping the longest capture.
func FindReferences(text string) []ReferenceMatch {
	var refs []ReferenceMatch
	byStart := make(map[int]int)

	for _, pattern := range referencePatterns {
		matches := pattern.FindAllStringSubmatchIndex(text, -1)
		for _, m := range matches {
			start, end := m[0], m[1]
			numStart, numEnd := m[2], m[3]
			lawNumber := text[numStart:numEnd]

			ctxStart := start - contextWindow
			if ctxStart < 0 {
				ctxStart = 0
			}
			ctxEnd := end + contextWindow
			if ctxEnd > len(text) {
				ctxEnd = len(text)
			}

			ref := ReferenceMatch{
				LawNumber:   lawNumber,
				Position:    start,
				Context:     strings.TrimSpace(text[ctxStart:ctxEnd]),
				MatchedText: text[start:end],
			}

			if i, ok := byStart[numStart]; ok {
				if len(lawNumber) > len(refs[i].LawNumber) {
					refs[i] = ref
				}
				continue
			}
			byStart[numStart] = len(refs)
			refs = append(refs, ref)
		}
	}

	sort.Slice(refs, func(i, j int) bool {
		return refs[i].Position < refs[j].Position
	})
	return refs
}
