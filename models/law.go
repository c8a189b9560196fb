package models

import (
	"time"
)

// LawCategory represents the regulatory category of a law
type LawCategory string

const (
	CategoryBidding     LawCategory = "bidding"
	CategoryPlay        LawCategory = "play"
	CategoryScoring     LawCategory = "scoring"
	CategoryPenalties   LawCategory = "penalties"
	CategoryProcedures  LawCategory = "procedures"
	CategoryEthics      LawCategory = "ethics"
	CategoryTournament  LawCategory = "tournament"
	CategoryGeneral     LawCategory = "general"
	CategoryConventions LawCategory = "conventions"
	CategoryRNC         LawCategory = "rnc"
)

// CategoryWhitelist lists every category accepted by validation. Anything
// else is coerced to "general".
var CategoryWhitelist = []LawCategory{
	CategoryBidding, CategoryPlay, CategoryScoring, CategoryPenalties,
	CategoryProcedures, CategoryEthics, CategoryTournament,
	CategoryGeneral, CategoryConventions, CategoryRNC,
}

// IsValidCategory reports whether c is in the whitelist.
func IsValidCategory(c LawCategory) bool {
	for _, v := range CategoryWhitelist {
		if v == c {
			return true
		}
	}
	return false
}

// Law represents a single extracted regulatory provision
type Law struct {
	ID          int64       `json:"id"`
	LawNumber   string      `json:"law_number"`
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	Category    LawCategory `json:"category"`
	Subcategory *string     `json:"subcategory,omitempty"`
	SourceFile  string      `json:"source_file"`
	PageNumber  int         `json:"page_number"`
	CharCount   int         `json:"char_count"`
	CreatedAt   time.Time   `json:"created_at"`
}

// LawDraft is a candidate law produced by the parser, before validation
// and persistence. References are the outgoing mentions found in Content.
type LawDraft struct {
	LawNumber   string           `json:"law_number"`
	Title       string           `json:"title"`
	Content     string           `json:"content"`
	Category    LawCategory      `json:"category"`
	Subcategory *string          `json:"subcategory,omitempty"`
	SourceFile  string           `json:"source_file"`
	PageNumber  int              `json:"page_number"`
	CharCount   int              `json:"char_count"`
	References  []ReferenceDraft `json:"references,omitempty"`
}

// LawSummary is the projection of a law kept in the duplicate-detection
// index: just enough to attribute a match.
type LawSummary struct {
	ID        int64  `json:"id"`
	LawNumber string `json:"law_number"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

// LawReference is a directed edge: a mention of TargetLawNumber inside the
// content of the law identified by SourceLawID.
type LawReference struct {
	ID             int64   `json:"id"`
	SourceLawID    int64   `json:"source_law_id"`
	TargetLawNumber string `json:"target_law_number"`
	TargetLawTitle *string `json:"target_law_title,omitempty"`
	Context        string  `json:"context"`
	Position       int     `json:"position"`
}

// ReferenceDraft is an outgoing reference attached to a LawDraft before the
// owning law has a store id.
type ReferenceDraft struct {
	TargetLawNumber string `json:"target_law_number"`
	Context         string `json:"context"`
	Position        int    `json:"position"`
}

// SearchFilters narrows a text search over laws.
type SearchFilters struct {
	Category     string `json:"category,omitempty"`
	SourceFile   string `json:"source_file,omitempty"`
	MinCharCount int    `json:"min_char_count,omitempty"`
}

// LawSuggestion is a law-number completion candidate.
type LawSuggestion struct {
	LawNumber string `json:"law_number"`
	Title     string `json:"title"`
}
