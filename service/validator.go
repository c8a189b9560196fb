package service

import (
	"fmt"
	"strings"

	"bridgefacile-backend/models"
)

const (
	minContentLength = 20
	maxContentLength = 50000
	maxTitleLength   = 500
)

// ValidationResult reports the outcome of validating a law draft. Cleaned
// is only populated when Valid is true and holds the normalized field
// values ready for persistence.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Cleaned  *models.LawDraft `json:"-"`
}

// LawValidator enforces field-level data-quality rules on law drafts
// before they are allowed into storage.
type LawValidator struct{}

// NewLawValidator creates a new law validator
func NewLawValidator() *LawValidator {
	return &LawValidator{}
}

// Validate checks a draft against the data-quality rules. Missing required
// fields fail fast; length violations either error (content too short) or
// truncate with a warning.
func (v *LawValidator) Validate(draft models.LawDraft) ValidationResult {
	var errs, warnings []string

	if draft.LawNumber == "" {
		errs = append(errs, "Missing required field: law_number")
	}
	if draft.Title == "" {
		errs = append(errs, "Missing required field: title")
	}
	if draft.Content == "" {
		errs = append(errs, "Missing required field: content")
	}
	if draft.Category == "" {
		errs = append(errs, "Missing required field: category")
	}
	if len(errs) > 0 {
		return ValidationResult{Valid: false, Errors: errs}
	}

	cleaned := draft

	lawNumber := strings.TrimSpace(draft.LawNumber)
	if lawNumber == "" {
		errs = append(errs, "Law number cannot be empty")
	}
	cleaned.LawNumber = lawNumber

	// Length rules count characters, not bytes: the corpus is French text.
	title := strings.TrimSpace(draft.Title)
	if titleRunes := []rune(title); len(titleRunes) > maxTitleLength {
		warnings = append(warnings, fmt.Sprintf("Title truncated to %d characters", maxTitleLength))
		title = string(titleRunes[:maxTitleLength])
	}
	cleaned.Title = title

	content := strings.TrimSpace(draft.Content)
	contentRunes := []rune(content)
	if len(contentRunes) < minContentLength {
		errs = append(errs, fmt.Sprintf("Content too short (minimum %d characters)", minContentLength))
	} else if len(contentRunes) > maxContentLength {
		warnings = append(warnings, fmt.Sprintf("Content truncated to %d characters", maxContentLength))
		content = string(contentRunes[:maxContentLength])
	}
	cleaned.Content = content
	cleaned.CharCount = len([]rune(content))

	category := models.LawCategory(strings.ToLower(strings.TrimSpace(string(draft.Category))))
	if !models.IsValidCategory(category) {
		warnings = append(warnings, fmt.Sprintf("Unknown category '%s', using 'general'", category))
		category = models.CategoryGeneral
	}
	cleaned.Category = category

	// Zero means the producer never set a page, default silently; only a
	// supplied value out of range earns a warning.
	if draft.PageNumber == 0 {
		cleaned.PageNumber = 1
	} else if draft.PageNumber < 1 {
		warnings = append(warnings, "Invalid page_number, setting to 1")
		cleaned.PageNumber = 1
	}

	if len(errs) > 0 {
		return ValidationResult{Valid: false, Errors: errs, Warnings: warnings}
	}
	return ValidationResult{Valid: true, Warnings: warnings, Cleaned: &cleaned}
}
