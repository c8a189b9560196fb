package models

import (
	"time"
)

// NavigationNode is one visited entry in a session's history.
type NavigationNode struct {
	LawID         int64     `json:"law_id"`
	LawNumber     string    `json:"law_number"`
	Title         string    `json:"title"`
	Timestamp     time.Time `json:"timestamp"`
	SourceContext string    `json:"source_context,omitempty"`
}

// NavigationSession holds per-session browse state: an ordered history with
// a cursor, bookmarks, and past search queries. It lives in process memory
// only; concurrent operations on the same session must be serialized by the
// caller.
type NavigationSession struct {
	SessionID     string           `json:"session_id"`
	History       []NavigationNode `json:"history"`
	CurrentIndex  int              `json:"current_index"`
	Bookmarks     map[string]bool  `json:"bookmarks"`
	SearchHistory []string         `json:"search_history"`
	LastSeen      time.Time        `json:"-"`
}

// NewNavigationSession creates an empty session. CurrentIndex is -1 until
// the first navigation.
func NewNavigationSession(sessionID string) *NavigationSession {
	return &NavigationSession{
		SessionID:    sessionID,
		CurrentIndex: -1,
		Bookmarks:    make(map[string]bool),
		LastSeen:     time.Now(),
	}
}

// AddNavigation appends a node, discarding any forward history beyond the
// current position (browser-style semantics).
func (s *NavigationSession) AddNavigation(node NavigationNode) {
	if s.CurrentIndex < len(s.History)-1 {
		s.History = s.History[:s.CurrentIndex+1]
	}
	s.History = append(s.History, node)
	s.CurrentIndex = len(s.History) - 1
}

// CanGoBack reports whether there is an earlier history entry.
func (s *NavigationSession) CanGoBack() bool {
	return s.CurrentIndex > 0
}

// CanGoForward reports whether there is a later history entry.
func (s *NavigationSession) CanGoForward() bool {
	return s.CurrentIndex < len(s.History)-1
}

// GoBack moves the cursor one entry back and returns it, or nil when
// already at the start.
func (s *NavigationSession) GoBack() *NavigationNode {
	if !s.CanGoBack() {
		return nil
	}
	s.CurrentIndex--
	return &s.History[s.CurrentIndex]
}

// GoForward moves the cursor one entry forward and returns it, or nil when
// already at the end.
func (s *NavigationSession) GoForward() *NavigationNode {
	if !s.CanGoForward() {
		return nil
	}
	s.CurrentIndex++
	return &s.History[s.CurrentIndex]
}

// Current returns the node at the cursor, or nil for an empty session.
func (s *NavigationSession) Current() *NavigationNode {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.History) {
		return nil
	}
	return &s.History[s.CurrentIndex]
}

// Breadcrumbs returns the last maxItems history entries up to and including
// the current position.
func (s *NavigationSession) Breadcrumbs(maxItems int) []NavigationNode {
	if len(s.History) == 0 || s.CurrentIndex < 0 {
		return nil
	}
	end := s.CurrentIndex + 1
	start := end - maxItems
	if start < 0 {
		start = 0
	}
	return s.History[start:end]
}
