package service

import (
	"context"
	"sync"
	"time"

	"bridgefacile-backend/models"
	"bridgefacile-backend/parser"
)

const (
	defaultBreadcrumbMax = 5
	defaultSessionTTL    = 30 * time.Minute
	defaultMaxSessions   = 1000
	relatedLawsMax       = 10
)

// NavigateResult is the envelope returned for every successful navigation:
// the resolved law enriched with clickable content, related laws, raw
// reference matches and session navigation metadata.
type NavigateResult struct {
	Law              *models.Law             `json:"law"`
	Context          string                  `json:"context,omitempty"`
	ClickableContent string                  `json:"clickable_content"`
	RelatedLaws      []RelatedLaw            `json:"related_laws"`
	References       []parser.ReferenceMatch `json:"references"`
	CanGoBack        bool                    `json:"can_go_back"`
	CanGoForward     bool                    `json:"can_go_forward"`
	Breadcrumbs      []models.NavigationNode `json:"breadcrumbs"`
}

// NavigationService keeps per-session browse state over resolved laws.
// Distinct sessions are independent; calls for the same session id must be
// serialized by the caller. Idle sessions are evicted after a TTL, and the
// session map is capped so sustained traffic cannot grow it without bound.
type NavigationService struct {
	engine *CrossRefEngine
	search *SearchService

	breadcrumbMax int
	sessionTTL    time.Duration
	maxSessions   int

	mu       sync.Mutex
	sessions map[string]*models.NavigationSession
}

// NavigationServiceOption is a functional option for NavigationService
type NavigationServiceOption func(*NavigationService)

// WithBreadcrumbMax sets the breadcrumb trail length cap.
func WithBreadcrumbMax(n int) NavigationServiceOption {
	return func(s *NavigationService) {
		s.breadcrumbMax = n
	}
}

// WithSessionTTL sets the idle lifetime of a session.
func WithSessionTTL(ttl time.Duration) NavigationServiceOption {
	return func(s *NavigationService) {
		s.sessionTTL = ttl
	}
}

// WithMaxSessions caps the number of live sessions.
func WithMaxSessions(n int) NavigationServiceOption {
	return func(s *NavigationService) {
		s.maxSessions = n
	}
}

// NewNavigationService creates a new navigation service
func NewNavigationService(engine *CrossRefEngine, search *SearchService, opts ...NavigationServiceOption) *NavigationService {
	s := &NavigationService{
		engine:        engine,
		search:        search,
		breadcrumbMax: defaultBreadcrumbMax,
		sessionTTL:    defaultSessionTTL,
		maxSessions:   defaultMaxSessions,
		sessions:      make(map[string]*models.NavigationSession),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NavigateTo resolves a law and appends it to the session's history,
// discarding any forward history first. An unresolvable number leaves the
// session untouched and returns ErrLawNotFound.
func (s *NavigationService) NavigateTo(ctx context.Context, sessionID, lawNumber, sourceContext string) (*NavigateResult, error) {
	law, err := s.engine.Resolve(ctx, lawNumber)
	if err != nil {
		return nil, err
	}
	if law == nil {
		return nil, ErrLawNotFound
	}

	session := s.getOrCreateSession(sessionID)
	session.AddNavigation(models.NavigationNode{
		LawID:         law.ID,
		LawNumber:     law.LawNumber,
		Title:         law.Title,
		Timestamp:     time.Now(),
		SourceContext: sourceContext,
	})

	return s.buildResult(ctx, session, law, sourceContext)
}

// GoBack moves the session cursor one entry back and returns the enriched
// law now pointed at. History is not mutated beyond the cursor move.
func (s *NavigationService) GoBack(ctx context.Context, sessionID string) (*NavigateResult, error) {
	return s.step(ctx, sessionID, -1)
}

// GoForward is the mirror of GoBack.
func (s *NavigationService) GoForward(ctx context.Context, sessionID string) (*NavigateResult, error) {
	return s.step(ctx, sessionID, +1)
}

func (s *NavigationService) step(ctx context.Context, sessionID string, direction int) (*NavigateResult, error) {
	session := s.getSession(sessionID)
	if session == nil {
		return nil, ErrNoSession
	}

	var node *models.NavigationNode
	var label string
	if direction < 0 {
		node = session.GoBack()
		label = "Back navigation"
		if node == nil {
			return nil, ErrCannotGoBack
		}
	} else {
		node = session.GoForward()
		label = "Forward navigation"
		if node == nil {
			return nil, ErrCannotGoForward
		}
	}

	law, err := s.engine.Resolve(ctx, node.LawNumber)
	if err != nil {
		return nil, err
	}
	if law == nil {
		return nil, ErrLawNotFound
	}
	return s.buildResult(ctx, session, law, label)
}

// Search delegates to the store-backed search and records the query in the
// session's search history when a session exists (it does not create one).
func (s *NavigationService) Search(ctx context.Context, sessionID, query string, filters models.SearchFilters, limit int) (*SearchResult, error) {
	if query != "" {
		s.mu.Lock()
		if session, ok := s.sessions[sessionID]; ok {
			session.SearchHistory = append(session.SearchHistory, query)
			session.LastSeen = time.Now()
		}
		s.mu.Unlock()
	}
	return s.search.Search(ctx, query, filters, limit)
}

// AddBookmark marks a law number in the session, creating the session if
// needed.
func (s *NavigationService) AddBookmark(sessionID, lawNumber string) {
	session := s.getOrCreateSession(sessionID)
	session.Bookmarks[lawNumber] = true
}

// RemoveBookmark clears a bookmark; a missing session is reported.
func (s *NavigationService) RemoveBookmark(sessionID, lawNumber string) error {
	session := s.getSession(sessionID)
	if session == nil {
		return ErrNoSession
	}
	delete(session.Bookmarks, lawNumber)
	return nil
}

// ExportSession returns a snapshot of the session state.
func (s *NavigationService) ExportSession(sessionID string) (*models.NavigationSession, error) {
	session := s.getSession(sessionID)
	if session == nil {
		return nil, ErrNoSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := *session
	snapshot.History = append([]models.NavigationNode(nil), session.History...)
	snapshot.SearchHistory = append([]string(nil), session.SearchHistory...)
	snapshot.Bookmarks = make(map[string]bool, len(session.Bookmarks))
	for k, v := range session.Bookmarks {
		snapshot.Bookmarks[k] = v
	}
	return &snapshot, nil
}

// SessionCount returns the number of live sessions.
func (s *NavigationService) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *NavigationService) buildResult(ctx context.Context, session *models.NavigationSession, law *models.Law, sourceContext string) (*NavigateResult, error) {
	clickable, err := s.engine.ClickableContent(ctx, law.Content, law.ID)
	if err != nil {
		return nil, err
	}
	related, err := s.engine.RelatedLaws(ctx, law, relatedLawsMax)
	if err != nil {
		return nil, err
	}

	return &NavigateResult{
		Law:              law,
		Context:          sourceContext,
		ClickableContent: clickable,
		RelatedLaws:      related,
		References:       parser.FindReferences(law.Content),
		CanGoBack:        session.CanGoBack(),
		CanGoForward:     session.CanGoForward(),
		Breadcrumbs:      session.Breadcrumbs(s.breadcrumbMax),
	}, nil
}

func (s *NavigationService) getSession(sessionID string) *models.NavigationSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictIdleLocked()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	session.LastSeen = time.Now()
	return session
}

func (s *NavigationService) getOrCreateSession(sessionID string) *models.NavigationSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictIdleLocked()

	session, ok := s.sessions[sessionID]
	if !ok {
		if len(s.sessions) >= s.maxSessions {
			s.evictOldestLocked()
		}
		session = models.NewNavigationSession(sessionID)
		s.sessions[sessionID] = session
	}
	session.LastSeen = time.Now()
	return session
}

func (s *NavigationService) evictIdleLocked() {
	cutoff := time.Now().Add(-s.sessionTTL)
	for id, session := range s.sessions {
		if session.LastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

func (s *NavigationService) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, session := range s.sessions {
		if oldestID == "" || session.LastSeen.Before(oldest) {
			oldestID = id
			oldest = session.LastSeen
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
	}
}
