package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func node(lawNumber string) NavigationNode {
	return NavigationNode{LawNumber: lawNumber, Title: "Law " + lawNumber}
}

func TestNewNavigationSessionStartsEmpty(t *testing.T) {
	s := NewNavigationSession("abc")

	require.Equal(t, -1, s.CurrentIndex)
	require.Nil(t, s.Current())
	require.False(t, s.CanGoBack())
	require.False(t, s.CanGoForward())
	require.Nil(t, s.GoBack())
	require.Nil(t, s.GoForward())
	require.Nil(t, s.Breadcrumbs(5))
}

func TestAddNavigationTruncatesForwardHistory(t *testing.T) {
	s := NewNavigationSession("abc")
	s.AddNavigation(node("A"))
	s.AddNavigation(node("B"))
	s.AddNavigation(node("C"))
	require.Equal(t, 2, s.CurrentIndex)

	require.Equal(t, "B", s.GoBack().LawNumber)
	require.Equal(t, "A", s.GoBack().LawNumber)
	require.Equal(t, 0, s.CurrentIndex)

	s.AddNavigation(node("D"))
	require.Equal(t, 1, s.CurrentIndex)
	require.Len(t, s.History, 2)
	require.Equal(t, "A", s.History[0].LawNumber)
	require.Equal(t, "D", s.History[1].LawNumber)
	require.False(t, s.CanGoForward())
}

func TestGoBackDoesNotMutateHistory(t *testing.T) {
	s := NewNavigationSession("abc")
	s.AddNavigation(node("A"))
	s.AddNavigation(node("B"))

	s.GoBack()
	require.Len(t, s.History, 2)
	require.Equal(t, 0, s.CurrentIndex)

	require.Equal(t, "B", s.GoForward().LawNumber)
	require.Len(t, s.History, 2)
	require.Equal(t, 1, s.CurrentIndex)
}

func TestBreadcrumbsEndAtCursor(t *testing.T) {
	s := NewNavigationSession("abc")
	for _, n := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		s.AddNavigation(node(n))
	}

	crumbs := s.Breadcrumbs(5)
	require.Len(t, crumbs, 5)
	require.Equal(t, "C", crumbs[0].LawNumber)
	require.Equal(t, "G", crumbs[4].LawNumber)

	s.GoBack()
	s.GoBack()
	crumbs = s.Breadcrumbs(5)
	require.Equal(t, "E", crumbs[len(crumbs)-1].LawNumber)
}
