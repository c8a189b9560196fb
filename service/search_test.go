package service

import (
	"context"
	"strconv"
	"testing"

	"bridgefacile-backend/models"

	"github.com/stretchr/testify/require"
)

func TestSearchAppliesFilters(t *testing.T) {
	store := newFakeStore()
	search := NewSearchService(store)
	ctx := context.Background()

	seedLaw(t, store, "10", "L'enchère doit être supérieure à la précédente annonce.")
	store.laws[0].Category = models.CategoryBidding
	seedLaw(t, store, "11", "La carte d'entame détermine la première levée du contrat.")

	result, err := search.Search(ctx, "enchère", models.SearchFilters{Category: "bidding"}, 0)
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	require.Equal(t, "10", result.Results[0].LawNumber)
	require.Equal(t, "enchère", result.Query)

	empty, err := search.Search(ctx, "enchère", models.SearchFilters{Category: "scoring"}, 0)
	require.NoError(t, err)
	require.Zero(t, empty.Total)
	require.Empty(t, empty.Results)
}

func TestSearchDefaultLimit(t *testing.T) {
	store := newFakeStore()
	search := NewSearchService(store)

	for i := 0; i < 30; i++ {
		seedLaw(t, store, "L"+strconv.Itoa(i), "Texte commun à toutes les dispositions du corpus ici.")
	}

	result, err := search.Search(context.Background(), "commun", models.SearchFilters{}, 0)
	require.NoError(t, err)
	require.Equal(t, defaultSearchLimit, result.Total)
}

func TestSuggestRanksByStringSimilarity(t *testing.T) {
	store := newFakeStore()
	search := NewSearchService(store)

	seedLaw(t, store, "12.1.3", "Troisième alinéa de la douzième disposition du code ici.")
	seedLaw(t, store, "12", "Douzième disposition du code avec son texte complet ici.")
	seedLaw(t, store, "12.1", "Premier alinéa de la douzième disposition du code ici.")

	suggestions, err := search.Suggest(context.Background(), "12")
	require.NoError(t, err)
	require.Len(t, suggestions, 3)
	// the exact match outranks the longer numbers
	require.Equal(t, "12", suggestions[0].LawNumber)
}

func TestSuggestNoMatches(t *testing.T) {
	search := NewSearchService(newFakeStore())

	suggestions, err := search.Suggest(context.Background(), "99")
	require.NoError(t, err)
	require.Empty(t, suggestions)
}
