package service

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"bridgefacile-backend/models"

	"github.com/stretchr/testify/require"
)

func TestResolveCachesHits(t *testing.T) {
	store := newFakeStore()
	engine := NewCrossRefEngine(store, store)
	seedLaw(t, store, "40", "Le déclarant joue les cartes du mort dans l'ordre annoncé.")

	ctx := context.Background()
	law, err := engine.Resolve(ctx, "40")
	require.NoError(t, err)
	require.NotNil(t, law)

	// drop the backing record; cached resolution still answers
	store.laws = nil
	cached, err := engine.Resolve(ctx, "40")
	require.NoError(t, err)
	require.NotNil(t, cached)
	require.Equal(t, law.ID, cached.ID)

	engine.Invalidate()
	gone, err := engine.Resolve(ctx, "40")
	require.NoError(t, err)
	require.Nil(t, gone)
}

func TestResolveUnknownIsNilNil(t *testing.T) {
	engine := NewCrossRefEngine(newFakeStore(), newFakeStore())

	law, err := engine.Resolve(context.Background(), "404")
	require.NoError(t, err)
	require.Nil(t, law)
}

func TestRelatedLawsIncomingBeforeOutgoing(t *testing.T) {
	store := newFakeStore()
	engine := NewCrossRefEngine(store, store)
	ctx := context.Background()

	center := seedLaw(t, store, "40", "Disposition centrale à laquelle d'autres renvoient souvent.")
	inbound := seedLaw(t, store, "41", "Cette disposition renvoie explicitement à la Loi 40 ici.")
	outbound := seedLaw(t, store, "42", "Cible des renvois sortants de la disposition centrale.")

	require.NoError(t, store.CreateReference(ctx, &models.LawReference{
		SourceLawID:     inbound.ID,
		TargetLawNumber: center.LawNumber,
	}))
	require.NoError(t, store.CreateReference(ctx, &models.LawReference{
		SourceLawID:     center.ID,
		TargetLawNumber: outbound.LawNumber,
	}))

	related, err := engine.RelatedLaws(ctx, center, 0)
	require.NoError(t, err)
	require.Len(t, related, 2)
	require.Equal(t, "incoming", related[0].Relationship)
	require.Equal(t, inbound.ID, related[0].Law.ID)
	require.Equal(t, "outgoing", related[1].Relationship)
	require.Equal(t, outbound.ID, related[1].Law.ID)
}

func TestRelatedLawsTruncates(t *testing.T) {
	store := newFakeStore()
	engine := NewCrossRefEngine(store, store)
	ctx := context.Background()

	center := seedLaw(t, store, "40", "Disposition centrale à laquelle d'autres renvoient souvent.")
	for _, n := range []string{"41", "42", "43"} {
		source := seedLaw(t, store, n, "Disposition "+n+" qui renvoie à la disposition centrale.")
		require.NoError(t, store.CreateReference(ctx, &models.LawReference{
			SourceLawID:     source.ID,
			TargetLawNumber: center.LawNumber,
		}))
	}

	related, err := engine.RelatedLaws(ctx, center, 2)
	require.NoError(t, err)
	require.Len(t, related, 2)
}

func TestClickableContentWrapsResolvedReferences(t *testing.T) {
	store := newFakeStore()
	engine := NewCrossRefEngine(store, store)
	ctx := context.Background()

	target := seedLaw(t, store, "1.2", "Exceptions to turn order apply under duress always.")
	source := seedLaw(t, store, "1.1", "Players bid in turn. See Article 1.2 for exceptions.")

	annotated, err := engine.ClickableContent(ctx, source.Content, source.ID)
	require.NoError(t, err)
	require.Contains(t, annotated, `class="law-reference"`)
	require.Contains(t, annotated, `data-law-number="1.2"`)
	require.Contains(t, annotated, `data-law-id="`+strconv.FormatInt(target.ID, 10)+`"`)
	// text outside the anchor is untouched
	require.True(t, strings.HasPrefix(annotated, "Players bid in turn."))
	require.True(t, strings.HasSuffix(annotated, "for exceptions."))
}

func TestClickableContentLetteredNumberEmitsOneCleanAnchor(t *testing.T) {
	store := newFakeStore()
	engine := NewCrossRefEngine(store, store)
	ctx := context.Background()

	seedLaw(t, store, "16", "Unauthorized information restrictions apply to both sides.")
	lettered := seedLaw(t, store, "16B", "Extraneous information from other sources is covered here.")
	source := seedLaw(t, store, "73", "Communication limits apply, see Law 16B for restrictions.")

	annotated, err := engine.ClickableContent(ctx, source.Content, source.ID)
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(annotated, "<a "))
	require.Contains(t, annotated, `data-law-number="16B"`)
	require.Contains(t, annotated, `data-law-id="`+strconv.FormatInt(lettered.ID, 10)+`"`)
	require.NotContains(t, annotated, `data-law-number="16"`)
	require.True(t, strings.HasSuffix(annotated, "for restrictions."))
}

func TestClickableContentSkipsUnresolvedAndSelf(t *testing.T) {
	store := newFakeStore()
	engine := NewCrossRefEngine(store, store)
	ctx := context.Background()

	law := seedLaw(t, store, "5", "Per Article 5, see also Article 99 which does not exist.")

	annotated, err := engine.ClickableContent(ctx, law.Content, law.ID)
	require.NoError(t, err)
	require.Equal(t, law.Content, annotated)
}
