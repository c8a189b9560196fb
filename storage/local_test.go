package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGenerateStoragePath(t *testing.T) {
	id := uuid.MustParse("aabbccdd-0000-0000-0000-000000000000")

	path := generateStoragePath(id, "Code International 2017/v2.pdf")
	require.True(t, strings.HasPrefix(path, "aa/"))
	require.Contains(t, path, id.String())
	require.True(t, strings.HasSuffix(path, ".pdf"))
	require.NotContains(t, path[3:], "/") // sanitized filename has no separators
	require.NotContains(t, path, " ")
}

func TestLocalStorageRoundTrip(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	id := uuid.New()

	path, err := s.Upload(ctx, id, "code2017.pdf", strings.NewReader("contenu du document"))
	require.NoError(t, err)

	reader, err := s.Download(ctx, path)
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, reader.Close())
	require.NoError(t, err)
	require.Equal(t, "contenu du document", string(data))

	require.NoError(t, s.Delete(ctx, path))
	_, err = s.Download(ctx, path)
	require.Error(t, err)

	// deleting a missing document is not an error
	require.NoError(t, s.Delete(ctx, path))
}

func TestLocalStorageList(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	var paths []string
	for _, name := range []string{"a.pdf", "b.pdf", "c.txt"} {
		p, err := s.Upload(ctx, uuid.New(), name, strings.NewReader("x"))
		require.NoError(t, err)
		paths = append(paths, p)
	}

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	require.ElementsMatch(t, paths, all)

	// prefix narrows to one shard directory
	prefix := paths[0][:3]
	shard, err := s.List(ctx, prefix)
	require.NoError(t, err)
	require.NotEmpty(t, shard)
	for _, p := range shard {
		require.True(t, strings.HasPrefix(p, prefix))
	}
}
