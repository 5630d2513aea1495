package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreMatchesFileStoreContract(t *testing.T) {
	m := NewMemoryStore()

	require.False(t, m.Exists())
	doc, err := m.Load()
	require.NoError(t, err)
	require.Empty(t, doc)

	require.ErrorIs(t, m.Save(nil), ErrEmptyDocument)

	require.NoError(t, m.Save(map[string]any{"shifts": []any{}}))
	require.True(t, m.Exists())

	out, err := m.Load()
	require.NoError(t, err)
	require.Equal(t, map[string]any{"shifts": []any{}}, out)

	// first save has no prior document -> no backup yet
	infos, err := m.Backups()
	require.NoError(t, err)
	require.Empty(t, infos)

	require.NoError(t, m.Save(map[string]any{"shifts": []any{map[string]any{"id": float64(1)}}}))
	infos, err = m.Backups()
	require.NoError(t, err)
	require.Len(t, infos, 1)
}

func TestMemoryStoreLoadReturnsCopy(t *testing.T) {
	m := NewMemoryStore()
	require.NoError(t, m.Save(map[string]any{"k": "v"}))

	got, _ := m.Load()
	got.(map[string]any)["k"] = "mutated"

	again, _ := m.Load()
	require.Equal(t, "v", again.(map[string]any)["k"])
}

func TestMemoryStoreAcceptsAnyJSONValue(t *testing.T) {
	m := NewMemoryStore()

	require.NoError(t, m.Save([]any{map[string]any{"id": float64(1)}}))
	out, err := m.Load()
	require.NoError(t, err)
	require.Equal(t, []any{map[string]any{"id": float64(1)}}, out)

	for _, doc := range []any{nil, []any{}, "", float64(0), false} {
		require.ErrorIs(t, m.Save(doc), ErrEmptyDocument, "doc %#v", doc)
	}
}
