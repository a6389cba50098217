package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/audio-journal/internal/logger"
	"github.com/nguyentantai21042004/audio-journal/internal/store"
)

const testRoot = "/journal/entries"

func newTestReader(t *testing.T) (*Reader, *store.Store) {
	t.Helper()
	st := store.New(testRoot, store.NewMemory(), []string{".webm", ".wav"})
	return NewReader(st, logger.Nop()), st
}

func seed(t *testing.T, st *store.Store, name string, files map[string]string) string {
	t.Helper()
	raw := filepath.Join(testRoot, name)
	require.NoError(t, st.WriteBinary(raw, []byte("audio")))
	for kindSuffix, body := range files {
		var path string
		switch kindSuffix {
		case "txt":
			path = st.DerivedPath(raw, store.KindTranscript)
		case "summary":
			path = st.DerivedPath(raw, store.KindSummary)
		case "yaml":
			path = st.DerivedPath(raw, store.KindMetadata)
		}
		require.NoError(t, st.WriteText(path, body))
	}
	return raw
}

func TestListEntriesEmptyCatalog(t *testing.T) {
	r, _ := newTestReader(t)

	entries, err := r.ListEntries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListEntriesFullEntry(t *testing.T) {
	r, st := newTestReader(t)
	seed(t, st, "a.webm", map[string]string{
		"txt":     "hello world",
		"summary": "greeting",
		"yaml":    "title: First\ndate: 2024-01-15\ntags: [x, y]\n",
	})

	entries, err := r.ListEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "a", e.BaseName)
	assert.Equal(t, filepath.Join(testRoot, "a.webm"), e.RawMediaPath)
	assert.Equal(t, "First", e.Title)
	require.NotNil(t, e.Transcript)
	assert.Equal(t, "hello world", *e.Transcript)
	require.NotNil(t, e.Summary)
	assert.Equal(t, "greeting", *e.Summary)
	assert.Equal(t, []string{"x", "y"}, e.Tags)
	assert.Equal(t, "2024-01-15", e.Date)
}

func TestListEntriesRawOnly(t *testing.T) {
	r, st := newTestReader(t)
	seed(t, st, "b.wav", nil)

	entries, err := r.ListEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Nil(t, e.Transcript)
	assert.Nil(t, e.Summary)
	assert.Empty(t, e.Tags)
	assert.Empty(t, e.Date)
}

func TestListEntriesMalformedMetadata(t *testing.T) {
	r, st := newTestReader(t)
	seed(t, st, "c.webm", map[string]string{
		"txt":  "still readable",
		"yaml": "tags: [unclosed\n",
	})

	entries, err := r.ListEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Empty(t, e.Tags)
	assert.Empty(t, e.Date)
	require.NotNil(t, e.Transcript)
	assert.Equal(t, "still readable", *e.Transcript)
}

func TestListEntriesIgnoresNonMedia(t *testing.T) {
	r, st := newTestReader(t)
	seed(t, st, "a.webm", nil)
	require.NoError(t, st.WriteText(filepath.Join(testRoot, "notes.md"), "# not audio"))
	require.NoError(t, st.WriteText(filepath.Join(testRoot, ".hidden.webm"), "partial"))

	entries, err := r.ListEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].BaseName)
}

func TestListEntriesSortedByName(t *testing.T) {
	r, st := newTestReader(t)
	seed(t, st, "c.webm", nil)
	seed(t, st, "a.wav", nil)
	seed(t, st, "b.webm", nil)

	entries, err := r.ListEntries(context.Background())
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.BaseName)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestGet(t *testing.T) {
	r, st := newTestReader(t)
	seed(t, st, "a.webm", map[string]string{"summary": "s"})

	e, err := r.Get(context.Background(), "a")
	require.NoError(t, err)
	require.NotNil(t, e.Summary)

	_, err = r.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListEntriesCanceled(t *testing.T) {
	r, st := newTestReader(t)
	seed(t, st, "a.webm", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.ListEntries(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
