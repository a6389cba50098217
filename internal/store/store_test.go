package store

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testExts = []string{".webm", ".wav"}

var errPermission = errors.New("permission denied")

// brokenStorage fails every existence check.
type brokenStorage struct {
	Storage
}

func (b *brokenStorage) Exists(string) (bool, error) {
	return false, errPermission
}

func newMemoryStore(t *testing.T) (*Store, *Memory) {
	t.Helper()
	mem := NewMemory()
	return New("/journal/entries", mem, testExts), mem
}

func TestDerivedPath(t *testing.T) {
	s, _ := newMemoryStore(t)
	raw := "/journal/entries/audio-journal-entry-1700000000000.webm"

	tests := []struct {
		kind Kind
		want string
	}{
		{KindTranscript, "/journal/entries/audio-journal-entry-1700000000000.txt"},
		{KindSummary, "/journal/entries/audio-journal-entry-1700000000000.summary.txt"},
		{KindMetadata, "/journal/entries/audio-journal-entry-1700000000000.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, s.DerivedPath(raw, tt.kind))
			assert.Equal(t, s.DerivedPath(raw, tt.kind), s.DerivedPath(raw, tt.kind))
		})
	}

	assert.False(t, s.Exists(s.DerivedPath(raw, KindTranscript)), "deriving never creates files")
}

func TestAllocateRawMediaName(t *testing.T) {
	s, mem := newMemoryStore(t)
	fixed := time.UnixMilli(1700000000000)
	s.now = func() time.Time { return fixed }

	first, err := s.AllocateRawMediaName("webm")
	require.NoError(t, err)
	assert.Equal(t, "/journal/entries/audio-journal-entry-1700000000000.webm", first)

	second, err := s.AllocateRawMediaName(".webm")
	require.NoError(t, err)
	assert.Equal(t, "/journal/entries/audio-journal-entry-1700000000001.webm", second)

	_, err = mem.ReadDir("/journal/entries")
	assert.NoError(t, err, "allocation creates the catalog root")

	_, err = s.AllocateRawMediaName(".exe")
	assert.ErrorIs(t, err, ErrUnsupportedMedia)
}

func TestAllocateRawMediaNameSkipsExisting(t *testing.T) {
	s, _ := newMemoryStore(t)
	fixed := time.UnixMilli(42)
	s.now = func() time.Time { return fixed }

	require.NoError(t, s.WriteBinary("/journal/entries/audio-journal-entry-42.webm", []byte("old")))

	got, err := s.AllocateRawMediaName(".webm")
	require.NoError(t, err)
	assert.Equal(t, "/journal/entries/audio-journal-entry-43.webm", got)
}

func TestAllocateRawMediaNameConcurrent(t *testing.T) {
	s, _ := newMemoryStore(t)

	const n = 64
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		names = make(map[string]struct{}, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name, err := s.AllocateRawMediaName(".webm")
			assert.NoError(t, err)
			mu.Lock()
			names[name] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, names, n)
}

func TestAllocateImportName(t *testing.T) {
	s, _ := newMemoryStore(t)

	first, err := s.AllocateImportName("/home/me/Voice Memo 2024-01-15.WAV")
	require.NoError(t, err)
	assert.Equal(t, "/journal/entries/Voice-Memo-2024-01-15.wav", first)

	second, err := s.AllocateImportName("Voice Memo 2024-01-15.wav")
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "reserved names are not handed out twice")
	assert.True(t, strings.HasPrefix(filepath.Base(second), "Voice-Memo-2024-01-15-"))

	odd, err := s.AllocateImportName("???.webm")
	require.NoError(t, err)
	assert.Equal(t, "/journal/entries/imported-entry.webm", odd)

	_, err = s.AllocateImportName("notes.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedMedia)
}

func TestAllocateImportNameKeepsBasesDistinct(t *testing.T) {
	s, _ := newMemoryStore(t)

	first, err := s.AllocateImportName("meeting.wav")
	require.NoError(t, err)
	require.NoError(t, s.WriteBinary(first, []byte("audio")))

	tests := []struct {
		name   string
		source string
	}{
		{name: "same stem, other extension", source: "meeting.webm"},
		{name: "same stem, upper case extension", source: "meeting.WEBM"},
		{name: "stem that derives onto a summary path", source: "meeting.summary.wav"},
	}

	seen := map[string]string{first: "meeting.wav"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := s.AllocateImportName(tt.source)
			require.NoError(t, err)
			require.NoError(t, s.WriteBinary(raw, []byte("audio")))

			for other := range seen {
				assert.NotEqual(t, s.BaseName(other), s.BaseName(raw))
				for _, kind := range []Kind{KindTranscript, KindSummary, KindMetadata} {
					for _, otherKind := range []Kind{KindTranscript, KindSummary, KindMetadata} {
						assert.NotEqual(t, s.DerivedPath(other, otherKind), s.DerivedPath(raw, kind),
							"%s %s collides with %s %s", raw, kind, other, otherKind)
					}
				}
			}
			seen[raw] = tt.source
		})
	}
}

func TestAllocateImportNameSkipsLeftoverArtifacts(t *testing.T) {
	s, _ := newMemoryStore(t)
	require.NoError(t, s.WriteText("/journal/entries/memo.yaml", "tags: [x]\n"))

	raw, err := s.AllocateImportName("memo.wav")
	require.NoError(t, err)
	assert.NotEqual(t, "/journal/entries/memo.wav", raw)
	assert.True(t, strings.HasPrefix(filepath.Base(raw), "memo-"))
}

func TestAllocateImportNameReservesBase(t *testing.T) {
	s, _ := newMemoryStore(t)

	first, err := s.AllocateImportName("memo.wav")
	require.NoError(t, err)
	second, err := s.AllocateImportName("memo.webm")
	require.NoError(t, err)

	assert.NotEqual(t, s.BaseName(first), s.BaseName(second), "unwritten reservations claim the base too")
}

func TestStatPassesErrorsThrough(t *testing.T) {
	s := New("/journal/entries", &brokenStorage{Storage: NewMemory()}, []string{".wav"})

	_, err := s.Stat("/journal/entries/a.wav")
	assert.ErrorIs(t, err, errPermission)
	assert.False(t, s.Exists("/journal/entries/a.wav"))
}

func TestListRawMedia(t *testing.T) {
	s, _ := newMemoryStore(t)

	list, err := s.ListRawMedia()
	require.NoError(t, err)
	assert.Empty(t, list, "missing root is an empty catalog")

	for _, name := range []string{"b.webm", "a.wav", "a.txt", "a.summary.txt", "a.yaml", ".journal-tmp-1.webm", "c.WEBM"} {
		require.NoError(t, s.WriteText(filepath.Join(s.Root(), name), "x"))
	}

	list, err = s.ListRawMedia()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/journal/entries/a.wav",
		"/journal/entries/b.webm",
		"/journal/entries/c.WEBM",
	}, list)
}

func TestLookup(t *testing.T) {
	s, _ := newMemoryStore(t)
	require.NoError(t, s.WriteText("/journal/entries/morning.webm", "x"))

	raw, err := s.Lookup("morning")
	require.NoError(t, err)
	assert.Equal(t, "/journal/entries/morning.webm", raw)

	raw, err = s.Lookup("morning.webm")
	require.NoError(t, err)
	assert.Equal(t, "/journal/entries/morning.webm", raw)

	_, err = s.Lookup("evening")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadTextNotFound(t *testing.T) {
	s, _ := newMemoryStore(t)
	_, err := s.ReadText("/journal/entries/missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFSStoreRoundTrip(t *testing.T) {
	root := filepath.Join(t.TempDir(), "entries")
	s := New(root, NewFS(), testExts)

	raw, err := s.AllocateRawMediaName(".webm")
	require.NoError(t, err)
	require.NoError(t, s.WriteBinary(raw, []byte("FAKEAUDIO")))
	require.NoError(t, s.WriteText(s.DerivedPath(raw, KindTranscript), "hello"))

	assert.True(t, s.Exists(raw))
	text, err := s.ReadText(s.DerivedPath(raw, KindTranscript))
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	list, err := s.ListRawMedia()
	require.NoError(t, err)
	assert.Equal(t, []string{raw}, list)
}
