package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func baseNames(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.BaseName)
	}
	return out
}

func fixtureEntries() []Entry {
	return []Entry{
		{BaseName: "a", Tags: []string{"x", "y"}, Date: "2024-01-15", Transcript: strp("Walked the DOG"), Summary: strp("a walk")},
		{BaseName: "b", Tags: []string{"x"}, Date: "2024-02-01", Transcript: strp("meeting notes")},
		{BaseName: "c", Tags: []string{}, Date: ""},
		{BaseName: "d", Tags: []string{"y"}, Date: "not a date", Summary: strp("  ")},
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{
			name:  "empty query matches all",
			query: Query{},
			want:  []string{"a", "b", "c", "d"},
		},
		{
			name:  "tags require superset",
			query: Query{Tags: []string{"x", "y"}},
			want:  []string{"a"},
		},
		{
			name:  "single tag",
			query: Query{Tags: []string{"x"}},
			want:  []string{"a", "b"},
		},
		{
			name:  "text is case insensitive over transcript",
			query: Query{Text: "dog"},
			want:  []string{"a"},
		},
		{
			name:  "text matches summary",
			query: Query{Text: "WALK"},
			want:  []string{"a"},
		},
		{
			name:  "text matches date",
			query: Query{Text: "2024-02"},
			want:  []string{"b"},
		},
		{
			name:  "january range keeps undated and drops unparsable",
			query: Query{From: day("2024-01-01"), To: day("2024-01-31")},
			want:  []string{"a", "c"},
		},
		{
			name:  "bounds are inclusive",
			query: Query{From: day("2024-01-15"), To: day("2024-02-01")},
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "from only",
			query: Query{From: day("2024-01-16")},
			want:  []string{"b", "c"},
		},
		{
			name:  "has summary ignores blank summaries",
			query: Query{HasSummary: true},
			want:  []string{"a"},
		},
		{
			name:  "has transcript",
			query: Query{HasTranscript: true},
			want:  []string{"a", "b"},
		},
		{
			name:  "predicates combine with and",
			query: Query{Tags: []string{"x"}, Text: "notes"},
			want:  []string{"b"},
		},
		{
			name:  "no match yields empty",
			query: Query{Tags: []string{"z"}},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(fixtureEntries(), tt.query)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, baseNames(got))
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	entries := fixtureEntries()
	_ = Filter(entries, Query{Tags: []string{"x"}})
	assert.Len(t, entries, 4)
	assert.Equal(t, "a", entries[0].BaseName)
}

func TestFilterBoundWithTimeOfDay(t *testing.T) {
	entries := []Entry{{BaseName: "a", Date: "2024-01-31T23:30:00Z"}}
	to := time.Date(2024, 1, 31, 8, 0, 0, 0, time.UTC)

	assert.Len(t, Filter(entries, Query{To: to}), 1)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2024-01-15", want: "2024-01-15"},
		{in: " 2024-01-15 ", want: "2024-01-15"},
		{in: "2024-01-15T10:20:30Z", want: "2024-01-15"},
		{in: "2024-01-15T10:20:30", want: "2024-01-15"},
		{in: "2024/01/15", want: "2024-01-15"},
		{in: "15 Jan 2024", wantErr: true},
		{in: "2024-02-31", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
		})
	}
}

func TestSnippet(t *testing.T) {
	e := Entry{Transcript: strp("one  two\nthree")}
	assert.Equal(t, "one two three", e.Snippet(0))
	assert.Equal(t, "one two...", e.Snippet(7))
	assert.Equal(t, "", Entry{}.Snippet(10))
}
