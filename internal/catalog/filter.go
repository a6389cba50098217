package catalog

import (
	"strings"
	"time"
)

// Query combines entry predicates with logical AND. Zero fields match
// everything.
type Query struct {
	// Text is matched case-insensitively against summary, transcript and date.
	Text string
	// Tags must all be present on the entry.
	Tags []string
	// From and To bound the entry date inclusively, by calendar day.
	From time.Time
	To   time.Time

	HasSummary    bool
	HasTranscript bool
}

// Filter returns the entries matching q, in their original order.
func Filter(entries []Entry, q Query) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if q.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Match reports whether a single entry satisfies every predicate of q.
func (q Query) Match(e Entry) bool {
	return q.matchText(e) &&
		q.matchTags(e) &&
		q.matchDate(e) &&
		(!q.HasSummary || e.HasSummary()) &&
		(!q.HasTranscript || e.HasTranscript())
}

func (q Query) matchText(e Entry) bool {
	needle := strings.ToLower(strings.TrimSpace(q.Text))
	if needle == "" {
		return true
	}
	for _, field := range []*string{e.Summary, e.Transcript, &e.Date} {
		if field != nil && strings.Contains(strings.ToLower(*field), needle) {
			return true
		}
	}
	return false
}

func (q Query) matchTags(e Entry) bool {
	for _, t := range q.Tags {
		if !e.HasTag(t) {
			return false
		}
	}
	return true
}

// matchDate lets undated entries through. A dated entry whose date cannot
// be parsed fails any present bound.
func (q Query) matchDate(e Entry) bool {
	if q.From.IsZero() && q.To.IsZero() {
		return true
	}
	if strings.TrimSpace(e.Date) == "" {
		return true
	}
	day, err := ParseDate(e.Date)
	if err != nil {
		return false
	}
	if !q.From.IsZero() && day.Before(calendarDay(q.From)) {
		return false
	}
	if !q.To.IsZero() && day.After(calendarDay(q.To)) {
		return false
	}
	return true
}
