package catalog

import "sort"

// TagCount is one tag and the number of entries carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagFrequencies counts, per tag, how many entries carry it.
func TagFrequencies(entries []Entry) map[string]int {
	freq := make(map[string]int)
	for _, e := range entries {
		seen := make(map[string]struct{}, len(e.Tags))
		for _, t := range e.Tags {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			freq[t]++
		}
	}
	return freq
}

// SortedTagCounts orders frequencies by count descending, then tag name.
func SortedTagCounts(freq map[string]int) []TagCount {
	out := make([]TagCount, 0, len(freq))
	for tag, n := range freq {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}
