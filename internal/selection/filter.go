package selection

import "github.com/dshills/multipick/internal/option"

// Filter derives the candidate view. It keeps options, in order, whose label
// is not in selected and which match query. The query must already be
// normalized with option.NormalizeQuery.
func Filter(all, selected []option.Option, query string) []option.Option {
	taken := make(map[string]struct{}, len(selected))
	for _, o := range selected {
		taken[o.Label] = struct{}{}
	}

	out := make([]option.Option, 0, len(all))
	for _, o := range all {
		if _, ok := taken[o.Label]; ok {
			continue
		}
		if !o.Matches(query) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// dedupe keeps the first option for each label, preserving order.
func dedupe(opts []option.Option) []option.Option {
	seen := make(map[string]struct{}, len(opts))
	out := make([]option.Option, 0, len(opts))
	for _, o := range opts {
		if _, ok := seen[o.Label]; ok {
			continue
		}
		seen[o.Label] = struct{}{}
		out = append(out, o)
	}
	return out
}

func indexOf(opts []option.Option, label string) int {
	for i, o := range opts {
		if o.Label == label {
			return i
		}
	}
	return -1
}
