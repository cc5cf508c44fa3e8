package option

import (
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// minSimilarity drops suggestions that share little with the input.
const minSimilarity = 0.5

// Suggest returns up to n entry names closest to name, best first.
func Suggest(l List, name string, n int) []string {
	if n <= 0 || name == "" {
		return nil
	}
	metric := metrics.NewJaroWinkler()
	metric.CaseSensitive = false

	type scored struct {
		name  string
		score float64
	}
	var candidates []scored
	for _, o := range l {
		score := strutil.Similarity(strings.TrimSpace(name), o.Name, metric)
		if score >= minSimilarity {
			candidates = append(candidates, scored{o.Name, score})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}
	return out
}
