package verify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mmxlabs/mixaudit/internal/model"
)

// plausibilityThreshold is the minimum overlap between mentioned channels
// and the true top-k. Partial overlap tolerates reordering and partial
// lists while still rejecting answers that name mostly wrong channels.
const plausibilityThreshold = 3

// ValidateRanking checks a "top/best/worst" style answer by recomputing the
// true ranking from the dataset and measuring overlap with the channels the
// response mentions.
func (v *Verifier) ValidateRanking(response, metric string, ds *model.Dataset) model.RankingResult {
	lower := strings.ToLower(response)

	// The response's implied mention list, in dataset iteration order.
	// A crude proxy for what the answer claimed to rank.
	var mentioned []string
	for _, ch := range ds.Channels() {
		if name := strings.ToLower(ch.Name()); name != "" && strings.Contains(lower, name) {
			mentioned = append(mentioned, ch.Name())
		}
	}

	if !metricPresent(ds, metric) {
		return model.RankingResult{
			ValidationType: "ranking",
			Error:          fmt.Sprintf("metric %q not found in data", metric),
		}
	}

	// Stable sort: ties keep dataset order, missing metric counts as 0
	ranked := append([]model.Channel(nil), ds.Channels()...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MetricOrZero(metric) > ranked[j].MetricOrZero(metric)
	})

	trueNames := make([]string, len(ranked))
	for i, ch := range ranked {
		trueNames[i] = ch.Name()
	}

	// Overlap of the mention set with the top-k of the true ranking,
	// where k = number of mentions
	k := len(mentioned)
	topK := make(map[string]bool, k)
	for _, name := range trueNames[:min(k, len(trueNames))] {
		topK[name] = true
	}

	overlap := 0
	for _, name := range uniqueNames(mentioned) {
		if topK[name] {
			overlap++
		}
	}

	return model.RankingResult{
		ValidationType:      "ranking",
		Metric:              metric,
		AIMentionedChannels: mentioned,
		TrueTop5Channels:    trueNames[:min(5, len(trueNames))],
		OverlapCount:        overlap,
		IsPlausible:         overlap >= plausibilityThreshold,
	}
}

// metricPresent reports whether any channel carries the metric field at all
func metricPresent(ds *model.Dataset, metric string) bool {
	for _, ch := range ds.Channels() {
		if _, ok := ch[metric]; ok {
			return true
		}
	}
	return false
}

func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	var unique []string
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			unique = append(unique, n)
		}
	}
	return unique
}
