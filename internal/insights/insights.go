// Package insights renders deterministic, template-based answers straight
// from the dataset. Unlike the LLM analyst these never hallucinate: every
// number is read from the snapshot and formatted in place.
package insights

import (
	"fmt"
	"sort"

	"github.com/mmxlabs/mixaudit/internal/model"
)

// Source identifies where an insight's numbers came from
type Source struct {
	ModelVersion string `json:"model_version"`
	Period       string `json:"period"`
	Channel      string `json:"channel,omitempty"`
}

// Insight is a structured, data-grounded answer
type Insight struct {
	Answer      string `json:"answer"`
	Explanation string `json:"explanation,omitempty"`
	Guardrails  string `json:"guardrails,omitempty"`
	Source      Source `json:"source"`
	Confidence  string `json:"confidence,omitempty"`
}

// ListChannels returns the channel display names in dataset order
func ListChannels(ds *model.Dataset) []string {
	names := make([]string, 0, len(ds.Channels()))
	for _, ch := range ds.Channels() {
		names = append(names, ch.Name())
	}
	return names
}

// ChannelSummary answers "how did this channel do" from the snapshot:
// contribution, incremental KPI, spend, ROI, plus the saturation and
// carryover parameters that explain the shape of the response curve.
func ChannelSummary(ds *model.Dataset, channelName string) (*Insight, error) {
	ch, ok := ds.Channel(channelName)
	if !ok {
		return nil, fmt.Errorf("channel %q not found", channelName)
	}

	halfSat, _ := ch.Param("hill", "half_sat")
	decay, _ := ch.Param("adstock", "decay")

	return &Insight{
		Answer: fmt.Sprintf("In %s, %s contributed %.1f%% (≈$%.0f) on $%.0f spend. ROI ≈ %.2f.",
			ds.Period(), ch.Name(),
			ch.MetricOrZero("contribution_pct")*100,
			ch.MetricOrZero("incremental_kpi"),
			ch.MetricOrZero("spend"),
			ch.MetricOrZero("roi")),
		Explanation: fmt.Sprintf("The curve shows diminishing returns (Hill) near ~$%v and adstock carryover with decay %v.",
			formatNumber(halfSat), formatNumber(decay)),
		Guardrails: spendRangeSentence(ch),
		Source: Source{
			ModelVersion: ds.ModelVersion(),
			Period:       ds.Period(),
			Channel:      ch.ID(),
		},
		Confidence: "High",
	}, nil
}

// SafeSpendRange answers "how much can I spend" with the observed range
// the model was fitted on
func SafeSpendRange(ds *model.Dataset, channelName string) (*Insight, error) {
	ch, ok := ds.Channel(channelName)
	if !ok {
		return nil, fmt.Errorf("channel %q not found", channelName)
	}

	return &Insight{
		Answer: fmt.Sprintf("Safe spend range for %s in %s: $%v–$%v.",
			ch.Name(), ds.Period(),
			formatNumber(ch.MetricOrZero("observed_spend_min")),
			formatNumber(ch.MetricOrZero("observed_spend_max"))),
		Guardrails: "Avoid extrapolating outside this range.",
		Source: Source{
			ModelVersion: ds.ModelVersion(),
			Period:       ds.Period(),
			Channel:      ch.ID(),
		},
	}, nil
}

// BestChannelByROI finds the channel with the highest ROI
func BestChannelByROI(ds *model.Dataset) (*Insight, error) {
	channels := ds.Channels()
	if len(channels) == 0 {
		return nil, fmt.Errorf("dataset has no channels")
	}

	ranked := make([]model.Channel, len(channels))
	copy(ranked, channels)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MetricOrZero("roi") > ranked[j].MetricOrZero("roi")
	})
	best := ranked[0]

	return &Insight{
		Answer: fmt.Sprintf("In %s, %s had the highest ROI ≈ %.2f.",
			ds.Period(), best.Name(), best.MetricOrZero("roi")),
		Explanation: fmt.Sprintf("Contribution was %.1f%% (≈$%.0f) on $%.0f spend.",
			best.MetricOrZero("contribution_pct")*100,
			best.MetricOrZero("incremental_kpi"),
			best.MetricOrZero("spend")),
		Source: Source{
			ModelVersion: ds.ModelVersion(),
			Period:       ds.Period(),
			Channel:      best.ID(),
		},
		Confidence: "High",
	}, nil
}

func spendRangeSentence(ch model.Channel) string {
	return fmt.Sprintf("Observed spend range: $%v–$%v.",
		formatNumber(ch.MetricOrZero("observed_spend_min")),
		formatNumber(ch.MetricOrZero("observed_spend_max")))
}

// formatNumber renders integral floats without a trailing ".0" so ranges
// read like "$500–$9000" rather than "$500.0–$9000.0"
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
