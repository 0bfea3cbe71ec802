package verify

import (
	"strconv"

	"github.com/mmxlabs/mixaudit/internal/model"
)

// specificTolerance is the absolute difference allowed between the ground
// truth and a number asserted in the response
const specificTolerance = 0.01

// ValidateSpecific checks a single metric/channel answer against the ground
// truth value in the dataset. Inconclusive outcomes are structured results,
// not errors: callers should skip this validator and rely on the general
// fact check.
func (v *Verifier) ValidateSpecific(question, response, channelHint string, ds *model.Dataset) model.SpecificResult {
	metric := v.classifier.Metric(question)

	channel := channelHint
	if channel == "" {
		channel = v.classifier.Channel(question, ds)
	}

	if metric == "" || channel == "" {
		return model.SpecificResult{
			SpecificValidation: false,
			Reason:             "could not identify specific metric or channel",
		}
	}

	trueValue, ok := lookupMetric(ds, channel, metric)
	if !ok {
		return model.SpecificResult{
			SpecificValidation: false,
			Reason:             "could not find metric in source data",
		}
	}

	// Coarse net: every decimal anywhere in the response, no type filtering
	numbers := extractDecimals(response)

	found := false
	for _, n := range numbers {
		if absDiff(n, trueValue) < specificTolerance {
			found = true
			break
		}
	}

	return model.SpecificResult{
		SpecificValidation: true,
		Metric:             metric,
		Channel:            channel,
		TrueValue:          trueValue,
		FoundInResponse:    found,
		NumbersInResponse:  numbers,
	}
}

// lookupMetric finds the ground-truth value of metric for the named channel
// (case-insensitive on name or id)
func lookupMetric(ds *model.Dataset, channelName, metric string) (float64, bool) {
	ch, ok := ds.Channel(channelName)
	if !ok {
		return 0, false
	}
	return ch.Metric(metric)
}

// extractDecimals pulls every parseable decimal out of text
func extractDecimals(text string) []float64 {
	var numbers []float64
	for _, s := range decimalPattern.FindAllString(text, -1) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			numbers = append(numbers, f)
		}
	}
	return numbers
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
