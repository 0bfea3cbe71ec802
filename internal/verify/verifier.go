package verify

import (
	"strings"

	"github.com/mmxlabs/mixaudit/internal/extract"
	"github.com/mmxlabs/mixaudit/internal/model"
)

// rankingMetrics are the metric tokens the dispatcher scans a question for
// before falling back to a general fact check. Order matters: the first
// token found in the question picks the ranking metric.
var rankingMetrics = []string{"roi", "mroi", "contribution_pct", "spend"}

// rankingWords signal a ranking-style question even without a metric token
var rankingWords = []string{"top", "best", "worst", "lowest"}

// Verifier is the trust-verification engine: it decides whether a generated
// answer's numbers can be traced back to the source dataset, picking a
// validation strategy adapted to the question asked.
//
// All state is read-only configuration fixed at construction, so one
// Verifier is safe for concurrent use.
type Verifier struct {
	extractor  *extract.ClaimExtractor
	classifier *QuestionClassifier
}

// NewVerifier creates a verifier with the default extractor and classifier
func NewVerifier() *Verifier {
	return &Verifier{
		extractor:  extract.NewClaimExtractor(),
		classifier: NewQuestionClassifier(),
	}
}

// Validate produces the merged validation report: the adaptive strategy's
// result plus an always-run general fact check. The dataset snapshot must
// not mutate during the call.
func (v *Verifier) Validate(question, response, channelHint string, ds *model.Dataset) *model.Report {
	adaptive := v.ValidateAdaptive(question, response, channelHint, ds)
	general := v.CheckClaims(v.extractor.Extract(response), ds)

	overall := general.Valid
	if verdict, ok := adaptive.Verdict(); ok {
		overall = overall && verdict
	}

	return &model.Report{
		Adaptive:     adaptive,
		General:      general,
		OverallValid: overall,
	}
}

// ValidateAdaptive chooses the validation strategy for the question.
// First match wins: a recognized metric runs the specific-query validator,
// a ranking token or keyword runs the ranking validator, anything else
// falls back to the general fact check.
func (v *Verifier) ValidateAdaptive(question, response, channelHint string, ds *model.Dataset) model.AdaptiveResult {
	if v.classifier.Metric(question) != "" {
		result := v.ValidateSpecific(question, response, channelHint, ds)
		return model.AdaptiveResult{
			Strategy: model.StrategySpecificMetric,
			Specific: &result,
		}
	}

	if metric, ok := rankingMetric(question); ok {
		result := v.ValidateRanking(response, metric, ds)
		return model.AdaptiveResult{
			Strategy: model.StrategyRanking,
			Ranking:  &result,
		}
	}

	result := v.CheckClaims(v.extractor.Extract(response), ds)
	return model.AdaptiveResult{
		Strategy:  model.StrategyGeneral,
		FactCheck: &result,
	}
}

// rankingMetric detects a ranking-style question and picks its metric:
// the first metric token contained in the question, or roi when only a
// ranking keyword matched.
func rankingMetric(question string) (string, bool) {
	lower := strings.ToLower(question)

	for _, metric := range rankingMetrics {
		if strings.Contains(lower, metric) {
			return metric, true
		}
	}
	for _, word := range rankingWords {
		if strings.Contains(lower, word) {
			return rankingMetrics[0], true
		}
	}
	return "", false
}

// ExtractClaims exposes the extractor for callers that need the raw claim
// list (e.g. offline inspection of a recorded response)
func (v *Verifier) ExtractClaims(response string) []model.Claim {
	return v.extractor.Extract(response)
}

// Classifier exposes the question classifier
func (v *Verifier) Classifier() *QuestionClassifier {
	return v.classifier
}
