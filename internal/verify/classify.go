package verify

import (
	"regexp"
	"strings"

	"github.com/mmxlabs/mixaudit/internal/model"
)

// metricPattern maps a metric name to the synonym regex that detects it in
// a question. Declaration order is significant: the first match wins, so
// "marginal roi" classifies as roi (the word "roi" is itself present).
type metricPattern struct {
	name string
	re   *regexp.Regexp
}

// QuestionClassifier infers the target metric and channel from a user
// question. The synonym table is fixed at construction and never mutated,
// so a single classifier is safe for concurrent use.
type QuestionClassifier struct {
	metrics []metricPattern
}

// NewQuestionClassifier creates a classifier with the fixed synonym table
func NewQuestionClassifier() *QuestionClassifier {
	return &QuestionClassifier{
		metrics: []metricPattern{
			{"roi", regexp.MustCompile(`\b(roi|return on investment|return on ad spend)\b`)},
			{"mroi", regexp.MustCompile(`\b(marginal roi|mroi|incremental roi)\b`)},
			{"contribution", regexp.MustCompile(`\b(contribution|percent contribution|contributed|share)\b`)},
			{"spend", regexp.MustCompile(`\b(spend|investment|cost|budget)\b`)},
			{"revenue", regexp.MustCompile(`\b(revenue|incremental revenue|value)\b`)},
		},
	}
}

// Metric returns the metric the question asks about, or "" when none of the
// synonym patterns match
func (c *QuestionClassifier) Metric(question string) string {
	lower := strings.ToLower(question)
	for _, m := range c.metrics {
		if m.re.MatchString(lower) {
			return m.name
		}
	}
	return ""
}

// Channel returns the name of the first channel (in dataset order) whose
// name or id appears as a substring of the question, or "" when none does
func (c *QuestionClassifier) Channel(question string, ds *model.Dataset) string {
	lower := strings.ToLower(question)
	for _, ch := range ds.Channels() {
		if name := strings.ToLower(ch.Name()); name != "" && strings.Contains(lower, name) {
			return ch.Name()
		}
		if id := strings.ToLower(ch.ID()); id != "" && strings.Contains(lower, id) {
			return ch.Name()
		}
	}
	return ""
}
