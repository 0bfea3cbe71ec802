package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mmxlabs/mixaudit/internal/model"
)

// pattern pairs a compiled matcher with the claim type it produces.
// Patterns run in declaration order over the whole text so the specific
// ones (currency, ROI) claim their numbers before the bare-number
// catch-all can re-capture the same digits under a weaker type.
type pattern struct {
	re        *regexp.Regexp
	claimType model.ClaimType

	// RE2 has no negative lookbehind, so the bare-number pattern marks
	// itself and the extractor skips matches directly preceded by '$'.
	skipDollarPrefix bool
}

// contextRadius is how many bytes of surrounding text each claim keeps
const contextRadius = 80

// ClaimExtractor extracts numeric claims from generated answer text
type ClaimExtractor struct {
	patterns []pattern
}

// NewClaimExtractor creates an extractor with the fixed pattern set
func NewClaimExtractor() *ClaimExtractor {
	return &ClaimExtractor{
		patterns: []pattern{
			// Currency amounts, commas tolerated, optional 2-decimal cents
			{re: regexp.MustCompile(`\$([0-9,]+(?:\.[0-9]{2})?)`), claimType: model.ClaimCurrency},
			// ROI/mROI statements, tolerating markdown emphasis around the number
			{re: regexp.MustCompile(`(?i)(m?ROI)\s*(?:of|at|:|is)?\s*\*?\*?(\d+\.?\d*)\*?\*?`), claimType: model.ClaimROIMetric},
			// Percentages
			{re: regexp.MustCompile(`(\d+\.?\d*)\s*%`), claimType: model.ClaimPercentage},
			// Saturation mentions followed by a percentage on the same line
			{re: regexp.MustCompile(`(?i)(saturation|saturated).*?(\d+\.?\d*)\s*%`), claimType: model.ClaimSaturation},
			// Remaining decimals (at least two characters, so bare "5" is not a claim)
			{re: regexp.MustCompile(`(\d+\.?\d+)`), claimType: model.ClaimNumber, skipDollarPrefix: true},
		},
	}
}

// Extract scans text and returns numeric claims in pattern-application order.
// Pure function of text: identical input yields an identical claim list.
func (e *ClaimExtractor) Extract(text string) []model.Claim {
	seen := make(map[model.ClaimKey]bool)
	var claims []model.Claim

	for _, p := range e.patterns {
		for _, idx := range p.re.FindAllStringSubmatchIndex(text, -1) {
			numberStr, prefix, numberStart, ok := matchGroups(text, idx)
			if !ok {
				continue
			}

			if p.skipDollarPrefix && idx[0] > 0 && text[idx[0]-1] == '$' {
				continue
			}

			// Enumeration markers ("1. Increase budget") are not data
			if isListMarker(numberStr, text, numberStart) {
				continue
			}

			clean := strings.NewReplacer(",", "", "$", "").Replace(numberStr)
			rawNumber, err := strconv.ParseFloat(clean, 64)
			if err != nil {
				// Partial extraction is expected; unparseable matches are dropped
				continue
			}

			claim := model.Claim{
				DisplayValue: text[idx[0]:idx[1]],
				RawNumber:    rawNumber,
				Context:      contextWindow(text, idx[0], idx[1]),
				ClaimType:    p.claimType,
				Prefix:       prefix,
				Position:     idx[0],
			}

			// First occurrence wins and keeps the earliest context window
			if seen[claim.Key()] {
				continue
			}
			seen[claim.Key()] = true

			claims = append(claims, claim)
		}
	}

	return claims
}

// matchGroups resolves the number string, optional prefix label, and the
// number's start offset from a submatch index vector. Two captured groups
// mean (prefix, number); one group means just the number; anything else
// is discarded.
func matchGroups(text string, idx []int) (numberStr, prefix string, numberStart int, ok bool) {
	groups := len(idx)/2 - 1

	switch {
	case groups >= 2 && idx[4] >= 0:
		return text[idx[4]:idx[5]], text[idx[2]:idx[3]], idx[4], true
	case groups == 1 && idx[2] >= 0:
		return text[idx[2]:idx[3]], "", idx[2], true
	default:
		return "", "", 0, false
	}
}

// isListMarker reports whether a single digit at position is an enumeration
// marker: digit, '.', whitespace, then an uppercase letter
func isListMarker(numberStr, text string, position int) bool {
	if len(numberStr) != 1 || numberStr[0] < '0' || numberStr[0] > '9' {
		return false
	}

	rest := text[position+1:]
	return listMarkerTail.MatchString(rest)
}

var listMarkerTail = regexp.MustCompile(`^\.\s+[A-Z]`)

// contextWindow returns the text around a match, clipped to text bounds
func contextWindow(text string, start, end int) string {
	from := start - contextRadius
	if from < 0 {
		from = 0
	}
	to := end + contextRadius
	if to > len(text) {
		to = len(text)
	}
	return strings.TrimSpace(text[from:to])
}
