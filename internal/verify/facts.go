package verify

import "github.com/mmxlabs/mixaudit/internal/model"

// claimTolerance is the absolute difference under which an extracted claim
// matches a source number. Tighter than the specific-query tolerance since
// source values are compared as stored, not as quoted.
const claimTolerance = 0.001

// maxErrorContext caps the context carried in verified/failed claim records
const maxErrorContext = 100

// CheckClaims tolerance-matches every extracted claim against the flattened
// source-number bag. A report with zero claims has a success rate of 0.0 and
// is therefore not valid: an answer asserting nothing checkable earns no
// trust from this check.
func (v *Verifier) CheckClaims(claims []model.Claim, ds *model.Dataset) model.FactCheckResult {
	result := model.FactCheckResult{
		TotalClaims:    len(claims),
		Errors:         []model.ClaimError{},
		Warnings:       []string{},
		VerifiedClaims: []model.VerifiedClaim{},
	}

	sourceNumbers := FlattenNumbers(ds.Raw())

	for _, claim := range claims {
		matched := false
		for _, source := range sourceNumbers {
			if absDiff(claim.RawNumber, source) < claimTolerance {
				result.Verified++
				result.VerifiedClaims = append(result.VerifiedClaims, model.VerifiedClaim{
					DisplayValue:  claim.DisplayValue,
					RawNumber:     claim.RawNumber,
					MatchedSource: source,
					Context:       truncateContext(claim.Context),
				})
				matched = true
				break
			}
		}
		if !matched {
			result.Unverified++
			result.Errors = append(result.Errors, model.ClaimError{
				DisplayValue: claim.DisplayValue,
				RawNumber:    claim.RawNumber,
				Context:      truncateContext(claim.Context),
				Message:      "number not found in source data",
			})
		}
	}

	if result.TotalClaims > 0 {
		result.SuccessRate = float64(result.Verified) / float64(result.TotalClaims)
	}
	result.Valid = result.SuccessRate > 0.7

	return result
}

func truncateContext(context string) string {
	if len(context) > maxErrorContext {
		return context[:maxErrorContext] + "..."
	}
	return context
}
