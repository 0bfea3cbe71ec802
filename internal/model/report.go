package model

// Strategy identifies which validation method the dispatcher selected
type Strategy string

const (
	StrategySpecificMetric Strategy = "specific_metric"
	StrategyRanking        Strategy = "ranking"
	StrategyGeneral        Strategy = "general_fact_check"
)

// SpecificResult is the outcome of validating a single metric/channel answer.
// An inconclusive outcome (SpecificValidation=false with a Reason) is not an
// error; it means the question could not be pinned to a metric and channel.
type SpecificResult struct {
	SpecificValidation bool      `json:"specific_validation"`
	Reason             string    `json:"reason,omitempty"`
	Metric             string    `json:"metric,omitempty"`
	Channel            string    `json:"channel,omitempty"`
	TrueValue          float64   `json:"true_value,omitempty"`
	FoundInResponse    bool      `json:"found_in_response"`
	NumbersInResponse  []float64 `json:"numbers_in_response,omitempty"`
}

// RankingResult is the outcome of validating a "top/best/worst" style answer
type RankingResult struct {
	ValidationType      string   `json:"validation_type"` // always "ranking"
	Metric              string   `json:"metric,omitempty"`
	AIMentionedChannels []string `json:"ai_mentioned_channels,omitempty"`
	TrueTop5Channels    []string `json:"true_top_5_channels,omitempty"`
	OverlapCount        int      `json:"overlap_count"`
	IsPlausible         bool     `json:"is_plausible"`
	Error               string   `json:"error,omitempty"` // set when the ranking metric is absent from the data
}

// VerifiedClaim records a claim that matched a source value
type VerifiedClaim struct {
	DisplayValue  string  `json:"display_value"`
	RawNumber     float64 `json:"raw_number"`
	MatchedSource float64 `json:"matched_source"`
	Context       string  `json:"context"`
}

// ClaimError records a claim that could not be traced to the source data
type ClaimError struct {
	DisplayValue string  `json:"display_value"`
	RawNumber    float64 `json:"raw_number"`
	Context      string  `json:"context"`
	Message      string  `json:"message"`
}

// FactCheckResult is the outcome of tolerance-matching every extracted claim
// against the flattened source numbers
type FactCheckResult struct {
	TotalClaims    int             `json:"total_claims"`
	Verified       int             `json:"verified"`
	Unverified     int             `json:"unverified"`
	Errors         []ClaimError    `json:"errors"`
	Warnings       []string        `json:"warnings"`
	VerifiedClaims []VerifiedClaim `json:"verified_claims"`
	SuccessRate    float64         `json:"success_rate"`
	Valid          bool            `json:"valid"` // success_rate > 0.7; zero claims never pass
}

// AdaptiveResult holds the outcome of the strategy the dispatcher selected.
// Exactly one of Specific, Ranking, FactCheck is set.
type AdaptiveResult struct {
	Strategy  Strategy         `json:"strategy"`
	Specific  *SpecificResult  `json:"specific,omitempty"`
	Ranking   *RankingResult   `json:"ranking,omitempty"`
	FactCheck *FactCheckResult `json:"fact_check,omitempty"`
}

// Verdict returns the adaptive branch's validity when it produced one.
// Specific results and successful ranking results are advisory and carry no
// verdict; the absence of one must not fail the overall report.
func (r AdaptiveResult) Verdict() (valid bool, ok bool) {
	switch {
	case r.FactCheck != nil:
		return r.FactCheck.Valid, true
	case r.Ranking != nil && r.Ranking.Error != "":
		return false, true
	default:
		return false, false
	}
}

// Report is the merged validation report: the adaptive strategy's result plus
// the always-run general fact check. Created fresh per validation call, never
// persisted by the engine itself.
type Report struct {
	Adaptive     AdaptiveResult  `json:"adaptive_validation"`
	General      FactCheckResult `json:"general_validation"`
	OverallValid bool            `json:"overall_valid"`
}
