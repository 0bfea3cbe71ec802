package model

// Claim represents a single numeric assertion extracted from generated text
type Claim struct {
	DisplayValue string    `json:"display_value"`    // Full matched text, for human display
	RawNumber    float64   `json:"raw_number"`       // Parsed value, commas and currency stripped
	Context      string    `json:"context"`          // Surrounding text (±80 chars)
	ClaimType    ClaimType `json:"claim_type"`       // Which extraction pattern matched
	Prefix       string    `json:"prefix,omitempty"` // Metric label captured next to the number (e.g. "ROI")
	Position     int       `json:"position"`         // Byte offset of the match in the source text
}

// ClaimType categorizes the pattern that produced the claim
type ClaimType string

const (
	ClaimCurrency   ClaimType = "currency"   // Dollar amounts ($12,000.50)
	ClaimROIMetric  ClaimType = "roi_metric" // ROI/mROI statements ("ROI of 3.4")
	ClaimPercentage ClaimType = "percentage" // Numbers followed by %
	ClaimSaturation ClaimType = "saturation" // Saturation mentions with a percentage
	ClaimNumber     ClaimType = "number"     // Any remaining decimal
)

// ClaimKey identifies a claim for cross-pattern deduplication.
// No two claims in one extraction share the same key.
type ClaimKey struct {
	Value float64
	Type  ClaimType
}

// Key returns the deduplication key for the claim
func (c Claim) Key() ClaimKey {
	return ClaimKey{Value: c.RawNumber, Type: c.ClaimType}
}
