package extract

import (
	"reflect"
	"strings"
	"testing"

	"github.com/mmxlabs/mixaudit/internal/model"
)

func TestClaimExtractor_Currency(t *testing.T) {
	extractor := NewClaimExtractor()

	claims := extractor.Extract("Facebook received $52,000 in spend and returned $180,400.50 in value.")

	var currency []model.Claim
	for _, c := range claims {
		if c.ClaimType == model.ClaimCurrency {
			currency = append(currency, c)
		}
	}

	if len(currency) != 2 {
		t.Fatalf("Expected 2 currency claims, got %d", len(currency))
	}
	if currency[0].RawNumber != 52000 {
		t.Errorf("Expected 52000, got %v", currency[0].RawNumber)
	}
	if currency[1].RawNumber != 180400.50 {
		t.Errorf("Expected 180400.50, got %v", currency[1].RawNumber)
	}
	if currency[0].DisplayValue != "$52,000" {
		t.Errorf("Expected display value '$52,000', got %q", currency[0].DisplayValue)
	}
}

func TestClaimExtractor_ROIWithEmphasis(t *testing.T) {
	extractor := NewClaimExtractor()

	claims := extractor.Extract("Facebook's ROI is **3.47**, while YouTube has an mROI of 0.8.")

	var roi []model.Claim
	for _, c := range claims {
		if c.ClaimType == model.ClaimROIMetric {
			roi = append(roi, c)
		}
	}

	if len(roi) != 2 {
		t.Fatalf("Expected 2 roi_metric claims, got %d", len(roi))
	}
	if roi[0].RawNumber != 3.47 {
		t.Errorf("Expected 3.47, got %v", roi[0].RawNumber)
	}
	if roi[0].Prefix != "ROI" {
		t.Errorf("Expected prefix 'ROI', got %q", roi[0].Prefix)
	}
	if roi[1].RawNumber != 0.8 {
		t.Errorf("Expected 0.8, got %v", roi[1].RawNumber)
	}
	if roi[1].Prefix != "mROI" {
		t.Errorf("Expected prefix 'mROI', got %q", roi[1].Prefix)
	}
}

func TestClaimExtractor_PercentageAndSaturation(t *testing.T) {
	extractor := NewClaimExtractor()

	claims := extractor.Extract("TikTok is heavily saturated at 85% and contributed 12.5% of revenue.")

	foundSaturation := false
	foundPercentage := false
	for _, c := range claims {
		if c.ClaimType == model.ClaimSaturation && c.RawNumber == 85 {
			foundSaturation = true
			if !strings.EqualFold(c.Prefix, "saturated") {
				t.Errorf("Expected prefix 'saturated', got %q", c.Prefix)
			}
		}
		if c.ClaimType == model.ClaimPercentage && c.RawNumber == 12.5 {
			foundPercentage = true
		}
	}

	if !foundSaturation {
		t.Error("Expected a saturation claim for 85")
	}
	if !foundPercentage {
		t.Error("Expected a percentage claim for 12.5")
	}
}

func TestClaimExtractor_ListMarkerSuppression(t *testing.T) {
	extractor := NewClaimExtractor()

	claims := extractor.Extract("1. Increase budget. 2. Shift spend.")

	for _, c := range claims {
		if c.ClaimType == model.ClaimNumber && (c.RawNumber == 1 || c.RawNumber == 2) {
			t.Errorf("Enumeration marker extracted as claim: %+v", c)
		}
	}
}

func TestClaimExtractor_BareNumberSkipsCurrency(t *testing.T) {
	extractor := NewClaimExtractor()

	claims := extractor.Extract("Spend was $42.50 last week.")

	for _, c := range claims {
		if c.ClaimType == model.ClaimNumber && c.RawNumber == 42.50 {
			t.Error("Bare-number pattern re-captured a currency amount")
		}
	}
}

func TestClaimExtractor_SingleDigitIsNotABareNumber(t *testing.T) {
	extractor := NewClaimExtractor()

	claims := extractor.Extract("We tested 5 channels over 3.5 weeks.")

	for _, c := range claims {
		if c.ClaimType == model.ClaimNumber && c.RawNumber == 5 {
			t.Error("Single digit should not match the bare-number pattern")
		}
	}

	found := false
	for _, c := range claims {
		if c.ClaimType == model.ClaimNumber && c.RawNumber == 3.5 {
			found = true
		}
	}
	if !found {
		t.Error("Expected 3.5 as a number claim")
	}
}

func TestClaimExtractor_Deduplication(t *testing.T) {
	extractor := NewClaimExtractor()

	claims := extractor.Extract("ROI is 3.47. Later we again note an ROI of 3.47 for the same channel.")

	keys := make(map[model.ClaimKey]int)
	for _, c := range claims {
		keys[c.Key()]++
	}
	for key, n := range keys {
		if n > 1 {
			t.Errorf("Duplicate claim key %+v appeared %d times", key, n)
		}
	}
}

func TestClaimExtractor_FirstOccurrenceKeepsContext(t *testing.T) {
	extractor := NewClaimExtractor()

	text := "Alpha context mentions 27.5 first. " + strings.Repeat("filler ", 30) + "Beta context repeats 27.5 later."
	claims := extractor.Extract(text)

	for _, c := range claims {
		if c.ClaimType == model.ClaimNumber && c.RawNumber == 27.5 {
			if !strings.Contains(c.Context, "Alpha context") {
				t.Errorf("Expected earliest context window, got %q", c.Context)
			}
			return
		}
	}
	t.Fatal("Expected a number claim for 27.5")
}

func TestClaimExtractor_ContextClippedToBounds(t *testing.T) {
	extractor := NewClaimExtractor()

	text := "ROI of 3.2"
	claims := extractor.Extract(text)

	if len(claims) == 0 {
		t.Fatal("Expected at least one claim")
	}
	for _, c := range claims {
		if len(c.Context) > len(text) {
			t.Errorf("Context exceeds text bounds: %q", c.Context)
		}
	}
}

func TestClaimExtractor_Deterministic(t *testing.T) {
	extractor := NewClaimExtractor()
	text := "Facebook's ROI is 3.47, spend was $52,000, contribution 27%. 1. Do more."

	first := extractor.Extract(text)
	second := extractor.Extract(text)

	if !reflect.DeepEqual(first, second) {
		t.Error("Extraction is not deterministic for identical input")
	}
}

func TestClaimExtractor_PatternOrderIsStable(t *testing.T) {
	extractor := NewClaimExtractor()

	claims := extractor.Extract("Spend of $1,200.00 gave an ROI of 2.4 and 30% share.")

	// Claims arrive in pattern-application order: currency before roi_metric
	// before percentage, regardless of text order.
	lastRank := -1
	rank := map[model.ClaimType]int{
		model.ClaimCurrency:   0,
		model.ClaimROIMetric:  1,
		model.ClaimPercentage: 2,
		model.ClaimSaturation: 3,
		model.ClaimNumber:     4,
	}
	for _, c := range claims {
		if rank[c.ClaimType] < lastRank {
			t.Fatalf("Claims out of pattern order: %+v", claims)
		}
		lastRank = rank[c.ClaimType]
	}
}

func TestClaimExtractor_EmptyText(t *testing.T) {
	extractor := NewClaimExtractor()

	claims := extractor.Extract("")

	if len(claims) != 0 {
		t.Errorf("Expected 0 claims from empty text, got %d", len(claims))
	}
}

func TestIsListMarker(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		position int
		number   string
		want     bool
	}{
		{"enumeration", "1. Increase budget", 0, "1", true},
		{"enumeration mid-text", "Recommendations: 2. Shift spend", 17, "2", true},
		{"decimal point lowercase after", "1. increase", 0, "1", false},
		{"multi digit", "12. Points", 0, "12", false},
		{"plain digit", "We ran 3 tests", 7, "3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isListMarker(tt.number, tt.text, tt.position)
			if got != tt.want {
				t.Errorf("isListMarker(%q, %q, %d) = %v, want %v", tt.number, tt.text, tt.position, got, tt.want)
			}
		})
	}
}
