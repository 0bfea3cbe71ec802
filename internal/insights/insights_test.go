package insights

import (
	"strings"
	"testing"

	"github.com/mmxlabs/mixaudit/internal/model"
)

func insightsDataset() *model.Dataset {
	return model.NewDataset(map[string]any{
		"model_version": "mmm-2025-06",
		"period":        "2025-Q1",
		"channels": []any{
			map[string]any{
				"name":               "Facebook",
				"id":                 "fb",
				"roi":                3.47,
				"contribution_pct":   0.27,
				"incremental_kpi":    135000.0,
				"spend":              38900.0,
				"observed_spend_min": 5000.0,
				"observed_spend_max": 52000.0,
				"hill":               map[string]any{"half_sat": 30000.0, "slope": 1.8},
				"adstock":            map[string]any{"decay": 0.55},
			},
			map[string]any{
				"name":               "YouTube",
				"id":                 "yt",
				"roi":                2.1,
				"contribution_pct":   0.15,
				"incremental_kpi":    62000.0,
				"spend":              29500.0,
				"observed_spend_min": 3000.0,
				"observed_spend_max": 41000.0,
				"hill":               map[string]any{"half_sat": 25000.0, "slope": 1.4},
				"adstock":            map[string]any{"decay": 0.4},
			},
		},
	})
}

func TestListChannels(t *testing.T) {
	names := ListChannels(insightsDataset())

	expected := []string{"Facebook", "YouTube"}
	if len(names) != len(expected) {
		t.Fatalf("Expected %d channels, got %d", len(expected), len(names))
	}
	for i, name := range names {
		if name != expected[i] {
			t.Errorf("Expected channel %q at index %d, got %q", expected[i], i, name)
		}
	}
}

func TestChannelSummary(t *testing.T) {
	insight, err := ChannelSummary(insightsDataset(), "facebook")
	if err != nil {
		t.Fatalf("ChannelSummary failed: %v", err)
	}

	if !strings.Contains(insight.Answer, "Facebook contributed 27.0%") {
		t.Errorf("Expected contribution in answer, got %q", insight.Answer)
	}
	if !strings.Contains(insight.Answer, "ROI ≈ 3.47") {
		t.Errorf("Expected ROI in answer, got %q", insight.Answer)
	}
	if !strings.Contains(insight.Explanation, "$30000") {
		t.Errorf("Expected half saturation in explanation, got %q", insight.Explanation)
	}
	if !strings.Contains(insight.Explanation, "0.55") {
		t.Errorf("Expected adstock decay in explanation, got %q", insight.Explanation)
	}
	if !strings.Contains(insight.Guardrails, "$5000–$52000") {
		t.Errorf("Expected spend range in guardrails, got %q", insight.Guardrails)
	}
	if insight.Source.Channel != "fb" {
		t.Errorf("Expected source channel fb, got %q", insight.Source.Channel)
	}
	if insight.Source.ModelVersion != "mmm-2025-06" {
		t.Errorf("Expected model version in source, got %q", insight.Source.ModelVersion)
	}
}

func TestChannelSummary_ByID(t *testing.T) {
	insight, err := ChannelSummary(insightsDataset(), "yt")
	if err != nil {
		t.Fatalf("ChannelSummary failed: %v", err)
	}
	if !strings.Contains(insight.Answer, "YouTube") {
		t.Errorf("Expected YouTube answer, got %q", insight.Answer)
	}
}

func TestChannelSummary_Unknown(t *testing.T) {
	_, err := ChannelSummary(insightsDataset(), "Radio")
	if err == nil {
		t.Fatal("Expected error for unknown channel, got nil")
	}
	if !strings.Contains(err.Error(), "Radio") {
		t.Errorf("Expected channel name in error, got %v", err)
	}
}

func TestSafeSpendRange(t *testing.T) {
	insight, err := SafeSpendRange(insightsDataset(), "YouTube")
	if err != nil {
		t.Fatalf("SafeSpendRange failed: %v", err)
	}

	if !strings.Contains(insight.Answer, "$3000–$41000") {
		t.Errorf("Expected spend range in answer, got %q", insight.Answer)
	}
	if !strings.Contains(insight.Guardrails, "extrapolating") {
		t.Errorf("Expected extrapolation warning, got %q", insight.Guardrails)
	}
}

func TestSafeSpendRange_Unknown(t *testing.T) {
	_, err := SafeSpendRange(insightsDataset(), "TikTok")
	if err == nil {
		t.Fatal("Expected error for unknown channel, got nil")
	}
}

func TestBestChannelByROI(t *testing.T) {
	insight, err := BestChannelByROI(insightsDataset())
	if err != nil {
		t.Fatalf("BestChannelByROI failed: %v", err)
	}

	if !strings.Contains(insight.Answer, "Facebook had the highest ROI ≈ 3.47") {
		t.Errorf("Expected Facebook as best channel, got %q", insight.Answer)
	}
	if insight.Source.Channel != "fb" {
		t.Errorf("Expected source channel fb, got %q", insight.Source.Channel)
	}
}

func TestBestChannelByROI_Empty(t *testing.T) {
	ds := model.NewDataset(map[string]any{"channels": []any{}})
	_, err := BestChannelByROI(ds)
	if err == nil {
		t.Fatal("Expected error for channelless dataset, got nil")
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{5000, "5000"},
		{0.55, "0.55"},
		{30000, "30000"},
		{1.8, "1.8"},
	}
	for _, c := range cases {
		if got := formatNumber(c.in); got != c.want {
			t.Errorf("formatNumber(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
