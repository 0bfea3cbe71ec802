package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mmxlabs/mixaudit/internal/model"
)

const testModelOutput = `{
  "model_version": "mmm-2025-06",
  "period": "2025-Q1",
  "diagnostics": {"r_squared": 0.91, "mape": 0.08},
  "channels": [
    {"name": "Facebook", "id": "fb", "roi": 3.47, "mroi": 1.2, "spend": 38900,
     "contribution_pct": 0.27, "incremental_kpi": 135000,
     "observed_spend_min": 5000, "observed_spend_max": 52000,
     "hill": {"half_sat": 30000, "slope": 1.8}, "adstock": {"decay": 0.55}},
    {"name": "YouTube", "id": "yt", "roi": 2.1, "mroi": 0.9, "spend": 29500,
     "contribution_pct": 0.15, "incremental_kpi": 62000,
     "observed_spend_min": 3000, "observed_spend_max": 41000,
     "hill": {"half_sat": 25000, "slope": 1.4}, "adstock": {"decay": 0.4}}
  ]
}`

func testPipeline(t *testing.T) *Pipeline {
	t.Helper()

	dir := t.TempDir()
	dataPath := filepath.Join(dir, "model_output.json")
	if err := os.WriteFile(dataPath, []byte(testModelOutput), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := model.DefaultConfig()
	cfg.Dataset.Path = dataPath
	cfg.Output.LogDir = filepath.Join(dir, "logs")

	return NewPipeline(cfg, zerolog.Nop())
}

func TestPipeline_Check(t *testing.T) {
	p := testPipeline(t)

	report, err := p.Check("What is the ROI for Facebook?", "Facebook's ROI is 3.47.", "")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if report.Adaptive.Strategy != model.StrategySpecificMetric {
		t.Errorf("Expected specific_metric strategy, got %s", report.Adaptive.Strategy)
	}
	if !report.OverallValid {
		t.Errorf("Expected verified report, got %+v", report)
	}
}

func TestPipeline_Check_FabricatedNumber(t *testing.T) {
	p := testPipeline(t)

	report, err := p.Check("How are the channels doing?", "Facebook delivered an ROI of 9.99 this quarter.", "")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if report.OverallValid {
		t.Error("Expected fabricated number to fail verification")
	}
}

func TestPipeline_Check_MissingDataset(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Dataset.Path = filepath.Join(t.TempDir(), "missing.json")
	p := NewPipeline(cfg, zerolog.Nop())

	_, err := p.Check("q", "r", "")
	if err == nil {
		t.Error("Expected error for missing dataset, got nil")
	}
}

func TestPipeline_AnsweringDisabledWithoutProvider(t *testing.T) {
	p := testPipeline(t)

	if p.AnsweringEnabled() {
		t.Error("Expected answering to be disabled without a provider")
	}
}

func TestAnnotate(t *testing.T) {
	answer := "Facebook's ROI is 9.99."
	report := &model.Report{
		General: model.FactCheckResult{
			TotalClaims: 1,
			Unverified:  1,
			SuccessRate: 0,
		},
		OverallValid: false,
	}

	annotated := Annotate(answer, report)
	if !strings.HasPrefix(annotated, answer) {
		t.Error("Expected original answer to be preserved")
	}
	if !strings.Contains(annotated, "1 of 1 numeric claims") {
		t.Errorf("Expected discrepancy note, got %q", annotated)
	}
}

func TestAnnotate_ValidReportUntouched(t *testing.T) {
	answer := "Facebook's ROI is 3.47."
	report := &model.Report{OverallValid: true}

	if got := Annotate(answer, report); got != answer {
		t.Errorf("Expected valid answer unchanged, got %q", got)
	}
}

func TestAnnotate_NilReport(t *testing.T) {
	if got := Annotate("answer", nil); got != "answer" {
		t.Errorf("Expected answer unchanged for nil report, got %q", got)
	}
}
