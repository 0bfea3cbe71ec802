package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mmxlabs/mixaudit/internal/model"
)

// Renderer writes exchanges to JSON and Markdown outputs
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the exchange as indented JSON
func (r *Renderer) RenderJSON(exchange *Exchange, path string) error {
	data, err := json.MarshalIndent(exchange, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal exchange: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// RenderMarkdown writes a human-readable audit report
func (r *Renderer) RenderMarkdown(exchange *Exchange, path string) error {
	var b strings.Builder

	b.WriteString("# Answer Audit\n\n")
	b.WriteString(fmt.Sprintf("**Question:** %s\n\n", exchange.Question))
	if exchange.Channel != "" {
		b.WriteString(fmt.Sprintf("**Channel:** %s\n\n", exchange.Channel))
	}
	if exchange.Model != "" {
		b.WriteString(fmt.Sprintf("**Model:** %s\n\n", exchange.Model))
	}

	b.WriteString("## Answer\n\n")
	b.WriteString(exchange.Answer)
	b.WriteString("\n\n")

	b.WriteString(renderReportMarkdown(exchange.Report))

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

func renderReportMarkdown(report *model.Report) string {
	if report == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString("## Verification\n\n")
	b.WriteString(fmt.Sprintf("**Verdict:** %s\n\n", verdictLabel(report.OverallValid)))
	b.WriteString(fmt.Sprintf("**Strategy:** %s\n\n", report.Adaptive.Strategy))

	if s := report.Adaptive.Specific; s != nil {
		if s.SpecificValidation {
			b.WriteString(fmt.Sprintf("- Specific check: %s/%s = %.4g, %s\n",
				s.Channel, s.Metric, s.TrueValue, foundLabel(s.FoundInResponse)))
		} else {
			b.WriteString(fmt.Sprintf("- Specific check inconclusive: %s\n", s.Reason))
		}
	}

	if rk := report.Adaptive.Ranking; rk != nil {
		if rk.Error != "" {
			b.WriteString(fmt.Sprintf("- Ranking check failed: %s\n", rk.Error))
		} else {
			b.WriteString(fmt.Sprintf("- Ranking check (%s): %d/%d mentioned channels in the true top, plausible=%t\n",
				rk.Metric, rk.OverlapCount, len(rk.AIMentionedChannels), rk.IsPlausible))
		}
	}

	general := report.General
	b.WriteString(fmt.Sprintf("- Fact check: %d/%d claims verified (%.0f%%)\n",
		general.Verified, general.TotalClaims, general.SuccessRate*100))

	if len(general.Errors) > 0 {
		b.WriteString("\n### Untraceable claims\n\n")
		for _, e := range general.Errors {
			b.WriteString(fmt.Sprintf("- `%s` (%s): %s\n", e.DisplayValue, e.Message, e.Context))
		}
	}

	return b.String()
}

// RenderSummary prints a one-screen summary to stdout
func (r *Renderer) RenderSummary(exchange *Exchange) {
	report := exchange.Report

	fmt.Println()
	fmt.Printf("Question: %s\n", exchange.Question)
	if exchange.Channel != "" {
		fmt.Printf("Channel:  %s\n", exchange.Channel)
	}
	fmt.Println()
	fmt.Println(exchange.Answer)
	fmt.Println()

	if report == nil {
		return
	}

	fmt.Printf("Verdict:  %s (strategy: %s)\n", verdictLabel(report.OverallValid), report.Adaptive.Strategy)
	fmt.Printf("Claims:   %d/%d verified (%.0f%%)\n",
		report.General.Verified, report.General.TotalClaims, report.General.SuccessRate*100)
	if exchange.AuditPath != "" {
		fmt.Printf("Audit:    %s\n", exchange.AuditPath)
	}
}

func verdictLabel(valid bool) string {
	if valid {
		return "✓ VERIFIED"
	}
	return "✗ UNVERIFIED"
}

func foundLabel(found bool) string {
	if found {
		return "found in response"
	}
	return "NOT found in response"
}
