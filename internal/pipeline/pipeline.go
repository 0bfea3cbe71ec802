package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/mmxlabs/mixaudit/internal/audit"
	"github.com/mmxlabs/mixaudit/internal/cache"
	"github.com/mmxlabs/mixaudit/internal/dataset"
	"github.com/mmxlabs/mixaudit/internal/llm"
	"github.com/mmxlabs/mixaudit/internal/model"
	"github.com/mmxlabs/mixaudit/internal/verify"
	"github.com/mmxlabs/mixaudit/internal/worker"
)

// Pipeline orchestrates the complete audit flow: load the dataset snapshot,
// generate an answer, verify its numbers against the snapshot, annotate and
// log the exchange.
type Pipeline struct {
	loader   *dataset.Loader
	verifier *verify.Verifier
	analyst  *llm.Analyst
	auditLog *audit.Log
	renderer *Renderer
	config   *model.Config
	logger   zerolog.Logger
}

// NewPipeline creates a pipeline with the given configuration. A failed
// provider setup disables answering but never verification.
func NewPipeline(cfg *model.Config, logger zerolog.Logger) *Pipeline {
	var analyst *llm.Analyst
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize LLM provider, answering disabled")
	} else if provider != nil {
		var answers cache.Cache
		if cfg.Cache.Enabled {
			answers = cache.NewLayeredCache(cfg.Cache.TTL,
				filepath.Join(cfg.Output.LogDir, "cache"), 24*time.Hour)
		}
		limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
		analyst = llm.NewAnalyst(provider, answers, limiter, cfg.Cache.TTL)
	}

	return &Pipeline{
		loader:   dataset.NewLoader(cfg.Dataset.CacheTTL),
		verifier: verify.NewVerifier(),
		analyst:  analyst,
		auditLog: audit.NewLog(cfg.Output.LogDir, logger),
		renderer: NewRenderer(),
		config:   cfg,
		logger:   logger,
	}
}

// Exchange is one complete audited question/answer round trip
type Exchange struct {
	Question   string        `json:"question"`
	Channel    string        `json:"channel,omitempty"`
	Answer     string        `json:"answer"`
	Model      string        `json:"model,omitempty"`
	TokensUsed int           `json:"tokens_used,omitempty"`
	Report     *model.Report `json:"report"`
	AuditPath  string        `json:"audit_path,omitempty"`
}

// Ask answers a question with the configured provider, verifies the answer
// against the dataset, and logs the exchange. channel optionally narrows the
// dataset slice handed to the model and hints the verifier.
func (p *Pipeline) Ask(ctx context.Context, question, channel string) (*Exchange, error) {
	if !p.analyst.Enabled() {
		return nil, fmt.Errorf("no LLM provider configured (set llm.provider to openai or ollama)")
	}

	ds, err := p.loader.Load(p.config.Dataset.Path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	resp, err := p.analyst.Ask(ctx, question, channel, ds)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	report := p.verifier.Validate(question, resp.Text, channel, ds)

	answer := resp.Text
	if p.config.Output.Annotate {
		answer = Annotate(answer, report)
	}

	exchange := &Exchange{
		Question:   question,
		Channel:    channel,
		Answer:     answer,
		Model:      resp.Model,
		TokensUsed: resp.TokensUsed,
		Report:     report,
	}

	path, err := p.auditLog.Append(&audit.Record{
		Question:   question,
		Channel:    channel,
		Answer:     answer,
		Model:      resp.Model,
		TokensUsed: resp.TokensUsed,
		Report:     report,
	})
	if err != nil {
		// A failed audit write must not lose the answer
		p.logger.Warn().Err(err).Msg("failed to write audit record")
	} else {
		exchange.AuditPath = path
	}

	return exchange, nil
}

// Check verifies an already-written answer against the dataset without
// calling any provider
func (p *Pipeline) Check(question, response, channel string) (*model.Report, error) {
	ds, err := p.loader.Load(p.config.Dataset.Path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	return p.verifier.Validate(question, response, channel, ds), nil
}

// Review implements worker.Reviewer for batch processing
func (p *Pipeline) Review(ctx context.Context, question string) (*model.Report, error) {
	exchange, err := p.Ask(ctx, question, "")
	if err != nil {
		return nil, err
	}
	return exchange.Report, nil
}

// Dataset loads the configured dataset snapshot
func (p *Pipeline) Dataset() (*model.Dataset, error) {
	return p.loader.Load(p.config.Dataset.Path)
}

// Verifier exposes the verification engine
func (p *Pipeline) Verifier() *verify.Verifier {
	return p.verifier
}

// AnsweringEnabled reports whether a provider is configured
func (p *Pipeline) AnsweringEnabled() bool {
	return p.analyst.Enabled()
}

// RenderExchange renders the exchange to the specified outputs and prints
// a summary to stdout
func (p *Pipeline) RenderExchange(exchange *Exchange, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(exchange, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(exchange, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(exchange)

	return nil
}

// Annotate appends a discrepancy note to answers that failed verification,
// so a reader never sees an unflagged number the data cannot back.
func Annotate(answer string, report *model.Report) string {
	if report == nil || report.OverallValid {
		return answer
	}

	general := report.General
	return answer + fmt.Sprintf(
		"\n\n[verification] %d of %d numeric claims could not be traced to the model output (success rate %.0f%%).",
		general.Unverified, general.TotalClaims, general.SuccessRate*100)
}
