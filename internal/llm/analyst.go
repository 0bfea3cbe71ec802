package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mmxlabs/mixaudit/internal/cache"
	"github.com/mmxlabs/mixaudit/internal/model"
	"github.com/mmxlabs/mixaudit/internal/worker"
)

// Analyst answers marketing-mix questions by grounding a generative model
// in a dataset snapshot. Answers are cached (same question, same channel,
// same model version ⇒ same answer) and provider calls are rate limited.
type Analyst struct {
	provider Provider
	answers  cache.Cache // nil disables caching
	limiter  *worker.Limiter
	cacheTTL time.Duration
}

// NewAnalyst creates an analyst around a provider. answers may be nil to
// disable answer caching; limiter may be nil to disable throttling.
func NewAnalyst(provider Provider, answers cache.Cache, limiter *worker.Limiter, cacheTTL time.Duration) *Analyst {
	return &Analyst{
		provider: provider,
		answers:  answers,
		limiter:  limiter,
		cacheTTL: cacheTTL,
	}
}

// Enabled reports whether a provider is configured
func (a *Analyst) Enabled() bool {
	return a != nil && a.provider != nil
}

// Ask answers a question about the dataset. When channelName is set, only
// that channel's slice of the dataset is handed to the model.
func (a *Analyst) Ask(ctx context.Context, question, channelName string, ds *model.Dataset) (*AnswerResponse, error) {
	if !a.Enabled() {
		return nil, fmt.Errorf("no LLM provider configured")
	}

	contextJSON, err := BuildContext(ds, channelName)
	if err != nil {
		return nil, fmt.Errorf("build context: %w", err)
	}

	key := cache.Key(fmt.Sprintf("answer|%s|%s|%s|%s", ds.ModelVersion(), ds.Period(), channelName, question))
	if a.answers != nil {
		if data, found := a.answers.Get(key); found {
			var cached AnswerResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx, a.provider.Name()); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	resp, err := a.provider.Answer(ctx, AnswerRequest{
		Question:    question,
		ContextJSON: contextJSON,
	})
	if err != nil {
		return nil, err
	}

	if a.answers != nil {
		if data, err := json.Marshal(resp); err == nil {
			_ = a.answers.Set(key, data, a.cacheTTL)
		}
	}

	return resp, nil
}

// BuildContext serializes the dataset slice the model is allowed to cite:
// metadata plus either one named channel or the full channel list.
func BuildContext(ds *model.Dataset, channelName string) (string, error) {
	payload := map[string]any{
		"model_version": ds.ModelVersion(),
		"period":        ds.Period(),
		"diagnostics":   ds.Diagnostics(),
	}

	if ch, ok := ds.Channel(channelName); ok {
		payload["channel"] = ch
	} else {
		payload["channel"] = ds.Channels()
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
