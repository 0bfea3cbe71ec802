package model

import (
	"encoding/json"
	"strings"
)

// Channel is one media channel record from the model output.
// Beyond name/id it carries arbitrary numeric metric fields (roi, mroi,
// spend, contribution_pct, ...) and nested parameter blocks (hill, adstock),
// so it stays an untyped mapping with typed accessors on top.
type Channel map[string]any

// Name returns the channel's display name
func (c Channel) Name() string {
	s, _ := c["name"].(string)
	return s
}

// ID returns the channel's identifier
func (c Channel) ID() string {
	s, _ := c["id"].(string)
	return s
}

// Metric returns the named numeric field, if present
func (c Channel) Metric(key string) (float64, bool) {
	return toFloat(c[key])
}

// MetricOrZero returns the named numeric field, defaulting to 0 when absent
func (c Channel) MetricOrZero(key string) float64 {
	v, _ := c.Metric(key)
	return v
}

// Param returns a numeric field inside a nested parameter block,
// e.g. Param("hill", "half_sat") or Param("adstock", "decay")
func (c Channel) Param(block, key string) (float64, bool) {
	m, ok := c[block].(map[string]any)
	if !ok {
		return 0, false
	}
	return toFloat(m[key])
}

// Matches reports whether the channel's name or id equals s (case-insensitive)
func (c Channel) Matches(s string) bool {
	lower := strings.ToLower(s)
	return strings.ToLower(c.Name()) == lower || strings.ToLower(c.ID()) == lower
}

// Dataset is an immutable snapshot of the marketing-mix model output
// (model_output.json). The raw mapping is kept alongside the decoded
// channel list so validators can flatten the whole structure.
type Dataset struct {
	raw      map[string]any
	channels []Channel
}

// NewDataset wraps a decoded model-output mapping
func NewDataset(raw map[string]any) *Dataset {
	ds := &Dataset{raw: raw}

	if list, ok := raw["channels"].([]any); ok {
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				ds.channels = append(ds.channels, Channel(m))
			}
		}
	}

	return ds
}

// Raw returns the underlying mapping (treat as read-only)
func (d *Dataset) Raw() map[string]any {
	return d.raw
}

// Channels returns the channel records in dataset order
func (d *Dataset) Channels() []Channel {
	return d.channels
}

// ModelVersion returns the model_version metadata field
func (d *Dataset) ModelVersion() string {
	s, _ := d.raw["model_version"].(string)
	return s
}

// Period returns the period metadata field
func (d *Dataset) Period() string {
	s, _ := d.raw["period"].(string)
	return s
}

// Diagnostics returns the model diagnostics block (R², MAPE, ...)
func (d *Dataset) Diagnostics() map[string]any {
	m, _ := d.raw["diagnostics"].(map[string]any)
	return m
}

// Channel finds a channel by name or id (case-insensitive)
func (d *Dataset) Channel(nameOrID string) (Channel, bool) {
	if nameOrID == "" {
		return nil, false
	}
	for _, ch := range d.channels {
		if ch.Matches(nameOrID) {
			return ch, true
		}
	}
	return nil, false
}

// toFloat converts JSON-decoded numeric values to float64
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
