package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mmxlabs/mixaudit/internal/cache"
	"github.com/mmxlabs/mixaudit/internal/model"
)

// Loader reads model-output snapshots from disk. Decoded snapshots are kept
// in a memory cache so repeated CLI and server calls do not re-read and
// re-parse the file on every question.
type Loader struct {
	memory cache.Cache
	ttl    time.Duration
}

// NewLoader creates a loader with the given snapshot cache TTL
func NewLoader(ttl time.Duration) *Loader {
	return &Loader{
		memory: cache.NewMemoryCache(ttl, 10*time.Minute),
		ttl:    ttl,
	}
}

// Load reads and decodes the model output at path. The returned dataset is
// a snapshot: later file changes are only picked up after the cache entry
// expires.
func (l *Loader) Load(path string) (*model.Dataset, error) {
	key := cache.Key(path)

	if data, found := l.memory.Get(key); found {
		return decode(data)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model output: %w", err)
	}

	ds, err := decode(data)
	if err != nil {
		return nil, err
	}

	_ = l.memory.Set(key, data, l.ttl)

	return ds, nil
}

// Invalidate drops the cached snapshot for path (e.g. after a model re-run)
func (l *Loader) Invalidate(path string) {
	_ = l.memory.Delete(cache.Key(path))
}

func decode(data []byte) (*model.Dataset, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}

	ds := model.NewDataset(raw)
	if len(ds.Channels()) == 0 {
		return nil, fmt.Errorf("model output has no channels")
	}

	return ds, nil
}
