// Package audit persists every question/answer/verification exchange as a
// JSON record on disk, so trust decisions can be reviewed after the fact.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mmxlabs/mixaudit/internal/model"
)

// Record is one audited exchange
type Record struct {
	ID         string        `json:"id"`
	Question   string        `json:"question"`
	Channel    string        `json:"channel,omitempty"`
	Answer     string        `json:"answer"`
	Model      string        `json:"model,omitempty"`
	TokensUsed int           `json:"tokens_used,omitempty"`
	Report     *model.Report `json:"report,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

// Log appends records to a directory, one timestamped JSON file per record
type Log struct {
	dir    string
	logger zerolog.Logger
}

// NewLog creates an audit log rooted at dir. The directory is created on
// first append, not here, so a disabled log costs nothing.
func NewLog(dir string, logger zerolog.Logger) *Log {
	return &Log{dir: dir, logger: logger}
}

// Dir returns the log directory
func (l *Log) Dir() string {
	return l.dir
}

// Append writes the record to disk and returns the file path.
// Missing ID and CreatedAt fields are filled in.
func (l *Log) Append(rec *Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("create audit dir: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal audit record: %w", err)
	}

	name := fmt.Sprintf("%s_%s.json", rec.CreatedAt.Format("20060102T150405"), shortID(rec.ID))
	path := filepath.Join(l.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write audit record: %w", err)
	}

	valid := rec.Report != nil && rec.Report.OverallValid
	l.logger.Info().
		Str("record_id", rec.ID).
		Str("path", path).
		Bool("overall_valid", valid).
		Msg("audit record written")

	return path, nil
}

// Read loads a previously written record
func Read(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read audit record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode audit record: %w", err)
	}
	return &rec, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
