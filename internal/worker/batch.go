package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mmxlabs/mixaudit/internal/model"
)

// Reviewer defines the interface for auditing a single question
type Reviewer interface {
	Review(ctx context.Context, question string) (*model.Report, error)
}

// ReviewJob represents a single-question audit job
type ReviewJob struct {
	Question string
	Reviewer Reviewer
}

// Execute executes the review job
func (j *ReviewJob) Execute(ctx context.Context) Result {
	report, err := j.Reviewer.Review(ctx, j.Question)
	if err != nil {
		return &ReviewResult{
			Question: j.Question,
			Report:   nil,
			Error:    err,
		}
	}
	return &ReviewResult{
		Question: j.Question,
		Report:   report,
		Error:    nil,
	}
}

// ReviewResult represents the result of a review job
type ReviewResult struct {
	Question string
	Report   *model.Report
	Error    error
}

// GetError returns the error from the review result
func (r *ReviewResult) GetError() error {
	return r.Error
}

// BatchProcessor audits multiple questions concurrently
type BatchProcessor struct {
	reviewer    Reviewer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(reviewer Reviewer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		reviewer:    reviewer,
		concurrency: concurrency,
	}
}

// ProcessQuestions audits multiple questions concurrently
func (b *BatchProcessor) ProcessQuestions(ctx context.Context, questions []string) []*ReviewResult {
	if len(questions) == 0 {
		return []*ReviewResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, question := range questions {
		job := &ReviewJob{
			Question: question,
			Reviewer: b.reviewer,
		}
		pool.Submit(job)
	}

	results := pool.Wait()

	reviewResults := make([]*ReviewResult, len(results))
	for i, result := range results {
		reviewResults[i] = result.(*ReviewResult)
	}

	return reviewResults
}

// ProcessFile reads questions from a file and audits them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*ReviewResult, error) {
	questions, err := ReadQuestionsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}

	return b.ProcessQuestions(ctx, questions), nil
}

// ReadQuestionsFromFile reads questions from a file (one per line)
func ReadQuestionsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var questions []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Deduplicate questions
		if !seen[line] {
			seen[line] = true
			questions = append(questions, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return questions, nil
}
