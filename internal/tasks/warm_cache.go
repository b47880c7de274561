package tasks

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mikestefanello/backlite"
)

// WarmCacheTask spell-checks a saved document in the background so that
// the per-line cache is hot before the editor opens it.
type WarmCacheTask struct {
	DocumentName string `json:"document_name"`
	Text         string `json:"text"`
	Language     string `json:"language"`
}

// Config returns the queue configuration for cache warming tasks.
func (t WarmCacheTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "warm_spell_cache",
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// DocumentChecker spell-checks document lines through the normal cache path.
type DocumentChecker interface {
	WarmCache(ctx context.Context, lines []string, language string) (int, error)
}

// WarmCacheProcessor creates a processor function for WarmCacheTask.
func WarmCacheProcessor(checker DocumentChecker) backlite.QueueProcessor[WarmCacheTask] {
	return func(ctx context.Context, task WarmCacheTask) error {
		if checker == nil {
			return fmt.Errorf("document checker not configured")
		}

		language := task.Language
		if language == "" {
			language = "en"
		}

		lines := strings.Split(task.Text, "\n")
		checked, err := checker.WarmCache(ctx, lines, language)
		if err != nil {
			return fmt.Errorf("warm cache for %s: %w", task.DocumentName, err)
		}

		log.Printf("[TASK] Warmed spell cache for %s (%d lines)", task.DocumentName, checked)
		return nil
	}
}

// NewWarmCacheQueue creates a backlite queue for cache warming tasks.
func NewWarmCacheQueue(checker DocumentChecker) backlite.Queue {
	return backlite.NewQueue(WarmCacheProcessor(checker))
}
