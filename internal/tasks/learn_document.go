package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// TextLearner updates a prediction model from observed text.
type TextLearner interface {
	Learn(text string)
}

// LearnDocumentTask feeds a saved document into the frequency prediction
// model so that future predictions reflect the user's own vocabulary.
type LearnDocumentTask struct {
	DocumentName string `json:"document_name"`
	Text         string `json:"text"`
}

// Config returns the queue configuration for learning tasks.
func (t LearnDocumentTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "learn_document",
		MaxAttempts: 2,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// LearnDocumentProcessor creates a processor function for LearnDocumentTask.
func LearnDocumentProcessor(learner TextLearner) backlite.QueueProcessor[LearnDocumentTask] {
	return func(ctx context.Context, task LearnDocumentTask) error {
		if learner == nil {
			return fmt.Errorf("text learner not configured")
		}

		learner.Learn(task.Text)
		log.Printf("[TASK] Learned prediction frequencies from %s (%d bytes)", task.DocumentName, len(task.Text))
		return nil
	}
}

// NewLearnDocumentQueue creates a backlite queue for learning tasks.
func NewLearnDocumentQueue(learner TextLearner) backlite.Queue {
	return backlite.NewQueue(LearnDocumentProcessor(learner))
}
