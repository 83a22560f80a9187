package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"profilewizard/models"

	"github.com/hibiken/asynq"
)

const TypeNewsletterSubscribe = "newsletter:subscribe"

func NewNewsletterTask(payload models.NewsletterPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeNewsletterSubscribe, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Queue("default")}

	return task, opts, nil
}

// Enqueuer schedules background work triggered by a profile submission.
type Enqueuer interface {
	EnqueueNewsletter(ctx context.Context, payload models.NewsletterPayload) error
}

// AsynqEnqueuer enqueues tasks on a Redis-backed asynq queue.
type AsynqEnqueuer struct {
	client *asynq.Client
}

func NewAsynqEnqueuer(client *asynq.Client) *AsynqEnqueuer {
	return &AsynqEnqueuer{client: client}
}

func (e *AsynqEnqueuer) EnqueueNewsletter(ctx context.Context, payload models.NewsletterPayload) error {
	task, opts, err := NewNewsletterTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build newsletter task: %w", err)
	}
	if _, err := e.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue newsletter task: %w", err)
	}
	return nil
}

// NoopEnqueuer drops every task. Used when Redis is disabled.
type NoopEnqueuer struct{}

func (NoopEnqueuer) EnqueueNewsletter(context.Context, models.NewsletterPayload) error { return nil }
