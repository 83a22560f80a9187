package cron

import (
	"context"
	"encoding/json"
	"fmt"

	"profilewizard/config"
	"profilewizard/models"
	"profilewizard/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NewsletterSubscriber enrolls a profile with the newsletter provider.
type NewsletterSubscriber interface {
	Subscribe(ctx context.Context, payload models.NewsletterPayload) error
}

// LogSubscriber records enrollments in the log. It stands in for a mailing
// list provider.
type LogSubscriber struct {
	Logger *zap.Logger
}

func (s LogSubscriber) Subscribe(_ context.Context, p models.NewsletterPayload) error {
	s.Logger.Info("newsletter enrollment",
		zap.String("profileId", p.ProfileID),
		zap.String("username", p.Username),
		zap.String("plan", p.Plan))
	return nil
}

// RedisOpt builds the asynq connection options for the queue database.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewMux registers the task handlers.
func NewMux(sub NewsletterSubscriber, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNewsletterSubscribe, handleNewsletterTask(sub, logger))
	return mux
}

// StartWorker runs the task server in the background and returns it so the
// caller can Shutdown on exit.
func StartWorker(sub NewsletterSubscriber, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	go func() {
		logger.Info("starting task worker")
		if err := srv.Run(NewMux(sub, logger)); err != nil {
			logger.Error("task worker stopped", zap.Error(err))
		}
	}()
	return srv
}

func handleNewsletterTask(sub NewsletterSubscriber, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.NewsletterPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid newsletter payload", zap.Error(err))
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}

		if err := sub.Subscribe(ctx, p); err != nil {
			logger.Warn("newsletter enrollment failed", zap.String("profileId", p.ProfileID), zap.Error(err))
			return err
		}
		return nil
	}
}
