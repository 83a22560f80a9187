package cron

import (
	"context"
	"errors"
	"testing"

	"profilewizard/models"
	"profilewizard/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSubscriber struct {
	got []models.NewsletterPayload
	err error
}

func (f *fakeSubscriber) Subscribe(_ context.Context, p models.NewsletterPayload) error {
	f.got = append(f.got, p)
	return f.err
}

func TestHandleNewsletterTask(t *testing.T) {
	sub := &fakeSubscriber{}
	mux := NewMux(sub, zap.NewNop())

	task, _, err := tasks.NewNewsletterTask(models.NewsletterPayload{ProfileID: "p1", Username: "alice"})
	require.NoError(t, err)

	require.NoError(t, mux.ProcessTask(context.Background(), task))
	require.Len(t, sub.got, 1)
	assert.Equal(t, "alice", sub.got[0].Username)
}

func TestHandleNewsletterTask_BadPayloadSkipsRetry(t *testing.T) {
	sub := &fakeSubscriber{}
	mux := NewMux(sub, zap.NewNop())

	err := mux.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeNewsletterSubscribe, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, sub.got)
}

func TestHandleNewsletterTask_SubscriberError(t *testing.T) {
	sub := &fakeSubscriber{err: errors.New("provider down")}
	mux := NewMux(sub, zap.NewNop())

	task, _, err := tasks.NewNewsletterTask(models.NewsletterPayload{ProfileID: "p1"})
	require.NoError(t, err)
	assert.EqualError(t, mux.ProcessTask(context.Background(), task), "provider down")
}
