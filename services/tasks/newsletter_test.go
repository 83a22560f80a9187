package tasks

import (
	"context"
	"encoding/json"
	"testing"

	"profilewizard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNewsletterTask(t *testing.T) {
	payload := models.NewsletterPayload{ProfileID: "p1", Username: "alice", Plan: "Pro"}

	task, opts, err := NewNewsletterTask(payload)
	require.NoError(t, err)
	assert.Equal(t, TypeNewsletterSubscribe, task.Type())
	assert.NotEmpty(t, opts)

	var got models.NewsletterPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &got))
	assert.Equal(t, payload, got)
}

func TestNoopEnqueuer(t *testing.T) {
	assert.NoError(t, NoopEnqueuer{}.EnqueueNewsletter(context.Background(), models.NewsletterPayload{}))
}
