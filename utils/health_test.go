package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckHealthWithoutClients(t *testing.T) {
	status := CheckHealth(context.Background(), nil, nil)

	assert.False(t, status.Mongo)
	assert.False(t, status.Redis)
	assert.False(t, status.CheckedAt.IsZero())
	assert.Equal(t, status, GetHealthStatus())
}
