package utils

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosthogClientWrapper_DisabledIsNoop(t *testing.T) {
	w := InitializePosthogClient("", slog.Default())
	assert.False(t, w.IsInitialized())
	assert.NotPanics(t, func() {
		w.Enqueue("user-1", EventTransactionCreated, map[string]any{"amount": "10.00"})
		w.Close()
	})

	var nilWrapper *PosthogClientWrapper
	assert.False(t, nilWrapper.IsInitialized())
	assert.NotPanics(t, func() { nilWrapper.Enqueue("x", EventTransactionCreated, nil) })
}
