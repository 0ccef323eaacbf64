package main

import (
	"testing"

	"github.com/ariefcatur/go-marketplace.git/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestRequireShared(t *testing.T) {
	assert.NoError(t, requireShared(config.Config{Storage: config.BackendPostgres}))
	assert.ErrorContains(t, requireShared(config.Config{Storage: config.BackendMemory}), `got "memory"`)
}
