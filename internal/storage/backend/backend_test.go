package backend

import (
	"context"
	"testing"
	"time"

	"github.com/ariefcatur/go-marketplace.git/internal/config"
	"github.com/ariefcatur/go-marketplace.git/internal/session"
	"github.com/ariefcatur/go-marketplace.git/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemory(t *testing.T) {
	cfg := config.Config{Storage: config.BackendMemory, Sessions: config.BackendMemory, SessionPruneInterval: time.Hour}
	st, cleanup, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, &memory.Store{}, st)
	assert.IsType(t, &session.MemoryStore{}, st.SessionStore())
}

func TestOpenRejectsUnknownBackends(t *testing.T) {
	_, _, err := Open(context.Background(), config.Config{Storage: "sqlite", Sessions: config.BackendMemory}, nil)
	assert.ErrorContains(t, err, `unknown storage backend "sqlite"`)

	_, _, err = Open(context.Background(), config.Config{Storage: config.BackendMemory, Sessions: "file"}, nil)
	assert.ErrorContains(t, err, `unknown session backend "file"`)
}
