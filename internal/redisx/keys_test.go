package redisx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "sess:abc", SessionKey("abc"))
	assert.Equal(t, "dedup:inventory:e-1", DedupKey("inventory", "e-1"))
}
