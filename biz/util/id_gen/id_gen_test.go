package id_gen

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewId(t *testing.T) {
	g := NewIDGenerator(2)
	defer g.Stop()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := g.NewID()
		assert.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicated id %s", id)
		seen[id] = true
	}
}

func TestCompose(t *testing.T) {
	now := time.UnixMilli(36 * 36)
	id := compose(now, "0a00000112", 35)
	assert.True(t, strings.HasPrefix(id, "100"))
	assert.Equal(t, "1000a00000112z", id)
}

func TestStopTwice(t *testing.T) {
	g := NewIDGenerator(1)
	g.Stop()
	g.Stop()
}
