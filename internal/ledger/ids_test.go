package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUIDv7GeneratorUnique(t *testing.T) {
	g := UUIDv7Generator{}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := g.Generate()
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestSequentialGenerator(t *testing.T) {
	g := NewSequentialGenerator("t")
	assert.Equal(t, "t-0001", g.Generate())
	assert.Equal(t, "t-0002", g.Generate())
}
