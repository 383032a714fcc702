package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7GeneratorOrdered(t *testing.T) {
	t.Parallel()

	g := UUIDv7Generator{}
	a, b := g.Next(), g.Next()
	_, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b) // v7 tokens sort by generation time
}

func TestFixedGeneratorReplaysThenCounts(t *testing.T) {
	t.Parallel()

	g := NewFixedGenerator("one", "two")
	assert.Equal(t, "one", g.Next())
	assert.Equal(t, "two", g.Next())
	assert.Equal(t, "fixed-3", g.Next())
	assert.Equal(t, "fixed-4", g.Next())
}
