package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// BatchTokenGenerator issues the ids stamped on UpdateSummary batches.
type BatchTokenGenerator interface {
	Next() string
}

// UUIDv7Generator issues time-ordered UUIDs, so batch ids sort in
// generation order.
type UUIDv7Generator struct{}

func (UUIDv7Generator) Next() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator replays a predetermined token list, for deterministic
// tests. Once the list is exhausted it falls back to counted tokens.
type FixedGenerator struct {
	mu     sync.Mutex
	tokens []string
	next   int
}

// NewFixedGenerator creates a generator over the given tokens.
func NewFixedGenerator(tokens ...string) *FixedGenerator {
	return &FixedGenerator{tokens: tokens}
}

func (g *FixedGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.next < len(g.tokens) {
		t := g.tokens[g.next]
		g.next++
		return t
	}
	g.next++
	return fmt.Sprintf("fixed-%d", g.next)
}
