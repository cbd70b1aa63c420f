package debate

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDSource produces debate message ids. Implementations must be safe
// for concurrent use: parallel rounds mint ids from multiple goroutines.
type IDSource interface {
	NextID() string
}

// UUIDSource mints collision-resistant ids backed by random UUIDs.
type UUIDSource struct{}

func (UUIDSource) NextID() string {
	return "debate-" + uuid.NewString()
}

// CounterSource mints sequential ids. Useful for deterministic tests.
type CounterSource struct {
	n atomic.Int64
}

func (c *CounterSource) NextID() string {
	return fmt.Sprintf("debate-%d", c.n.Add(1))
}
