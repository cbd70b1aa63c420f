package persona

import (
	"fmt"

	"github.com/lorenzotomasdiez/debate-arena/internal/seed"
)

// Selection is the outcome of participant selection for one session:
// three core debaters plus one wildcard who enters at cross-fire.
type Selection struct {
	Core     []Persona
	Wildcard Persona
}

// SelectParticipants picks 3 core participants and 1 wildcard from the
// pool. Selection is deterministic per session id: the same id always
// yields the same four personas in the same roles.
func SelectParticipants(sessionID string) (*Selection, error) {
	shuffled := seed.Shuffle(Pool(), sessionID+":personas")
	if len(shuffled) < 4 {
		return nil, fmt.Errorf("persona: pool has %d personas, need at least 4", len(shuffled))
	}
	return &Selection{
		Core:     shuffled[:3],
		Wildcard: shuffled[3],
	}, nil
}
