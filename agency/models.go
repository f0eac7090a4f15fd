package agency

import (
	"time"

	"caseflow/actor"
)

// Agency is an administrative branch office scoped to one network. Identity
// is compared by id only.
type Agency struct {
	ID        string
	Name      string
	Network   actor.Network
	CreatedAt time.Time
}
