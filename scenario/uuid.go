package scenario

import "github.com/google/uuid"

// UUIDGenerator implements roi.IDGenerator with random UUIDs. Injected into
// the scenario factory at wiring time so the core stays free of process-wide
// state.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }
