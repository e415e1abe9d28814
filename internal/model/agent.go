package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AgentKind is the closed set of night zombie archetypes.
type AgentKind int32

const (
	KindMurderer AgentKind = iota + 1
	KindScarecrow
)

// AllKinds lists every archetype in spawn plan order.
var AllKinds = []AgentKind{KindMurderer, KindScarecrow}

// String returns the config/log name of the kind.
func (k AgentKind) String() string {
	switch k {
	case KindMurderer:
		return "murderer"
	case KindScarecrow:
		return "scarecrow"
	default:
		return fmt.Sprintf("AgentKind(%d)", int32(k))
	}
}

// Valid reports whether k is one of the known archetypes.
func (k AgentKind) Valid() bool {
	return k == KindMurderer || k == KindScarecrow
}

// ParseAgentKind parses a kind name (case-insensitive).
func ParseAgentKind(s string) (AgentKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "murderer":
		return KindMurderer, nil
	case "scarecrow":
		return KindScarecrow, nil
	default:
		return 0, fmt.Errorf("unknown agent kind %q", s)
	}
}

// Handle is an opaque reference to an entity materialized by the host world.
// Zero is never a valid handle.
type Handle uint32

// AgentRecord is the controller's bookkeeping for one materialized agent.
// It survives respawn-in-place; only teardown or a death outside the
// active window removes it.
type AgentRecord struct {
	Handle      Handle
	ID          uuid.UUID // stable across relocations
	Kind        AgentKind
	DisplayName string
	LastRespawn time.Time
	Alive       bool
	Seq         uint64 // creation order, used for stable teardown snapshots
}

// NewAgentRecord creates a live record for a freshly spawned agent.
func NewAgentRecord(handle Handle, kind AgentKind, displayName string, seq uint64, now time.Time) *AgentRecord {
	return &AgentRecord{
		Handle:      handle,
		ID:          uuid.New(),
		Kind:        kind,
		DisplayName: displayName,
		LastRespawn: now,
		Alive:       true,
		Seq:         seq,
	}
}

// RespawnedWithin reports whether the last respawn happened less than d before now.
func (r *AgentRecord) RespawnedWithin(now time.Time, d time.Duration) bool {
	if r.LastRespawn.IsZero() {
		return false
	}
	return now.Sub(r.LastRespawn) < d
}
