package world

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/udisondev/nightzombies/internal/model"
)

var (
	// ErrNoSuchAgent is returned when a handle no longer refers to a live entity.
	ErrNoSuchAgent = errors.New("no such agent")
	// ErrOutOfBounds is returned when a position lies outside the world.
	ErrOutOfBounds = errors.New("position out of world bounds")
)

// DeathCause classifies why an agent died.
type DeathCause int

const (
	DeathPlayer      DeathCause = iota + 1 // killed by a connected participant
	DeathEnvironment                       // fall, drowning, fire, other NPCs
	DeathDespawn                           // removed by the population teardown
	DeathAdmin                             // killed by an operator command
)

// String returns the log name of the cause.
func (c DeathCause) String() string {
	switch c {
	case DeathPlayer:
		return "player"
	case DeathEnvironment:
		return "environment"
	case DeathDespawn:
		return "despawn"
	case DeathAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Administrative reports whether the death was requested by the server itself.
func (c DeathCause) Administrative() bool {
	return c == DeathDespawn || c == DeathAdmin
}

// DeathOutcome is returned to the host from the death handler.
// Handled suppresses the host's default death processing.
type DeathOutcome struct {
	Handled bool
}

// DeathHandler is the handler the host calls when an agent dies.
type DeathHandler func(h model.Handle, cause DeathCause) DeathOutcome

// Bounds is the world's axis-aligned bounding rectangle.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Terrain answers spatial queries about the static world.
type Terrain interface {
	Bounds() Bounds
	Height(x, y float64) float64
	InSolid(loc model.Location) bool
	WaterDepth(loc model.Location) float64
}

// ParticipantSource lists currently connected participants.
type ParticipantSource interface {
	Participants() []model.Participant
}

// CorpseSpec describes remains to materialize.
type CorpseSpec struct {
	Location    model.Location
	DisplayName string
	AgentID     uuid.UUID
	Kind        model.AgentKind
	Inventory   *model.Inventory
}

// Host is the entity-level surface of the world simulation.
// Implementations must not call the DeathHandler synchronously from Destroy,
// Heal or Relocate.
type Host interface {
	ParticipantSource

	Spawn(kind model.AgentKind, loc model.Location) (model.Handle, error)
	Destroy(h model.Handle)
	Exists(h model.Handle) bool
	Heal(h model.Handle, health float64) error
	Relocate(h model.Handle, loc model.Location) error
	Position(h model.Handle) (model.Location, error)
	Inventory(h model.Handle) (*model.Inventory, error)
	CreateCorpse(spec CorpseSpec) (model.Handle, error)
	PlayEffect(participantID uint32, asset string) error
}

// CycleStore persists the days-since-last-spawn counter.
type CycleStore interface {
	LoadDaysSinceSpawn(ctx context.Context) (int, error)
	SaveDaysSinceSpawn(ctx context.Context, days int) error
}

// KitGranter applies a named loadout to an agent.
type KitGranter interface {
	GiveKit(h model.Handle, kit string) error
}

// Broadcaster delivers a chat line to every connected participant.
type Broadcaster interface {
	Broadcast(msg string)
}
