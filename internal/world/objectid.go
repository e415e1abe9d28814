package world

import (
	"sync/atomic"

	"github.com/udisondev/nightzombies/internal/model"
)

// ObjectIDGenerator generates unique handles for all simulated entities.
//
// ID ranges (convention):
//
//	0x00000000 - 0x0FFFFFFF: Reserved (0 = invalid handle)
//	0x10000000 - 0x1FFFFFFF: Participants
//	0x20000000 - 0x2FFFFFFF: Agents
//	0x30000000 - 0x3FFFFFFF: Corpses
type ObjectIDGenerator struct {
	nextParticipantID atomic.Uint32
	nextAgentID       atomic.Uint32
	nextCorpseID      atomic.Uint32
}

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextParticipantID.Store(0x10000000)
	gen.nextAgentID.Store(0x20000000)
	gen.nextCorpseID.Store(0x30000000)
	return gen
}

// NextParticipantID generates next unique participant ID.
func (g *ObjectIDGenerator) NextParticipantID() uint32 {
	return g.nextParticipantID.Add(1)
}

// NextAgentID generates next unique agent handle.
func (g *ObjectIDGenerator) NextAgentID() model.Handle {
	return model.Handle(g.nextAgentID.Add(1))
}

// NextCorpseID generates next unique corpse handle.
func (g *ObjectIDGenerator) NextCorpseID() model.Handle {
	return model.Handle(g.nextCorpseID.Add(1))
}

// IsAgentHandle reports whether h lies in the agent range.
func IsAgentHandle(h model.Handle) bool {
	return h >= 0x20000000 && h < 0x30000000
}
