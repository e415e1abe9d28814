// Package broadcast delivers server-wide announcements.
package broadcast

import (
	"log/slog"

	"github.com/udisondev/nightzombies/internal/world"
)

// Log writes announcements to the structured log.
type Log struct{}

func (Log) Broadcast(msg string) {
	slog.Info("broadcast", "message", msg)
}

// Multi fans an announcement out to several sinks.
type Multi []world.Broadcaster

func (m Multi) Broadcast(msg string) {
	for _, b := range m {
		b.Broadcast(msg)
	}
}
