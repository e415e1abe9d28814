// Package combat decides whether a night zombie may engage a victim.
package combat

import (
	"sync/atomic"

	"github.com/udisondev/nightzombies/internal/config"
	"github.com/udisondev/nightzombies/internal/model"
)

// Decision is the outcome of a targeting query.
type Decision uint8

const (
	Allow Decision = iota
	Deny
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Policy is an immutable targeting rule set.
type Policy struct {
	ignore           map[string]struct{}
	attackSleepers   bool
	excludeHumanNPCs bool
}

// NewPolicy builds a policy from configuration.
func NewPolicy(cfg config.Combat) *Policy {
	p := &Policy{
		ignore:           make(map[string]struct{}, len(cfg.IgnoreList)),
		attackSleepers:   cfg.AttackSleepers,
		excludeHumanNPCs: cfg.ExcludeHumanNPCs,
	}
	for _, t := range cfg.IgnoreList {
		p.ignore[t] = struct{}{}
	}
	return p
}

// CanAttack decides whether an agent of the given kind may target victim. Pure.
func (p *Policy) CanAttack(kind model.AgentKind, victim model.Victim) Decision {
	if _, ignored := p.ignore[victim.Type]; ignored {
		return Deny
	}
	// non-player actors are left alone unless they are zombies of the attacker's own kind
	if p.excludeHumanNPCs && !victim.IsPlayer && !(victim.NightZombie && victim.Kind == kind) {
		return Deny
	}
	if victim.Sleeping && !p.attackSleepers {
		return Deny
	}
	return Allow
}

// Filter holds the current policy and allows swapping it on reload.
// Thread-safe: lock-free reads via atomic.Pointer.
type Filter struct {
	policy atomic.Pointer[Policy]
}

// NewFilter creates a filter with the initial policy.
func NewFilter(cfg config.Combat) *Filter {
	f := &Filter{}
	f.Update(cfg)
	return f
}

// Update replaces the active policy.
func (f *Filter) Update(cfg config.Combat) {
	f.policy.Store(NewPolicy(cfg))
}

// CanAttack delegates to the active policy.
func (f *Filter) CanAttack(kind model.AgentKind, victim model.Victim) Decision {
	return f.policy.Load().CanAttack(kind, victim)
}

// Allows adapts the filter to the host's boolean targeting hook.
func (f *Filter) Allows(kind model.AgentKind, victim model.Victim) bool {
	return f.CanAttack(kind, victim) == Allow
}
