// Package metrics exposes population lifecycle counters for Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/udisondev/nightzombies/internal/model"
)

const namespace = "nightzombies"

// Batch directions.
const (
	DirectionSpawn   = "spawn"
	DirectionDespawn = "despawn"
)

// Batch results.
const (
	ResultCompleted = "completed"
	ResultCancelled = "cancelled"
)

// Population collects controller metrics on its own registry.
// All methods are safe on a nil receiver (metrics disabled).
type Population struct {
	registry *prometheus.Registry

	agents            prometheus.Gauge
	spawned           prometheus.Gauge
	days              prometheus.Gauge
	spawnedTotal      *prometheus.CounterVec
	despawnedTotal    prometheus.Counter
	respawnsTotal     prometheus.Counter
	hardKillsTotal    prometheus.Counter
	placementFailures prometheus.Counter
	corpsesTotal      prometheus.Counter
	batchesTotal      *prometheus.CounterVec
}

// NewPopulation creates and registers the collectors.
func NewPopulation() *Population {
	p := &Population{
		registry: prometheus.NewRegistry(),
		agents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "agents",
			Help:      "Night zombies currently tracked by the controller.",
		}),
		spawned: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "spawned",
			Help:      "1 while a population is out for the night.",
		}),
		days: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "days_since_last_spawn",
			Help:      "Day boundaries passed since the last completed spawn batch.",
		}),
		spawnedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spawned_total",
			Help:      "Agents materialized by spawn batches.",
		}, []string{"kind"}),
		despawnedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "despawned_total",
			Help:      "Agents removed by teardown.",
		}),
		respawnsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "respawns_total",
			Help:      "Deaths absorbed by respawn-in-place.",
		}),
		hardKillsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hard_kills_total",
			Help:      "Respawns refused by cooldown or placement failure.",
		}),
		placementFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "placement_failures_total",
			Help:      "Placement searches that returned the sentinel.",
		}),
		corpsesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "corpses_total",
			Help:      "Remains created for agents.",
		}),
		batchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Finished batches by direction and result.",
		}, []string{"direction", "result"}),
	}

	p.registry.MustRegister(
		p.agents,
		p.spawned,
		p.days,
		p.spawnedTotal,
		p.despawnedTotal,
		p.respawnsTotal,
		p.hardKillsTotal,
		p.placementFailures,
		p.corpsesTotal,
		p.batchesTotal,
	)
	return p
}

// Registry returns the registry holding the collectors.
func (p *Population) Registry() *prometheus.Registry {
	if p == nil {
		return nil
	}
	return p.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Population) Handler() http.Handler {
	if p == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// SetState publishes the controller snapshot.
func (p *Population) SetState(agents int, spawned bool, days int) {
	if p == nil {
		return
	}
	p.agents.Set(float64(agents))
	if spawned {
		p.spawned.Set(1)
	} else {
		p.spawned.Set(0)
	}
	p.days.Set(float64(days))
}

func (p *Population) AgentSpawned(kind model.AgentKind) {
	if p == nil {
		return
	}
	p.spawnedTotal.WithLabelValues(kind.String()).Inc()
}

func (p *Population) AgentDespawned() {
	if p == nil {
		return
	}
	p.despawnedTotal.Inc()
}

func (p *Population) Respawned() {
	if p == nil {
		return
	}
	p.respawnsTotal.Inc()
}

func (p *Population) HardKilled() {
	if p == nil {
		return
	}
	p.hardKillsTotal.Inc()
}

func (p *Population) PlacementFailed() {
	if p == nil {
		return
	}
	p.placementFailures.Inc()
}

func (p *Population) CorpseCreated() {
	if p == nil {
		return
	}
	p.corpsesTotal.Inc()
}

// BatchFinished counts a batch by direction (spawn/despawn) and result.
func (p *Population) BatchFinished(direction, result string) {
	if p == nil {
		return
	}
	p.batchesTotal.WithLabelValues(direction, result).Inc()
}
