package config

import (
	"fmt"
	"math"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/nightzombies/internal/gametime"
	"github.com/udisondev/nightzombies/internal/model"
)

// Kind holds the per-archetype settings.
type Kind struct {
	Population  int     `yaml:"population"`
	Health      float64 `yaml:"health"`
	DisplayName string  `yaml:"display_name"`
	Kit         string  `yaml:"kit"` // optional loadout applied by the kit service
}

// Schedule controls when a night population may appear.
type Schedule struct {
	SpawnTime            float64 `yaml:"spawn_time"`   // hour, [0,24)
	DestroyTime          float64 `yaml:"destroy_time"` // hour, [0,24)
	ChancePerCycle       float64 `yaml:"chance"`       // percent, 0-100
	MinDaysBetweenSpawns int     `yaml:"min_days_between_spawns"`
}

// Window returns the schedule as a time-of-day window.
func (s Schedule) Window() gametime.Schedule {
	return gametime.Schedule{SpawnTime: s.SpawnTime, DestroyTime: s.DestroyTime}
}

// Behaviour holds the death and teardown policy toggles.
type Behaviour struct {
	CorpseOnTeardown   bool          `yaml:"corpse_on_teardown"`
	CorpseOnPlayerKill bool          `yaml:"corpse_on_player_kill"`
	RespawnInPlace     bool          `yaml:"respawn_in_place"`
	RespawnCooldown    time.Duration `yaml:"respawn_cooldown"`
}

// Placement configures spawn point search.
type Placement struct {
	NearPlayers    bool    `yaml:"near_players"`
	MinPlayers     int     `yaml:"min_players"`
	MinDistance    float64 `yaml:"min_distance"`
	MaxDistance    float64 `yaml:"max_distance"`
	AnchorAttempts int     `yaml:"anchor_attempts"`
	WorldAttempts  int     `yaml:"world_attempts"`
	MaxWaterDepth  float64 `yaml:"max_water_depth"`
}

// Combat configures the targeting policy.
type Combat struct {
	IgnoreList       []string `yaml:"ignore_list"`
	AttackSleepers   bool     `yaml:"attack_sleepers"`
	ExcludeHumanNPCs bool     `yaml:"exclude_human_npcs"`
}

// Broadcast configures chat announcements after a spawn batch.
type Broadcast struct {
	Enabled     bool   `yaml:"enabled"`
	Separate    bool   `yaml:"separate"` // per-kind counts instead of a total
	PlaySound   bool   `yaml:"play_sound"`
	SoundEffect string `yaml:"sound_effect"`
}

// Batch configures the spawn/despawn throttling.
type Batch struct {
	SpawnStepDelay   time.Duration `yaml:"spawn_step_delay"`
	SlowDestroy      bool          `yaml:"slow_destroy"`
	DespawnStepDelay time.Duration `yaml:"despawn_step_delay"`
}

// Simulation configures the bundled reference world.
type Simulation struct {
	Seed           int64         `yaml:"seed"`
	WorldSize      float64       `yaml:"world_size"`
	SeaLevel       float64       `yaml:"sea_level"`
	Participants   int           `yaml:"participants"`
	StartHour      float64       `yaml:"start_hour"`
	TickInterval   time.Duration `yaml:"tick_interval"`
	MinutesPerTick int           `yaml:"minutes_per_tick"`
}

// NightZombies holds all configuration for the night population daemon.
type NightZombies struct {
	LogLevel       string     `yaml:"log_level"`
	HTTPAddress    string     `yaml:"http_address"` // /metrics and /chat; empty disables
	LootTablesPath string     `yaml:"loot_tables_path"`
	Murderer       Kind       `yaml:"murderer"`
	Scarecrow      Kind       `yaml:"scarecrow"`
	Schedule       Schedule   `yaml:"schedule"`
	Behaviour      Behaviour  `yaml:"behaviour"`
	Placement      Placement  `yaml:"placement"`
	Combat         Combat     `yaml:"combat"`
	Broadcast      Broadcast  `yaml:"broadcast"`
	Batch          Batch      `yaml:"batch"`
	Storage        Storage    `yaml:"storage"`
	Simulation     Simulation `yaml:"simulation"`
}

// DefaultNightZombies returns NightZombies config with sensible defaults.
func DefaultNightZombies() NightZombies {
	return NightZombies{
		LogLevel:       "info",
		HTTPAddress:    "127.0.0.1:9464",
		LootTablesPath: "config/loot.yaml",
		Murderer: Kind{
			Population:  50,
			Health:      100,
			DisplayName: "Murderer",
		},
		Scarecrow: Kind{
			Population:  50,
			Health:      200,
			DisplayName: "Scarecrow",
		},
		Schedule: Schedule{
			SpawnTime:            19.8,
			DestroyTime:          7.3,
			ChancePerCycle:       100,
			MinDaysBetweenSpawns: 0,
		},
		Behaviour: Behaviour{
			CorpseOnTeardown:   true,
			CorpseOnPlayerKill: true,
			RespawnInPlace:     true,
			RespawnCooldown:    500 * time.Millisecond,
		},
		Placement: Placement{
			NearPlayers:    false,
			MinPlayers:     1,
			MinDistance:    40,
			MaxDistance:    120,
			AnchorAttempts: 6,
			WorldAttempts:  4,
			MaxWaterDepth:  0.5,
		},
		Combat: Combat{
			IgnoreList:       []string{"scientist", "bandit_guard"},
			AttackSleepers:   false,
			ExcludeHumanNPCs: true,
		},
		Broadcast: Broadcast{
			Enabled:     false,
			Separate:    false,
			PlaySound:   false,
			SoundEffect: "assets/prefabs/misc/halloween/spookyspeaker/sound/spookysounds.asset",
		},
		Batch: Batch{
			SpawnStepDelay:   200 * time.Millisecond,
			SlowDestroy:      true,
			DespawnStepDelay: 150 * time.Millisecond,
		},
		Storage: DefaultStorage(),
		Simulation: Simulation{
			Seed:           0,
			WorldSize:      4000,
			SeaLevel:       0.32,
			Participants:   8,
			StartHour:      18,
			TickInterval:   time.Second,
			MinutesPerTick: 2,
		},
	}
}

// Kind returns the settings of the given archetype.
func (c NightZombies) Kind(k model.AgentKind) Kind {
	switch k {
	case model.KindMurderer:
		return c.Murderer
	case model.KindScarecrow:
		return c.Scarecrow
	default:
		return Kind{}
	}
}

// PopulationTarget returns the total number of agents a spawn batch creates.
func (c NightZombies) PopulationTarget() int {
	total := 0
	for _, k := range model.AllKinds {
		total += c.Kind(k).Population
	}
	return total
}

// DespawnDelay returns the per-removal throttle, zero when slow destroy is off.
func (c NightZombies) DespawnDelay() time.Duration {
	if !c.Batch.SlowDestroy {
		return 0
	}
	return c.Batch.DespawnStepDelay
}

// Validate clamps out-of-range values to safe defaults. Every correction is
// returned as an error wrapping ErrInvalid; none of them is fatal.
func (c *NightZombies) Validate() []error {
	def := DefaultNightZombies()
	var problems []error
	warn := func(field string, got, used any) {
		problems = append(problems, fmt.Errorf("%w: %s = %v, using %v", ErrInvalid, field, got, used))
	}

	for _, k := range model.AllKinds {
		kc := c.kindRef(k)
		dk := def.Kind(k)
		name := k.String()
		if kc.Population < 0 {
			warn(name+".population", kc.Population, 0)
			kc.Population = 0
		}
		if kc.Health <= 0 || math.IsNaN(kc.Health) || math.IsInf(kc.Health, 0) {
			warn(name+".health", kc.Health, dk.Health)
			kc.Health = dk.Health
		}
		if strings.TrimSpace(kc.DisplayName) == "" {
			kc.DisplayName = dk.DisplayName
		}
	}

	if !gametime.ValidHour(c.Schedule.SpawnTime) {
		warn("schedule.spawn_time", c.Schedule.SpawnTime, def.Schedule.SpawnTime)
		c.Schedule.SpawnTime = def.Schedule.SpawnTime
	}
	if !gametime.ValidHour(c.Schedule.DestroyTime) {
		warn("schedule.destroy_time", c.Schedule.DestroyTime, def.Schedule.DestroyTime)
		c.Schedule.DestroyTime = def.Schedule.DestroyTime
	}
	switch {
	case math.IsNaN(c.Schedule.ChancePerCycle):
		warn("schedule.chance", c.Schedule.ChancePerCycle, def.Schedule.ChancePerCycle)
		c.Schedule.ChancePerCycle = def.Schedule.ChancePerCycle
	case c.Schedule.ChancePerCycle < 0:
		warn("schedule.chance", c.Schedule.ChancePerCycle, 0)
		c.Schedule.ChancePerCycle = 0
	case c.Schedule.ChancePerCycle > 100:
		warn("schedule.chance", c.Schedule.ChancePerCycle, 100)
		c.Schedule.ChancePerCycle = 100
	}
	if c.Schedule.MinDaysBetweenSpawns < 0 {
		warn("schedule.min_days_between_spawns", c.Schedule.MinDaysBetweenSpawns, 0)
		c.Schedule.MinDaysBetweenSpawns = 0
	}

	if c.Behaviour.RespawnCooldown < 0 {
		warn("behaviour.respawn_cooldown", c.Behaviour.RespawnCooldown, def.Behaviour.RespawnCooldown)
		c.Behaviour.RespawnCooldown = def.Behaviour.RespawnCooldown
	}

	p := &c.Placement
	if p.MinPlayers < 1 {
		warn("placement.min_players", p.MinPlayers, def.Placement.MinPlayers)
		p.MinPlayers = def.Placement.MinPlayers
	}
	if p.MinDistance < 0 || p.MaxDistance <= 0 || p.MinDistance > p.MaxDistance {
		warn("placement.min_distance/max_distance",
			fmt.Sprintf("%v/%v", p.MinDistance, p.MaxDistance),
			fmt.Sprintf("%v/%v", def.Placement.MinDistance, def.Placement.MaxDistance))
		p.MinDistance = def.Placement.MinDistance
		p.MaxDistance = def.Placement.MaxDistance
	}
	if p.AnchorAttempts < 1 {
		warn("placement.anchor_attempts", p.AnchorAttempts, def.Placement.AnchorAttempts)
		p.AnchorAttempts = def.Placement.AnchorAttempts
	}
	if p.WorldAttempts < 1 {
		warn("placement.world_attempts", p.WorldAttempts, def.Placement.WorldAttempts)
		p.WorldAttempts = def.Placement.WorldAttempts
	}
	if p.MaxWaterDepth < 0 {
		warn("placement.max_water_depth", p.MaxWaterDepth, def.Placement.MaxWaterDepth)
		p.MaxWaterDepth = def.Placement.MaxWaterDepth
	}

	if c.Batch.SpawnStepDelay < 0 {
		warn("batch.spawn_step_delay", c.Batch.SpawnStepDelay, def.Batch.SpawnStepDelay)
		c.Batch.SpawnStepDelay = def.Batch.SpawnStepDelay
	}
	if c.Batch.DespawnStepDelay < 0 {
		warn("batch.despawn_step_delay", c.Batch.DespawnStepDelay, def.Batch.DespawnStepDelay)
		c.Batch.DespawnStepDelay = def.Batch.DespawnStepDelay
	}

	if !slices.Contains([]string{DriverSQLite, DriverPostgres}, c.Storage.Driver) {
		warn("storage.driver", c.Storage.Driver, DriverSQLite)
		c.Storage.Driver = DriverSQLite
	}
	if c.Storage.Driver == DriverSQLite && c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = def.Storage.SQLitePath
	}

	s := &c.Simulation
	if s.WorldSize <= 0 {
		warn("simulation.world_size", s.WorldSize, def.Simulation.WorldSize)
		s.WorldSize = def.Simulation.WorldSize
	}
	if !gametime.ValidHour(s.StartHour) {
		warn("simulation.start_hour", s.StartHour, def.Simulation.StartHour)
		s.StartHour = def.Simulation.StartHour
	}
	if s.TickInterval <= 0 {
		warn("simulation.tick_interval", s.TickInterval, def.Simulation.TickInterval)
		s.TickInterval = def.Simulation.TickInterval
	}
	if s.MinutesPerTick < 1 {
		warn("simulation.minutes_per_tick", s.MinutesPerTick, def.Simulation.MinutesPerTick)
		s.MinutesPerTick = def.Simulation.MinutesPerTick
	}
	if s.Participants < 0 {
		warn("simulation.participants", s.Participants, 0)
		s.Participants = 0
	}

	return problems
}

func (c *NightZombies) kindRef(k model.AgentKind) *Kind {
	if k == model.KindScarecrow {
		return &c.Scarecrow
	}
	return &c.Murderer
}

// LoadNightZombies loads config from a YAML file.
// If the file doesn't exist, returns defaults. If the file is malformed,
// returns defaults together with the parse error so the caller can warn.
func LoadNightZombies(path string) (NightZombies, error) {
	cfg := DefaultNightZombies()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	parsed := cfg
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return parsed, nil
}
