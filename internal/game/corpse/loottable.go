package corpse

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/nightzombies/internal/model"
)

//go:embed loot.schema.json
var lootSchemaJSON string

var lootSchema = jsonschema.MustCompileString("loot.schema.json", lootSchemaJSON)

// LootSlot is one possible item in a corpse's main container.
type LootSlot struct {
	Item   string  `yaml:"item"`
	Chance float64 `yaml:"chance"` // percent, 0-100
	Min    int     `yaml:"min"`
	Max    int     `yaml:"max"`
}

// LootTables maps agent kind to its loot slots.
type LootTables map[model.AgentKind][]LootSlot

// DefaultLootTables returns the built-in tables.
func DefaultLootTables() LootTables {
	return LootTables{
		model.KindMurderer: {
			{Item: "scrap", Chance: 60, Min: 5, Max: 25},
			{Item: "bandage", Chance: 40, Min: 1, Max: 3},
			{Item: "cloth", Chance: 50, Min: 10, Max: 40},
			{Item: "pistol_ammo", Chance: 15, Min: 4, Max: 12},
		},
		model.KindScarecrow: {
			{Item: "scrap", Chance: 70, Min: 10, Max: 35},
			{Item: "pumpkin", Chance: 80, Min: 1, Max: 4},
			{Item: "lowgrade_fuel", Chance: 35, Min: 5, Max: 20},
			{Item: "medical_syringe", Chance: 10, Min: 1, Max: 1},
		},
	}
}

// ParseLootTables decodes and validates a YAML loot file.
func ParseLootTables(data []byte) (LootTables, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing loot tables: %w", err)
	}
	if doc == nil {
		return nil, errors.New("parsing loot tables: empty document")
	}

	// schema validation works on JSON values
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("converting loot tables: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("converting loot tables: %w", err)
	}
	if err := lootSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("validating loot tables: %w", err)
	}

	var byName map[string][]LootSlot
	if err := yaml.Unmarshal(data, &byName); err != nil {
		return nil, fmt.Errorf("decoding loot tables: %w", err)
	}

	tables := make(LootTables, len(byName))
	for name, slots := range byName {
		kind, err := model.ParseAgentKind(name)
		if err != nil {
			return nil, fmt.Errorf("loot tables: %w", err)
		}
		tables[kind] = slots
	}
	return tables, nil
}

// LoadLootTables reads loot tables from path.
// Missing or invalid file → built-in defaults (warning logged, error returned for invalid).
func LoadLootTables(path string) (LootTables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("loot tables not found, using defaults", "path", path)
			return DefaultLootTables(), nil
		}
		return DefaultLootTables(), fmt.Errorf("reading loot tables %s: %w", path, err)
	}

	tables, err := ParseLootTables(data)
	if err != nil {
		slog.Warn("invalid loot tables, using defaults", "path", path, "error", err)
		return DefaultLootTables(), err
	}
	return tables, nil
}

// Roll rolls every slot independently and returns the stacks that dropped.
func Roll(slots []LootSlot, rng *rand.Rand) []model.ItemStack {
	var out []model.ItemStack
	for _, slot := range slots {
		if slot.Chance <= 0 {
			continue
		}
		if slot.Chance < 100 && rng.Float64()*100.0 >= slot.Chance {
			continue
		}

		minCount := slot.Min
		maxCount := slot.Max
		if minCount <= 0 {
			minCount = 1
		}
		if maxCount < minCount {
			maxCount = minCount
		}

		count := minCount
		if maxCount > minCount {
			count = rng.IntN(maxCount-minCount+1) + minCount
		}

		out = append(out, model.ItemStack{ItemID: slot.Item, Amount: count})
	}
	return out
}
