package world

import "github.com/udisondev/nightzombies/internal/model"

// Container sizes of a spawned agent.
const (
	wearSlots = 7
	beltSlots = 6
	mainSlots = 24
)

// kits are the named loadouts known to the reference kit service.
var kits = map[string]func(inv *model.Inventory){
	"murderer_basic": func(inv *model.Inventory) {
		inv.Belt.Clear()
		inv.Belt.Add(model.ItemStack{ItemID: "machete", Amount: 1})
		inv.Main.Add(model.ItemStack{ItemID: "bandage", Amount: 2})
	},
	"scarecrow_basic": func(inv *model.Inventory) {
		inv.Belt.Clear()
		inv.Belt.Add(model.ItemStack{ItemID: "pitchfork", Amount: 1})
		inv.Main.Add(model.ItemStack{ItemID: "pumpkin", Amount: 3})
	},
}

// defaultLoadout returns the items a freshly spawned agent carries.
func defaultLoadout(kind model.AgentKind) *model.Inventory {
	inv := model.NewInventory(wearSlots, beltSlots, mainSlots)
	switch kind {
	case model.KindScarecrow:
		inv.Wear.Add(model.ItemStack{ItemID: "scarecrow_head", Amount: 1, Cosmetic: true})
		inv.Wear.Add(model.ItemStack{ItemID: "burlap_shirt", Amount: 1})
		inv.Belt.Add(model.ItemStack{ItemID: "chainsaw", Amount: 1})
	default:
		inv.Wear.Add(model.ItemStack{ItemID: "murderer_mask", Amount: 1, Cosmetic: true})
		inv.Wear.Add(model.ItemStack{ItemID: "burlap_trousers", Amount: 1})
		inv.Belt.Add(model.ItemStack{ItemID: "machete", Amount: 1})
	}
	return inv
}
