package world

import (
	"math"
	"math/rand"
)

// Archetype is a kind of landmark with a fixed loot table.
type Archetype struct {
	Name string
	Loot map[ItemKind]int
}

var archetypes = []Archetype{
	{"Village", map[ItemKind]int{ItemBread: 6, ItemApple: 4, ItemEmerald: 2}},
	{"Desert Temple", map[ItemKind]int{ItemGoldIngot: 4, ItemDiamond: 1, ItemBone: 5, ItemEmerald: 1}},
	{"Jungle Temple", map[ItemKind]int{ItemArrow: 8, ItemGoldIngot: 2, ItemBone: 3}},
	{"Ocean Monument", map[ItemKind]int{ItemGoldIngot: 8}},
	{"Stronghold", map[ItemKind]int{ItemBook: 3, ItemIronIngot: 4, ItemBread: 2}},
	{"Woodland Mansion", map[ItemKind]int{ItemDiamond: 2, ItemGoldenApple: 1, ItemRedstone: 4}},
	{"Pillager Outpost", map[ItemKind]int{ItemArrow: 12, ItemString: 4}},
	{"Igloo", map[ItemKind]int{ItemGoldenApple: 1, ItemCoal: 3}},
	{"Witch Hut", map[ItemKind]int{ItemRedstone: 3, ItemGunpowder: 2}},
	{"Shipwreck", map[ItemKind]int{ItemMap: 1, ItemIronIngot: 3, ItemEmerald: 2}},
	{"Ocean Ruin", map[ItemKind]int{ItemCoal: 4, ItemEmerald: 1}},
	{"Buried Treasure", map[ItemKind]int{ItemDiamond: 1, ItemGoldIngot: 3, ItemIronIngot: 5}},
	{"Mineshaft", map[ItemKind]int{ItemCoal: 6, ItemIronIngot: 2, ItemRedstone: 2, ItemTorch: 8}},
	{"Dungeon", map[ItemKind]int{ItemBone: 6, ItemString: 3, ItemSaddle: 1}},
	{"Nether Fortress", map[ItemKind]int{ItemGoldIngot: 3, ItemDiamond: 1, ItemSaddle: 1}},
	{"Bastion Remnant", map[ItemKind]int{ItemGoldIngot: 10}},
	{"End City", map[ItemKind]int{ItemDiamond: 3, ItemIronIngot: 6}},
	{"Ruined Portal", map[ItemKind]int{ItemGoldIngot: 2, ItemGoldenApple: 1}},
	{"Ancient City", map[ItemKind]int{ItemBook: 2, ItemCompass: 1, ItemLapis: 4}},
	{"Trail Ruins", map[ItemKind]int{ItemEmerald: 1, ItemCoal: 2}},
	{"Trial Chambers", map[ItemKind]int{ItemArrow: 6, ItemDiamond: 1}},
	{"Desert Well", map[ItemKind]int{ItemSand: 8}},
	{"Fossil", map[ItemKind]int{ItemBone: 12}},
	{"Amethyst Geode", map[ItemKind]int{ItemLapis: 6}},
	{"Lighthouse", map[ItemKind]int{ItemTorch: 12, ItemGlass: 6}},
	{"Watchtower", map[ItemKind]int{ItemArrow: 10, ItemBread: 2}},
	{"Windmill", map[ItemKind]int{ItemBread: 8, ItemPlanks: 6}},
	{"Abandoned Camp", map[ItemKind]int{ItemCoal: 2, ItemApple: 3, ItemTorch: 4}},
	{"Sky Island", map[ItemKind]int{ItemGoldenApple: 2, ItemCompass: 1}},
	{"Trading Post", map[ItemKind]int{ItemEmerald: 5, ItemMap: 1}},
}

// Archetypes returns the landmark catalog.
func Archetypes() []Archetype { return archetypes }

// Structure is one placed landmark.
type Structure struct {
	Name    string           `json:"name"`
	Pos     Pos              `json:"pos"`
	Looted  bool             `json:"looted"`
	Loot    map[ItemKind]int `json:"loot"`
	Visited bool             `json:"visited"`
}

// ScatterStructures places count landmarks in a ring of [minR, maxR] blocks
// around the origin. It is deterministic in seed.
func ScatterStructures(g *Generator, count int, minR, maxR float64) []Structure {
	rng := rand.New(rand.NewSource(g.Seed ^ 0x5eed5))
	out := make([]Structure, 0, count)
	for i := 0; i < count; i++ {
		a := archetypes[rng.Intn(len(archetypes))]
		angle := rng.Float64() * 2 * math.Pi
		r := minR + rng.Float64()*(maxR-minR)
		x := int(math.Round(math.Cos(angle) * r))
		z := int(math.Round(math.Sin(angle) * r))
		loot := make(map[ItemKind]int, len(a.Loot))
		for k, v := range a.Loot {
			loot[k] = v
		}
		out = append(out, Structure{Name: a.Name, Pos: g.SpawnPoint(x, z), Loot: loot})
	}
	return out
}
