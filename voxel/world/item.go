package world

import "fmt"

// ItemKind is a closed set of inventory items.
type ItemKind uint8

const (
	ItemNone ItemKind = iota
	ItemPickaxe
	ItemSword
	ItemAxe
	ItemShovel
	ItemDirt
	ItemStone
	ItemPlanks
	ItemGlass
	ItemSand
	ItemWood
	ItemTorch
	ItemBread
	ItemApple
	ItemGoldenApple
	ItemCoal
	ItemIronIngot
	ItemGoldIngot
	ItemDiamond
	ItemEmerald
	ItemArrow
	ItemBone
	ItemString
	ItemBook
	ItemMap
	ItemCompass
	ItemSaddle
	ItemRedstone
	ItemLapis
	ItemGunpowder

	itemKindCount
)

var itemNames = [itemKindCount]string{
	"none", "pickaxe", "sword", "axe", "shovel", "dirt", "stone", "planks", "glass", "sand", "wood",
	"torch", "bread", "apple", "golden_apple", "coal", "iron_ingot", "gold_ingot", "diamond", "emerald",
	"arrow", "bone", "string", "book", "map", "compass", "saddle", "redstone", "lapis", "gunpowder",
}

func (k ItemKind) String() string {
	if k < itemKindCount {
		return itemNames[k]
	}
	return fmt.Sprintf("item(%d)", uint8(k))
}

func (k ItemKind) MarshalText() ([]byte, error) {
	if k >= itemKindCount {
		return nil, fmt.Errorf("unknown item kind %d", uint8(k))
	}
	return []byte(itemNames[k]), nil
}

func (k *ItemKind) UnmarshalText(b []byte) error {
	v, ok := ParseItemKind(string(b))
	if !ok {
		return fmt.Errorf("unknown item %q", string(b))
	}
	*k = v
	return nil
}

func ParseItemKind(s string) (ItemKind, bool) {
	for i, n := range itemNames {
		if n == s {
			return ItemKind(i), true
		}
	}
	return ItemNone, false
}

// Short is the hotbar label.
func (k ItemKind) Short() string {
	s := k.String()
	if k == ItemNone {
		return ""
	}
	if len(s) > 3 {
		s = s[:3]
	}
	return s
}
