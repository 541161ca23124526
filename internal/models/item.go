package models

// ItemType partitions the cosmetics catalog; each type maps to one equip slot.
type ItemType string

const (
	ItemBorder     ItemType = "border"
	ItemBackground ItemType = "background"
	ItemHands      ItemType = "hands"
)

// Item is one cosmetic in the shop catalog.
type Item struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Price   int      `json:"price"`
	ImageID string   `json:"imageId"`
	Color   string   `json:"color"`
	Type    ItemType `json:"type"`
}
