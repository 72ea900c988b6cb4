package pet

import (
	"slices"

	"github.com/pthm-cable/nadagotchi/config"
)

// RoomState is the decor and access state of one room.
type RoomState struct {
	Wallpaper     string `json:"wallpaper"`
	Flooring      string `json:"flooring"`
	WallpaperItem string `json:"wallpaperItem,omitempty"`
	FlooringItem  string `json:"flooringItem,omitempty"`
	Unlocked      bool   `json:"unlocked"`
}

// PlacedItem is a piece of furniture set down in a room.
type PlacedItem struct {
	Item string  `json:"item"`
	Room string  `json:"room"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

func defaultHome(rooms []config.RoomConfig) map[string]*RoomState {
	home := make(map[string]*RoomState, len(rooms))
	for _, r := range rooms {
		home[r.Name] = &RoomState{Wallpaper: r.Wallpaper, Flooring: r.Flooring, Unlocked: r.Unlocked}
	}
	return home
}

// Room returns the state of a room.
func (p *Nadagotchi) Room(name string) (RoomState, bool) {
	r, ok := p.home[name]
	if !ok {
		return RoomState{}, false
	}
	return *r, true
}

// PlacedItems returns a copy of the furniture placed around the home.
func (p *Nadagotchi) PlacedItems() []PlacedItem {
	return slices.Clone(p.placed)
}

func (p *Nadagotchi) hasPlaced(item string) bool {
	return slices.ContainsFunc(p.placed, func(pi PlacedItem) bool { return pi.Item == item })
}

// UnlockRoom opens a configured room. Returns false if unknown or already open.
func (p *Nadagotchi) UnlockRoom(name string) bool {
	r, ok := p.home[name]
	if !ok || r.Unlocked {
		return false
	}
	r.Unlocked = true
	p.addJournal("The %s is open now.", name)
	p.emit(EventRoomUnlocked, name, 0)
	return true
}

// ReturnItemToInventory puts one item back in the inventory.
func (p *Nadagotchi) ReturnItemToInventory(item string) {
	if item == "" {
		return
	}
	p.inventory[item]++
}

// PlaceItem moves one held item into an unlocked room.
func (p *Nadagotchi) PlaceItem(item, room string, x, y float64) bool {
	r, ok := p.home[room]
	if !ok || !r.Unlocked {
		p.reject(item, "There is no room called %s for my %s.", room, item)
		return false
	}
	if !p.removeItem(item, 1) {
		p.reject(item, "I don't have a %s to place.", item)
		return false
	}
	p.placed = append(p.placed, PlacedItem{Item: item, Room: room, X: x, Y: y})
	p.addJournal("I put my %s in the %s.", item, room)
	return true
}

// PickUpItem takes a placed item back into the inventory.
func (p *Nadagotchi) PickUpItem(index int) bool {
	if index < 0 || index >= len(p.placed) {
		return false
	}
	item := p.placed[index].Item
	p.placed = slices.Delete(p.placed, index, index+1)
	p.ReturnItemToInventory(item)
	p.addJournal("I picked up my %s.", item)
	return true
}

// ApplyDecor applies a held wallpaper or flooring to a room. The decor item
// it replaces, if any, goes back to the inventory and is returned.
func (p *Nadagotchi) ApplyDecor(room, item string) (string, bool) {
	r, ok := p.home[room]
	if !ok || !r.Unlocked {
		p.reject(item, "I can't decorate %s.", room)
		return "", false
	}
	recipe, ok := p.cfg.Recipe(item)
	if !ok || (recipe.Category != "wallpaper" && recipe.Category != "flooring") {
		p.reject(item, "%s isn't decor.", item)
		return "", false
	}
	if !p.removeItem(item, 1) {
		p.reject(item, "I don't have any %s.", item)
		return "", false
	}

	var previous string
	if recipe.Category == "wallpaper" {
		previous = r.WallpaperItem
		r.Wallpaper, r.WallpaperItem = item, item
	} else {
		previous = r.FlooringItem
		r.Flooring, r.FlooringItem = item, item
	}
	p.ReturnItemToInventory(previous)
	p.addJournal("I put %s in the %s.", item, room)
	return previous, true
}
