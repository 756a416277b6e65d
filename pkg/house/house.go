// Package house models the shared house: four rooms, each with a wall
// color and one slot per object type.
package house

import (
	"fmt"

	"github.com/mit2nil/decorum/pkg/catalog"
)

// DecorObject is a placed item. Objects are only constructed through
// NewObject so the style/color pairing always satisfies the rulebook
// bijection.
type DecorObject struct {
	Type  catalog.ObjectType `json:"type"`
	Style catalog.Style      `json:"style"`
	Color catalog.Color      `json:"color"`
}

// NewObject builds the unique valid object of the given type and style.
func NewObject(typ catalog.ObjectType, style catalog.Style) (DecorObject, error) {
	color, ok := catalog.ColorFor(typ, style)
	if !ok {
		return DecorObject{}, fmt.Errorf("no valid combination for %s %s", style, typ)
	}
	return DecorObject{Type: typ, Style: style, Color: color}, nil
}

func (o DecorObject) String() string {
	return fmt.Sprintf("%s %s %s", o.Style, o.Color, o.Type)
}

// Room is one of the four fixed rooms.
type Room struct {
	Name        string        `json:"name"`
	WallColor   catalog.Color `json:"wall_color"`
	Lamp        *DecorObject  `json:"lamp,omitempty"`
	WallHanging *DecorObject  `json:"wall_hanging,omitempty"`
	Curio       *DecorObject  `json:"curio,omitempty"`
}

// Slot returns the object in the typed slot, nil when empty.
func (r *Room) Slot(typ catalog.ObjectType) *DecorObject {
	switch typ {
	case catalog.Lamp:
		return r.Lamp
	case catalog.WallHanging:
		return r.WallHanging
	case catalog.Curio:
		return r.Curio
	}
	return nil
}

// SetSlot places obj in the typed slot; nil clears it.
func (r *Room) SetSlot(typ catalog.ObjectType, obj *DecorObject) {
	switch typ {
	case catalog.Lamp:
		r.Lamp = obj
	case catalog.WallHanging:
		r.WallHanging = obj
	case catalog.Curio:
		r.Curio = obj
	}
}

// SlotEmpty reports whether the typed slot is unoccupied.
func (r *Room) SlotEmpty(typ catalog.ObjectType) bool {
	return r.Slot(typ) == nil
}

// Objects returns the placed objects of the room, empty slots skipped.
func (r *Room) Objects() []DecorObject {
	var objs []DecorObject
	for _, typ := range catalog.ObjectTypes() {
		if o := r.Slot(typ); o != nil {
			objs = append(objs, *o)
		}
	}
	return objs
}

// House is the ordered sequence of the four rooms. It is owned by the
// running session and mutated only through the session's action layer.
type House struct {
	Rooms [catalog.RoomCount]Room `json:"rooms"`
}

// New returns a fresh house: all slots empty, default wall colors.
func New() *House {
	h := &House{}
	for i := range h.Rooms {
		h.Rooms[i] = Room{
			Name:      catalog.RoomName(i),
			WallColor: catalog.DefaultWallColor(i),
		}
	}
	return h
}

// Room returns the room at idx, nil when out of range.
func (h *House) Room(idx int) *Room {
	if idx < 0 || idx >= catalog.RoomCount {
		return nil
	}
	return &h.Rooms[idx]
}

// AllObjects returns every placed object across all rooms and slots.
func (h *House) AllObjects() []DecorObject {
	var objs []DecorObject
	for i := range h.Rooms {
		objs = append(objs, h.Rooms[i].Objects()...)
	}
	return objs
}

// CountByColor counts placed objects of the given color.
func (h *House) CountByColor(color catalog.Color) int {
	n := 0
	for _, o := range h.AllObjects() {
		if o.Color == color {
			n++
		}
	}
	return n
}

// CountByStyle counts placed objects of the given style.
func (h *House) CountByStyle(style catalog.Style) int {
	n := 0
	for _, o := range h.AllObjects() {
		if o.Style == style {
			n++
		}
	}
	return n
}

// RoomHasColor reports whether any slot of room idx holds an object of
// the given color.
func (h *House) RoomHasColor(idx int, color catalog.Color) bool {
	r := h.Room(idx)
	if r == nil {
		return false
	}
	for _, o := range r.Objects() {
		if o.Color == color {
			return true
		}
	}
	return false
}
