// Package condition implements the win-condition subsystem: the condition
// sum type, its evaluator against a house, the text renderer, the
// free-text parser, and the random dealer. The Kind enumeration is the
// single source of truth for all of them; a new kind must be added to
// Evaluate, Parse and Render together.
package condition

import (
	"fmt"

	"github.com/mit2nil/decorum/pkg/catalog"
)

// Kind discriminates the condition variant.
type Kind string

const (
	KindMinObjectsOfColor Kind = "min_objects_of_color"
	KindMinObjectsOfStyle Kind = "min_objects_of_style"
	KindNoObjectsOfColor  Kind = "no_objects_of_color"
	KindRoomHasColor      Kind = "room_has_color"
	KindRoomWallColor     Kind = "room_wall_color"
	KindRoomHasObjectType Kind = "room_has_object_type"
	KindEveryRoomHasType  Kind = "every_room_has_type"
	KindAllStylesPresent  Kind = "all_styles_present"
)

// Condition is a single immutable win predicate. Only the fields relevant
// to the Kind are set; the rest stay at their zero values.
type Condition struct {
	Kind  Kind               `json:"kind"`
	Room  int                `json:"room,omitempty"`
	Color catalog.Color      `json:"color,omitempty"`
	Style catalog.Style      `json:"style,omitempty"`
	Type  catalog.ObjectType `json:"object_type,omitempty"`
	Count int                `json:"count,omitempty"`
}

// MinObjectsOfColor requires at least count objects of color in the house.
func MinObjectsOfColor(color catalog.Color, count int) Condition {
	return Condition{Kind: KindMinObjectsOfColor, Color: color, Count: count}
}

// MinObjectsOfStyle requires at least count objects of style in the house.
func MinObjectsOfStyle(style catalog.Style, count int) Condition {
	return Condition{Kind: KindMinObjectsOfStyle, Style: style, Count: count}
}

// NoObjectsOfColor forbids any object of color anywhere in the house.
func NoObjectsOfColor(color catalog.Color) Condition {
	return Condition{Kind: KindNoObjectsOfColor, Color: color}
}

// RoomHasColor requires room to contain at least one object of color.
func RoomHasColor(room int, color catalog.Color) Condition {
	return Condition{Kind: KindRoomHasColor, Room: room, Color: color}
}

// RoomWallColor requires room's walls to be exactly color.
func RoomWallColor(room int, color catalog.Color) Condition {
	return Condition{Kind: KindRoomWallColor, Room: room, Color: color}
}

// RoomHasObjectType requires room's typed slot to be occupied.
func RoomHasObjectType(room int, typ catalog.ObjectType) Condition {
	return Condition{Kind: KindRoomHasObjectType, Room: room, Type: typ}
}

// EveryRoomHasType requires the typed slot to be occupied in all rooms.
func EveryRoomHasType(typ catalog.ObjectType) Condition {
	return Condition{Kind: KindEveryRoomHasType, Type: typ}
}

// AllStylesPresent requires at least one object of every style.
func AllStylesPresent() Condition {
	return Condition{Kind: KindAllStylesPresent}
}

// Render produces the human-readable form of the condition, used both for
// display and as the parser's grammar target.
func (c Condition) Render() string {
	switch c.Kind {
	case KindMinObjectsOfColor:
		return fmt.Sprintf("At least %d %s object(s)", c.Count, c.Color)
	case KindMinObjectsOfStyle:
		return fmt.Sprintf("At least %d %s object(s)", c.Count, c.Style)
	case KindNoObjectsOfColor:
		return fmt.Sprintf("No %s objects in house", c.Color)
	case KindRoomHasColor:
		return fmt.Sprintf("%s: needs %s object", catalog.RoomName(c.Room), c.Color)
	case KindRoomWallColor:
		return fmt.Sprintf("%s: walls must be %s", catalog.RoomName(c.Room), c.Color)
	case KindRoomHasObjectType:
		return fmt.Sprintf("%s: needs a %s", catalog.RoomName(c.Room), c.Type)
	case KindEveryRoomHasType:
		return fmt.Sprintf("Every room needs a %s", c.Type)
	case KindAllStylesPresent:
		return "All 4 styles must be present"
	}
	return string(c.Kind)
}

func (c Condition) String() string {
	return c.Render()
}
