// Package catalog holds the fixed vocabularies of the decorating game:
// room names, colors, styles, object types, and the valid style/color
// combination for every object type. All other packages consume these
// tables; none of them define their own copies.
package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Color is an object or wall color.
type Color string

const (
	Red    Color = "Red"
	Yellow Color = "Yellow"
	Blue   Color = "Blue"
	Green  Color = "Green"
)

// Style is a decor style.
type Style string

const (
	Modern  Style = "Modern"
	Antique Style = "Antique"
	Retro   Style = "Retro"
	Unusual Style = "Unusual"
)

// ObjectType identifies one of the three object slots in a room.
type ObjectType string

const (
	Lamp        ObjectType = "Lamp"
	WallHanging ObjectType = "Wall Hanging"
	Curio       ObjectType = "Curio"
)

// RoomCount is the fixed number of rooms in the house.
const RoomCount = 4

var roomNames = [RoomCount]string{"Bathroom", "Bedroom", "Living Room", "Kitchen"}

// Colors returns the four colors in canonical order.
func Colors() []Color {
	return []Color{Red, Yellow, Blue, Green}
}

// Styles returns the four styles in canonical order.
func Styles() []Style {
	return []Style{Modern, Antique, Retro, Unusual}
}

// ObjectTypes returns the three slot types in canonical order.
func ObjectTypes() []ObjectType {
	return []ObjectType{Lamp, WallHanging, Curio}
}

// RoomNames returns the four room names in house order.
func RoomNames() []string {
	return roomNames[:]
}

// RoomName returns the name of room idx, or "" when out of range.
func RoomName(idx int) string {
	if idx < 0 || idx >= RoomCount {
		return ""
	}
	return roomNames[idx]
}

// RoomIndex resolves a case-insensitive room name to its index.
func RoomIndex(name string) (int, bool) {
	name = canonical(name)
	for i, rn := range roomNames {
		if rn == name {
			return i, true
		}
	}
	return 0, false
}

// DefaultWallColor is the wall color room idx starts with in a fresh house.
func DefaultWallColor(idx int) Color {
	return Colors()[idx%RoomCount]
}

// ParseColor resolves a case-insensitive color name.
func ParseColor(s string) (Color, bool) {
	for _, c := range Colors() {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}

// ParseStyle resolves a case-insensitive style name.
func ParseStyle(s string) (Style, bool) {
	for _, st := range Styles() {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, true
		}
	}
	return "", false
}

// typeSynonyms maps accepted spellings to slot types. "Painting" is the
// rulebook's alternate name for a wall hanging.
var typeSynonyms = map[string]ObjectType{
	"lamp":         Lamp,
	"wall hanging": WallHanging,
	"wallhanging":  WallHanging,
	"wall_hanging": WallHanging,
	"painting":     WallHanging,
	"curio":        Curio,
}

// ParseObjectType resolves a case-insensitive object type name, including
// synonyms.
func ParseObjectType(s string) (ObjectType, bool) {
	t, ok := typeSynonyms[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// validCombos is the rulebook's fixed style/color pairing per object type.
// For each type the mapping is a bijection: every style names exactly one
// color and every color exactly one style.
var validCombos = map[ObjectType]map[Style]Color{
	Lamp: {
		Modern:  Blue,
		Antique: Yellow,
		Retro:   Red,
		Unusual: Green,
	},
	WallHanging: {
		Modern:  Red,
		Antique: Green,
		Retro:   Blue,
		Unusual: Yellow,
	},
	Curio: {
		Modern:  Green,
		Antique: Blue,
		Retro:   Yellow,
		Unusual: Red,
	},
}

// ColorFor returns the color the bijection assigns to (typ, style).
func ColorFor(typ ObjectType, style Style) (Color, bool) {
	c, ok := validCombos[typ][style]
	return c, ok
}

// StyleFor is the reverse lookup: the style that pairs with (typ, color).
func StyleFor(typ ObjectType, color Color) (Style, bool) {
	for s, c := range validCombos[typ] {
		if c == color {
			return s, true
		}
	}
	return "", false
}

// IsValidObject reports whether (typ, style, color) is one of the 12
// legal combinations.
func IsValidObject(typ ObjectType, style Style, color Color) bool {
	c, ok := validCombos[typ][style]
	return ok && c == color
}

// canonical normalizes free-form vocabulary input to the catalog's
// title-cased spelling. The caser is built per call: cases.Caser carries
// transformer state and is not safe for concurrent use.
func canonical(s string) string {
	return cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(s)))
}
