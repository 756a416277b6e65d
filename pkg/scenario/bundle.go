// Package scenario loads external game bundles: free-text condition lines
// for each player plus an optional starting house. A bundle that is not
// valid JSON fails the load outright; individual entries that do not
// resolve against the catalog degrade gracefully and are counted in the
// report instead of blocking game start.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/mit2nil/decorum/pkg/catalog"
	"github.com/mit2nil/decorum/pkg/condition"
	"github.com/mit2nil/decorum/pkg/house"
)

// ObjectEntry is one starting-object placement. Style and color are each
// optional: given one, the other is inferred through the type's
// style/color pairing. An explicit pair that violates the pairing is
// dropped.
type ObjectEntry struct {
	Room  int    `json:"room"`
	Type  string `json:"type"`
	Style string `json:"style,omitempty"`
	Color string `json:"color,omitempty"`
}

// Bundle is the on-disk scenario record.
type Bundle struct {
	Name              string            `json:"name,omitempty"`
	Player1Conditions []string          `json:"player1_conditions"`
	Player2Conditions []string          `json:"player2_conditions"`
	WallColors        []string          `json:"wall_colors,omitempty"`
	StartingWalls     map[string]string `json:"starting_walls,omitempty"`
	StartingObjects   []ObjectEntry     `json:"starting_objects,omitempty"`
}

// Report counts the entries a load skipped.
type Report struct {
	UnparsedConditions int `json:"unparsed_conditions"`
	SkippedWalls       int `json:"skipped_walls"`
	SkippedObjects     int `json:"skipped_objects"`
}

// Result is a hydrated bundle, ready to start a session from.
type Result struct {
	Name       string
	House      *house.House
	Conditions [2][]condition.Condition
	Report     Report
}

// Load parses and hydrates a scenario bundle from raw JSON.
func Load(data []byte) (*Result, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("malformed scenario bundle: %w", err)
	}
	return b.Hydrate(), nil
}

// LoadFile reads and hydrates a scenario bundle from disk.
func LoadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario bundle: %w", err)
	}
	return Load(data)
}

// Hydrate builds a fresh default house, applies the bundle's overrides
// and placements, and parses both players' condition lines.
func (b *Bundle) Hydrate() *Result {
	res := &Result{Name: b.Name, House: house.New()}

	var unparsed int
	res.Conditions[0], unparsed = condition.ParseAll(b.Player1Conditions)
	res.Report.UnparsedConditions += unparsed
	res.Conditions[1], unparsed = condition.ParseAll(b.Player2Conditions)
	res.Report.UnparsedConditions += unparsed

	// Positional wall colors first, then named overrides on top.
	for i, name := range b.WallColors {
		if i >= catalog.RoomCount {
			res.Report.SkippedWalls += len(b.WallColors) - i
			break
		}
		color, ok := catalog.ParseColor(name)
		if !ok {
			res.Report.SkippedWalls++
			continue
		}
		res.House.Rooms[i].WallColor = color
	}
	for key, name := range b.StartingWalls {
		idx, ok := roomIdent(key)
		if !ok {
			res.Report.SkippedWalls++
			continue
		}
		color, ok := catalog.ParseColor(name)
		if !ok {
			res.Report.SkippedWalls++
			continue
		}
		res.House.Rooms[idx].WallColor = color
	}

	for _, entry := range b.StartingObjects {
		obj, ok := resolveObject(entry)
		if !ok || res.House.Room(entry.Room) == nil {
			res.Report.SkippedObjects++
			continue
		}
		res.House.Room(entry.Room).SetSlot(obj.Type, &obj)
	}

	return res
}

// roomIdent resolves a starting_walls key: a room index or a
// case-insensitive room name.
func roomIdent(key string) (int, bool) {
	if idx, err := strconv.Atoi(key); err == nil {
		return idx, idx >= 0 && idx < catalog.RoomCount
	}
	return catalog.RoomIndex(key)
}

// resolveObject applies the style/color pairing rules to one entry.
func resolveObject(entry ObjectEntry) (house.DecorObject, bool) {
	typ, ok := catalog.ParseObjectType(entry.Type)
	if !ok {
		return house.DecorObject{}, false
	}

	var style catalog.Style
	var color catalog.Color
	hasStyle, hasColor := entry.Style != "", entry.Color != ""
	if hasStyle {
		if style, ok = catalog.ParseStyle(entry.Style); !ok {
			return house.DecorObject{}, false
		}
	}
	if hasColor {
		if color, ok = catalog.ParseColor(entry.Color); !ok {
			return house.DecorObject{}, false
		}
	}

	switch {
	case hasStyle && hasColor:
		if !catalog.IsValidObject(typ, style, color) {
			return house.DecorObject{}, false
		}
	case hasStyle:
		if color, ok = catalog.ColorFor(typ, style); !ok {
			return house.DecorObject{}, false
		}
	case hasColor:
		if style, ok = catalog.StyleFor(typ, color); !ok {
			return house.DecorObject{}, false
		}
	default:
		return house.DecorObject{}, false
	}

	return house.DecorObject{Type: typ, Style: style, Color: color}, true
}
