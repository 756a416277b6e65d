package condition

import (
	"github.com/mit2nil/decorum/pkg/catalog"
	"github.com/mit2nil/decorum/pkg/house"
)

// Evaluate reports whether the condition holds against the house. It is
// pure and total over the closed Kind set; an unknown kind evaluates to
// false rather than panicking.
func (c Condition) Evaluate(h *house.House) bool {
	switch c.Kind {
	case KindMinObjectsOfColor:
		return h.CountByColor(c.Color) >= c.Count
	case KindMinObjectsOfStyle:
		return h.CountByStyle(c.Style) >= c.Count
	case KindNoObjectsOfColor:
		return h.CountByColor(c.Color) == 0
	case KindRoomHasColor:
		return h.RoomHasColor(c.Room, c.Color)
	case KindRoomWallColor:
		r := h.Room(c.Room)
		return r != nil && r.WallColor == c.Color
	case KindRoomHasObjectType:
		r := h.Room(c.Room)
		return r != nil && !r.SlotEmpty(c.Type)
	case KindEveryRoomHasType:
		for i := 0; i < catalog.RoomCount; i++ {
			if h.Rooms[i].SlotEmpty(c.Type) {
				return false
			}
		}
		return true
	case KindAllStylesPresent:
		for _, s := range catalog.Styles() {
			if h.CountByStyle(s) == 0 {
				return false
			}
		}
		return true
	}
	return false
}

// Result pairs a condition with its current evaluation.
type Result struct {
	Condition Condition `json:"condition"`
	Met       bool      `json:"met"`
}

// EvaluateAll evaluates a list of conditions against the house.
func EvaluateAll(conds []Condition, h *house.House) []Result {
	results := make([]Result, 0, len(conds))
	for _, c := range conds {
		results = append(results, Result{Condition: c, Met: c.Evaluate(h)})
	}
	return results
}
