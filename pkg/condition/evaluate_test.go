package condition

import (
	"testing"

	"github.com/mit2nil/decorum/pkg/catalog"
	"github.com/mit2nil/decorum/pkg/house"
)

func place(t *testing.T, h *house.House, room int, typ catalog.ObjectType, style catalog.Style) {
	t.Helper()
	obj, err := house.NewObject(typ, style)
	if err != nil {
		t.Fatalf("NewObject(%s, %s): %v", typ, style, err)
	}
	h.Room(room).SetSlot(typ, &obj)
}

func TestEvaluate(t *testing.T) {
	// Two red objects (retro lamp, modern wall hanging), one blue lamp.
	h := house.New()
	place(t, h, 0, catalog.Lamp, catalog.Retro)
	place(t, h, 0, catalog.WallHanging, catalog.Modern)
	place(t, h, 2, catalog.Lamp, catalog.Modern)
	h.Room(1).WallColor = catalog.Blue

	tests := []struct {
		name string
		cond Condition
		want bool
	}{
		{"min color met", MinObjectsOfColor(catalog.Red, 2), true},
		{"min color exact threshold", MinObjectsOfColor(catalog.Blue, 1), true},
		{"min color unmet", MinObjectsOfColor(catalog.Red, 3), false},
		{"min style met", MinObjectsOfStyle(catalog.Modern, 2), true},
		{"min style unmet", MinObjectsOfStyle(catalog.Antique, 1), false},
		{"no color holds", NoObjectsOfColor(catalog.Green), true},
		{"no color violated", NoObjectsOfColor(catalog.Red), false},
		{"room has color", RoomHasColor(0, catalog.Red), true},
		{"room lacks color", RoomHasColor(2, catalog.Red), false},
		{"wall color overridden", RoomWallColor(1, catalog.Blue), true},
		{"wall color default", RoomWallColor(3, catalog.Green), true},
		{"wall color wrong", RoomWallColor(1, catalog.Yellow), false},
		{"room has type", RoomHasObjectType(0, catalog.Lamp), true},
		{"room lacks type", RoomHasObjectType(0, catalog.Curio), false},
		{"every room lacks type", EveryRoomHasType(catalog.Lamp), false},
		{"styles incomplete", AllStylesPresent(), false},
		{"unknown kind", Condition{Kind: "bogus"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cond.Evaluate(h); got != tt.want {
				t.Errorf("Evaluate(%s) = %v, want %v", tt.cond.Render(), got, tt.want)
			}
		})
	}
}

func TestEvaluateEveryRoomAndAllStyles(t *testing.T) {
	h := house.New()
	styles := []catalog.Style{catalog.Modern, catalog.Antique, catalog.Retro, catalog.Unusual}
	for room := 0; room < catalog.RoomCount; room++ {
		place(t, h, room, catalog.Lamp, styles[room])
	}

	if !EveryRoomHasType(catalog.Lamp).Evaluate(h) {
		t.Error("every room holds a lamp")
	}
	if EveryRoomHasType(catalog.Curio).Evaluate(h) {
		t.Error("no room holds a curio")
	}
	if !AllStylesPresent().Evaluate(h) {
		t.Error("all four styles are placed")
	}
}

func TestEvaluateAll(t *testing.T) {
	h := house.New()
	place(t, h, 0, catalog.Lamp, catalog.Retro)

	conds := []Condition{
		MinObjectsOfColor(catalog.Red, 1),
		NoObjectsOfColor(catalog.Red),
	}
	results := EvaluateAll(conds, h)
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if !results[0].Met || results[1].Met {
		t.Errorf("results = %+v", results)
	}
	if results[0].Condition != conds[0] {
		t.Error("result should carry its condition")
	}
}
