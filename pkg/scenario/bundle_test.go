package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mit2nil/decorum/pkg/catalog"
	"github.com/mit2nil/decorum/pkg/condition"
)

func TestLoadMalformedJSON(t *testing.T) {
	if _, err := Load([]byte(`{"name": "broken"`)); err == nil {
		t.Fatal("malformed JSON should fail the load")
	}
	if _, err := Load([]byte(`[]`)); err == nil {
		t.Fatal("non-object JSON should fail the load")
	}
}

func TestLoadParsesConditions(t *testing.T) {
	res, err := Load([]byte(`{
		"player1_conditions": ["At least 2 Red objects", "gibberish line"],
		"player2_conditions": ["Every room needs a Curio"]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Conditions[0]) != 1 || len(res.Conditions[1]) != 1 {
		t.Errorf("condition counts = %d, %d; want 1, 1",
			len(res.Conditions[0]), len(res.Conditions[1]))
	}
	if res.Conditions[0][0] != condition.MinObjectsOfColor(catalog.Red, 2) {
		t.Errorf("p1 condition = %+v", res.Conditions[0][0])
	}
	if res.Report.UnparsedConditions != 1 {
		t.Errorf("unparsed = %d, want 1", res.Report.UnparsedConditions)
	}
}

func TestLoadWallColors(t *testing.T) {
	res, err := Load([]byte(`{
		"player1_conditions": [],
		"player2_conditions": [],
		"wall_colors": ["Blue", "blue", "mauve", "Red", "Green"],
		"starting_walls": {"kitchen": "yellow", "0": "green", "attic": "red", "1": "beige"}
	}`))
	if err != nil {
		t.Fatal(err)
	}

	// Positional colors apply first (invalid ones skipped, extras counted),
	// then named overrides win.
	rooms := res.House.Rooms
	if rooms[0].WallColor != catalog.Green {
		t.Errorf("room 0 = %s, want Green (named override)", rooms[0].WallColor)
	}
	if rooms[1].WallColor != catalog.Blue {
		t.Errorf("room 1 = %s, want Blue", rooms[1].WallColor)
	}
	if rooms[2].WallColor != catalog.DefaultWallColor(2) {
		t.Errorf("room 2 = %s, want default (invalid positional)", rooms[2].WallColor)
	}
	if rooms[3].WallColor != catalog.Yellow {
		t.Errorf("room 3 = %s, want Yellow (named override)", rooms[3].WallColor)
	}

	// Skips: "mauve", the fifth positional, "attic", and "beige".
	if res.Report.SkippedWalls != 4 {
		t.Errorf("skipped walls = %d, want 4", res.Report.SkippedWalls)
	}
}

func TestLoadStartingObjects(t *testing.T) {
	res, err := Load([]byte(`{
		"player1_conditions": [],
		"player2_conditions": [],
		"starting_objects": [
			{"room": 0, "type": "lamp", "style": "Antique"},
			{"room": 1, "type": "painting", "color": "Blue"},
			{"room": 2, "type": "curio", "style": "Modern", "color": "Green"},
			{"room": 2, "type": "curio", "style": "Antique", "color": "Green"},
			{"room": 3, "type": "lamp"},
			{"room": 9, "type": "lamp", "style": "Modern"},
			{"room": 0, "type": "sofa", "style": "Modern"}
		]
	}`))
	if err != nil {
		t.Fatal(err)
	}

	// Style implies color through the pairing.
	lamp := res.House.Room(0).Lamp
	if lamp == nil || lamp.Color != catalog.Yellow {
		t.Errorf("antique lamp = %v, want yellow", lamp)
	}
	// Color implies style in reverse.
	hanging := res.House.Room(1).WallHanging
	if hanging == nil || hanging.Style != catalog.Retro {
		t.Errorf("blue wall hanging = %v, want retro", hanging)
	}
	// A valid explicit pair is kept; the invalid pair after it is dropped
	// rather than overwriting.
	curio := res.House.Room(2).Curio
	if curio == nil || curio.Style != catalog.Modern {
		t.Errorf("curio = %v, want modern green", curio)
	}

	// Skips: invalid pair, neither style nor color, bad room, bad type.
	if res.Report.SkippedObjects != 4 {
		t.Errorf("skipped objects = %d, want 4", res.Report.SkippedObjects)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.json")
	data := []byte(`{
		"name": "Test Bundle",
		"player1_conditions": ["No Red objects in house"],
		"player2_conditions": ["All 4 styles must be present"]
	}`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if res.Name != "Test Bundle" {
		t.Errorf("name = %q", res.Name)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file should fail")
	}
}
