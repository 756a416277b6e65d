package condition

import (
	"math/rand"

	"github.com/mit2nil/decorum/pkg/catalog"
)

// HandSize is the number of secret conditions dealt to each player.
const HandSize = 3

// Pool enumerates the full closed condition space. Count thresholds for
// the "at least" kinds are drawn from the rng (1..3 for colors, 1..2 for
// styles); everything else is a pure combinatorial expansion. The pool may
// contain semantically overlapping entries for the same room and color
// (an object requirement and a wall requirement); that is part of the
// game, not deduplicated.
func Pool(rng *rand.Rand) []Condition {
	var pool []Condition
	for _, color := range catalog.Colors() {
		pool = append(pool, MinObjectsOfColor(color, 1+rng.Intn(3)))
		pool = append(pool, NoObjectsOfColor(color))
	}
	for _, style := range catalog.Styles() {
		pool = append(pool, MinObjectsOfStyle(style, 1+rng.Intn(2)))
	}
	for room := 0; room < catalog.RoomCount; room++ {
		for _, color := range catalog.Colors() {
			pool = append(pool, RoomHasColor(room, color))
			pool = append(pool, RoomWallColor(room, color))
		}
		for _, typ := range catalog.ObjectTypes() {
			pool = append(pool, RoomHasObjectType(room, typ))
		}
	}
	for _, typ := range catalog.ObjectTypes() {
		pool = append(pool, EveryRoomHasType(typ))
	}
	pool = append(pool, AllStylesPresent())
	return pool
}

// Deal shuffles the enumerated pool and slices two non-overlapping hands
// of HandSize conditions, one per player. Disjointness is structural:
// both hands come from a single shuffled sequence without replacement.
func Deal(rng *rand.Rand) ([]Condition, []Condition) {
	pool := Pool(rng)
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool[:HandSize], pool[HandSize : 2*HandSize]
}
