package condition

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mit2nil/decorum/pkg/catalog"
)

var (
	atLeastPattern   = regexp.MustCompile(`at least (\d+) ([a-z]+) object`)
	noObjectsPattern = regexp.MustCompile(`no ([a-z]+) objects? in house`)
)

// typePhrases are the object-type spellings the grammar accepts, longest
// first so "wall hanging" wins before any shorter label could.
var typePhrases = []struct {
	label string
	typ   catalog.ObjectType
}{
	{"wall hanging", catalog.WallHanging},
	{"painting", catalog.WallHanging},
	{"curio", catalog.Curio},
	{"lamp", catalog.Lamp},
}

// Parse recognizes one condition from a line of free text. Matching is
// case-insensitive and whitespace-tolerant. It accepts both the scenario
// grammar ("The Bathroom must have a red object") and the rendered form
// ("Bathroom: needs Red object"), so Parse(c.Render()) recovers a
// condition equivalent to c for every kind. Unrecognized text returns
// ok=false; reporting skipped lines is the caller's job.
func Parse(text string) (Condition, bool) {
	t := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	if t == "" {
		return Condition{}, false
	}

	// "At least N <token> object(s)": the token is tried as a color
	// before a style. The two vocabularies share no words today; the
	// ordering is still deliberate, not incidental.
	if m := atLeastPattern.FindStringSubmatch(t); m != nil {
		count, err := strconv.Atoi(m[1])
		if err == nil {
			if color, ok := catalog.ParseColor(m[2]); ok {
				return MinObjectsOfColor(color, count), true
			}
			if style, ok := catalog.ParseStyle(m[2]); ok {
				return MinObjectsOfStyle(style, count), true
			}
		}
	}

	if m := noObjectsPattern.FindStringSubmatch(t); m != nil {
		if color, ok := catalog.ParseColor(m[1]); ok {
			return NoObjectsOfColor(color), true
		}
	}

	for idx, name := range catalog.RoomNames() {
		if !strings.Contains(t, strings.ToLower(name)) {
			continue
		}
		for _, color := range catalog.Colors() {
			lc := strings.ToLower(string(color))
			if strings.Contains(t, "must have a "+lc+" object") ||
				strings.Contains(t, "needs "+lc+" object") {
				return RoomHasColor(idx, color), true
			}
			if strings.Contains(t, "walls must be "+lc) {
				return RoomWallColor(idx, color), true
			}
		}
		for _, tp := range typePhrases {
			if strings.Contains(t, "must have a "+tp.label) ||
				strings.Contains(t, "needs a "+tp.label) {
				return RoomHasObjectType(idx, tp.typ), true
			}
		}
	}

	for _, tp := range typePhrases {
		if strings.Contains(t, "every room must have a "+tp.label) ||
			strings.Contains(t, "every room needs a "+tp.label) {
			return EveryRoomHasType(tp.typ), true
		}
	}

	if strings.Contains(t, "all 4 styles must be present") {
		return AllStylesPresent(), true
	}

	return Condition{}, false
}

// ParseAll parses a sequence of condition lines, returning the recognized
// conditions and the count of lines that did not match the grammar.
func ParseAll(lines []string) ([]Condition, int) {
	var conds []Condition
	unparsed := 0
	for _, line := range lines {
		c, ok := Parse(line)
		if !ok {
			unparsed++
			continue
		}
		conds = append(conds, c)
	}
	return conds, unparsed
}
