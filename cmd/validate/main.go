package main

import (
	"fmt"
	"os"

	"github.com/mit2nil/decorum/pkg/scenario"
)

// validate lints scenario bundle files. A bundle passes when it is valid
// JSON, every condition line parses, and no starting wall or object entry
// gets skipped during hydration.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <bundle.json> [more.json...]\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		if !validateFile(filename) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func validateFile(filename string) bool {
	fmt.Printf("Validating %s...\n", filename)

	res, err := scenario.LoadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  FAIL: %v\n", err)
		return false
	}

	ok := true
	if n := res.Report.UnparsedConditions; n > 0 {
		fmt.Fprintf(os.Stderr, "  FAIL: %d condition line(s) did not parse\n", n)
		ok = false
	}
	if n := res.Report.SkippedWalls; n > 0 {
		fmt.Fprintf(os.Stderr, "  FAIL: %d starting wall entr(ies) skipped\n", n)
		ok = false
	}
	if n := res.Report.SkippedObjects; n > 0 {
		fmt.Fprintf(os.Stderr, "  FAIL: %d starting object entr(ies) skipped\n", n)
		ok = false
	}
	if len(res.Conditions[0]) == 0 || len(res.Conditions[1]) == 0 {
		fmt.Fprintf(os.Stderr, "  FAIL: both players need at least one condition\n")
		ok = false
	}

	if ok {
		name := res.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Printf("  OK: %s, %d + %d conditions\n",
			name, len(res.Conditions[0]), len(res.Conditions[1]))
	}
	return ok
}
