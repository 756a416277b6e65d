package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mit2nil/decorum/pkg/condition"
	"github.com/mit2nil/decorum/pkg/house"
	"github.com/mit2nil/decorum/pkg/scenario"
	"github.com/mit2nil/decorum/pkg/session"
)

func main() {
	seed := flag.Int64("seed", 0, "deal conditions with a fixed seed (0 = random)")
	p1 := flag.String("p1", "", "name of player 1")
	p2 := flag.String("p2", "", "name of player 2")
	flag.Parse()

	var (
		h     *house.House
		conds [2][]condition.Condition
	)
	if path := flag.Arg(0); path != "" {
		res, err := scenario.LoadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load scenario: %v\n", err)
			os.Exit(1)
		}
		if n := res.Report.UnparsedConditions; n > 0 {
			fmt.Fprintf(os.Stderr, "Warning: %d condition(s) in %s could not be parsed\n", n, path)
		}
		h = res.House
		conds = res.Conditions
	} else {
		s := *seed
		if s == 0 {
			s = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(s))
		h = house.New()
		conds[0], conds[1] = condition.Deal(rng)
	}

	sess := session.New(h, *p1, *p2, conds[0], conds[1])

	p := tea.NewProgram(NewConsoleUI(sess), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
