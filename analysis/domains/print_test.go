package domains

import (
	"os"
	"testing"

	"github.com/ibex-analyzer/ibex/analysis/defs"

	"github.com/fatih/color"
	"github.com/sebdah/goldie/v2"
)

func TestMain(m *testing.M) {
	// Keep golden output stable regardless of the terminal.
	color.NoColor = true
	os.Exit(m.Run())
}

func TestPrinting(t *testing.T) {
	ctx := defs.NewVarContext()
	w, x, y := ctx.Var("w"), ctx.Var("x"), ctx.Var("y")

	state := TopIntervals()
	state.Set(w, upfrom(0))
	state.Set(x, fin(0, 10))
	state.Set(y, fin(5, 5))

	out := state.String() + "\n" +
		TopIntervals().String() + "\n" +
		BottomIntervals().String() + "\n"

	g := goldie.New(t)
	g.Assert(t, "states", []byte(out))
}
