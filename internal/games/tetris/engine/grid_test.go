package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomPartialGrid fills every row with a random pattern that always leaves
// at least one hole, so no row is complete.
func randomPartialGrid(rng *rand.Rand) Grid {
	var g Grid
	for y := 0; y < Height; y++ {
		hole := rng.Intn(Width)
		for x := 0; x < Width; x++ {
			if x != hole && rng.Intn(2) == 0 {
				g.Set(P(x, y), Color(1+rng.Intn(7)))
			}
		}
	}
	return g
}

// collapseReference removes the complete rows by filtering and pads the top
// with empty rows.
func collapseReference(g Grid) Grid {
	rows := g.Rows()
	var kept [][Width]Color
	for y := 0; y < Height; y++ {
		if !g.RowComplete(y) {
			kept = append(kept, rows[y])
		}
	}

	var out Grid
	offset := Height - len(kept)
	for i, row := range kept {
		for x, c := range row {
			out.Set(P(x, offset+i), c)
		}
	}
	return out
}

func TestPointInBounds(t *testing.T) {
	tests := []struct {
		p    Point
		want bool
	}{
		{P(0, 0), true},
		{P(Width-1, Height-1), true},
		{P(-1, 0), false},
		{P(0, -1), false},
		{P(Width, 0), false},
		{P(0, Height), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.p.InBounds(), "%v.InBounds()", tt.p)
	}
}

func TestGridOutOfBounds(t *testing.T) {
	var g Grid
	g.Set(P(-1, 0), ColorRed)
	g.Set(P(0, Height), ColorRed)

	assert.Equal(t, 0, g.FilledCount())
	assert.Equal(t, ColorNone, g.At(P(Width, 0)))
	assert.False(t, g.IsEmpty(P(Width, 0)), "off-board cells are never free")
	assert.True(t, g.IsEmpty(P(0, 0)))
}

func TestClearSingleRow(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, target := range []int{0, 1, 9, Height - 1} {
		g := randomPartialGrid(rng)
		fillRowExcept(&g, target, ColorCyan)
		before := g.Rows()

		require.Equal(t, 1, g.ClearLines(), "row %d", target)
		after := g.Rows()

		assert.Equal(t, [Width]Color{}, after[0], "row 0 must be empty after clearing row %d", target)
		for y := 0; y < target; y++ {
			assert.Equal(t, before[y], after[y+1], "row %d must move down one", y)
		}
		for y := target + 1; y < Height; y++ {
			assert.Equal(t, before[y], after[y], "row %d below the cleared row must not change", y)
		}
	}
}

func TestClearTwoRowsMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	pairs := [][2]int{
		{3, 12},
		{12, 3},
		{0, Height - 1},
		{10, 11},
		{18, 19},
	}
	for _, pair := range pairs {
		g := randomPartialGrid(rng)
		fillRowExcept(&g, pair[0], ColorRed)
		fillRowExcept(&g, pair[1], ColorGreen)
		want := collapseReference(g)

		require.Equal(t, 2, g.ClearLines(), "rows %v", pair)
		assert.True(t, g.Equal(&want), "rows %v: got grid differs from reference", pair)
	}
}

func TestClearLinesCommutes(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	base := randomPartialGrid(rng)

	a := base
	fillRowExcept(&a, 4, ColorRed)
	fillRowExcept(&a, 15, ColorRed)

	// Clearing one row and then the other, in either order, lands on the
	// same grid as the single pass.
	top := a
	top.ClearRow(4)
	top.CollapseAbove(4)
	top.ClearRow(15)
	top.CollapseAbove(15)

	bottom := a
	bottom.ClearRow(15)
	bottom.CollapseAbove(15)
	bottom.ClearRow(5) // row 4 moved down one
	bottom.CollapseAbove(5)

	require.Equal(t, 2, a.ClearLines())
	assert.True(t, a.Equal(&top))
	assert.True(t, a.Equal(&bottom))
}

func TestClearLinesNoCompleteRows(t *testing.T) {
	g := randomPartialGrid(rand.New(rand.NewSource(1)))
	before := g

	assert.Equal(t, 0, g.ClearLines())
	assert.True(t, g.Equal(&before))
}

func TestClearFourStackedRows(t *testing.T) {
	var g Grid
	for y := Height - 4; y < Height; y++ {
		fillRowExcept(&g, y, ColorMagenta)
	}
	g.Set(P(2, Height-5), ColorRed)

	assert.Equal(t, 4, g.ClearLines())
	assert.Equal(t, 1, g.FilledCount())
	assert.Equal(t, ColorRed, g.At(P(2, Height-1)))
}
