package engine

import (
	"fmt"
	"time"
)

// PlacementBonus is awarded for every settled piece.
const PlacementBonus = 10

// LinesPerLevel is how many cleared lines each level requires.
const LinesPerLevel = 10

// speedTable holds the gravity interval for each level.
var speedTable = [...]time.Duration{
	1000 * time.Millisecond,
	800 * time.Millisecond,
	600 * time.Millisecond,
	500 * time.Millisecond,
	400 * time.Millisecond,
	350 * time.Millisecond,
	300 * time.Millisecond,
	250 * time.Millisecond,
	200 * time.Millisecond,
	150 * time.Millisecond,
	100 * time.Millisecond,
}

// MaxLevel is the last index of the speed table.
const MaxLevel = len(speedTable) - 1

// DropInterval returns the gravity interval for a level.
// Levels past the table use the last entry.
func DropInterval(level int) time.Duration {
	if level < 0 {
		level = 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return speedTable[level]
}

// LineClearBonus returns the score for clearing n rows in one commit.
// Clearing more than four rows at once is impossible on a 20-row board with a
// four-cell piece, so any other count is a bug and panics.
func LineClearBonus(n int) int {
	switch n {
	case 1:
		return 100
	case 2:
		return 250
	case 3:
		return 500
	case 4:
		return 800
	default:
		panic(fmt.Sprintf("engine: cleared %d lines in one commit", n))
	}
}

// nextLevel returns the level after a commit that brought the total to lines.
// It advances at most one step and saturates at MaxLevel.
func nextLevel(level, lines int) int {
	if lines >= (level+1)*LinesPerLevel {
		return min(level+1, MaxLevel)
	}
	return level
}
