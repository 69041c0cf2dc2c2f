// Package dice implements the notation parser, priority roll and shuffle
// primitives described in spec §4.A. Fairness is not a goal — plain
// math/rand sources are expected (spec §1 Non-goals).
package dice

import (
	"strconv"
	"strings"

	"henhur-arena/card"

	"github.com/sirupsen/logrus"
)

// Rand is the minimal random source the dice, deck, henhur and war packages need.
// *math/rand.Rand satisfies it; tests inject a seeded one for determinism
// (spec §9 "surface a swap for tests").
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// ParseNotation accepts "[N]d<M>" with N defaulting to 1 (e.g. "d4", "2d6").
// It returns ok=false for anything malformed.
func ParseNotation(notation string) (count, sides int, ok bool) {
	s := strings.ToLower(strings.TrimSpace(notation))
	idx := strings.IndexByte(s, 'd')
	if idx < 0 {
		return 0, 0, false
	}
	countPart, sidesPart := s[:idx], s[idx+1:]

	count = 1
	if countPart != "" {
		n, err := strconv.Atoi(countPart)
		if err != nil || n <= 0 {
			return 0, 0, false
		}
		count = n
	}

	sides, err := strconv.Atoi(sidesPart)
	if err != nil || sides <= 0 {
		return 0, 0, false
	}
	return count, sides, true
}

// Roll rolls the given notation and returns the sum. Malformed notation
// yields 0 and a logged warning, per spec.
func Roll(r Rand, notation string) int {
	count, sides, ok := ParseNotation(notation)
	if !ok {
		logrus.WithField("notation", notation).Warn("dice: malformed notation, rolling 0")
		return 0
	}
	total := 0
	for i := 0; i < count; i++ {
		total += r.Intn(sides) + 1
	}
	return total
}

// RollPriority implements rollPriority(p) from spec §4.A.
func RollPriority(r Rand, p card.Priority) int {
	if p.IsFixed() {
		return p.Base
	}
	return p.Base + Roll(r, p.Dice)
}

// Shuffle performs an in-place Fisher-Yates shuffle.
func Shuffle[T any](r Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
