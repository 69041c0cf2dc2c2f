package dice

import (
	"math/rand"
	"testing"

	"henhur-arena/card"
)

func TestParseNotation(t *testing.T) {
	cases := []struct {
		in          string
		count, side int
		ok          bool
	}{
		{"d4", 1, 4, true},
		{"1d4", 1, 4, true},
		{"2d6", 2, 6, true},
		{"3D20", 3, 20, true},
		{"", 0, 0, false},
		{"d0", 0, 0, false},
		{"xd6", 0, 0, false},
		{"2dx", 0, 0, false},
		{"nodice", 0, 0, false},
	}
	for _, c := range cases {
		count, sides, ok := ParseNotation(c.in)
		if ok != c.ok {
			t.Fatalf("ParseNotation(%q) ok=%v want %v", c.in, ok, c.ok)
		}
		if ok && (count != c.count || sides != c.side) {
			t.Fatalf("ParseNotation(%q) = %d,%d want %d,%d", c.in, count, sides, c.count, c.side)
		}
	}
}

func TestRollMalformedReturnsZero(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	if got := Roll(r, "garbage"); got != 0 {
		t.Fatalf("Roll(garbage) = %d, want 0", got)
	}
}

func TestRollPriorityFixed(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	p := card.Priority{Base: 5}
	if got := RollPriority(r, p); got != 5 {
		t.Fatalf("RollPriority(fixed) = %d, want 5", got)
	}
}

func TestRollPriorityWithDice(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	p := card.Priority{Base: 1, Dice: "d4"}
	got := RollPriority(r, p)
	if got < 2 || got > 5 {
		t.Fatalf("RollPriority(base=1,d4) = %d, want in [2,5]", got)
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	s := []int{1, 2, 3, 4, 5, 6, 7, 8}
	orig := append([]int(nil), s...)
	Shuffle(r, s)
	seen := make(map[int]bool)
	for _, v := range s {
		seen[v] = true
	}
	for _, v := range orig {
		if !seen[v] {
			t.Fatalf("shuffle lost element %d", v)
		}
	}
	if len(s) != len(orig) {
		t.Fatalf("shuffle changed length")
	}
}
