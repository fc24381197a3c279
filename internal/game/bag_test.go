package game

import (
	"math/rand"
	"testing"
)

func TestBagYieldsEachTypeOncePerSeven(t *testing.T) {
	bag := NewBag(rand.New(rand.NewSource(7)))

	for round := 0; round < 20; round++ {
		seen := map[PieceType]int{}
		for i := 0; i < PieceCount; i++ {
			seen[bag.Next()]++
		}
		for ty := PieceType(0); ty < PieceCount; ty++ {
			if seen[ty] != 1 {
				t.Fatalf("round %d: type %v drawn %d times, want 1", round, ty, seen[ty])
			}
		}
	}
}

func TestPeekMatchesNext(t *testing.T) {
	bag := NewBag(rand.New(rand.NewSource(99)))

	// Across bag boundaries: Peek may reshuffle an exhausted bag, but the
	// value it reports must always be what Next then returns.
	for i := 0; i < 50; i++ {
		want := bag.Peek()
		if got := bag.Next(); got != want {
			t.Fatalf("draw %d: Peek = %v but Next = %v", i, want, got)
		}
	}
}

func TestPeekDoesNotAdvance(t *testing.T) {
	bag := NewBag(rand.New(rand.NewSource(1)))
	first := bag.Peek()
	for i := 0; i < 5; i++ {
		if got := bag.Peek(); got != first {
			t.Fatalf("repeated Peek changed the upcoming piece: %v then %v", first, got)
		}
	}
}

func TestBagDeterminism(t *testing.T) {
	a := NewBag(rand.New(rand.NewSource(1234)))
	b := NewBag(rand.New(rand.NewSource(1234)))
	for i := 0; i < 3*PieceCount; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("draw %d diverged: %v vs %v", i, x, y)
		}
	}
}
