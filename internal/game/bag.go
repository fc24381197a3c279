package game

import "math/rand"

// Bag is the 7-bag randomizer: a shuffled permutation of the seven piece
// types drained by a cursor. Between reshuffles each type appears exactly
// once ahead of the cursor.
type Bag struct {
	order  [PieceCount]PieceType
	cursor int
	rng    *rand.Rand
}

// NewBag creates a bag backed by the given RNG. The first refill happens
// lazily on the first Next or Peek.
func NewBag(rng *rand.Rand) *Bag {
	b := &Bag{rng: rng}
	b.cursor = PieceCount // force a refill on first use
	return b
}

// refill resets the slots to one of each type and Fisher-Yates shuffles
// from the last index down to 1.
func (b *Bag) refill() {
	for i := range b.order {
		b.order[i] = PieceType(i)
	}
	for i := PieceCount - 1; i >= 1; i-- {
		j := b.rng.Intn(i + 1)
		b.order[i], b.order[j] = b.order[j], b.order[i]
	}
	b.cursor = 0
}

// Next returns the piece at the cursor and advances it, reshuffling first
// if the bag is exhausted.
func (b *Bag) Next() PieceType {
	if b.cursor >= PieceCount {
		b.refill()
	}
	t := b.order[b.cursor]
	b.cursor++
	return t
}

// Peek returns the piece Next would return without advancing the cursor.
// Like Next it reshuffles an exhausted bag, so peeking can change future
// randomizer state; that keeps the displayed next piece and the piece
// actually drawn in sync.
func (b *Bag) Peek() PieceType {
	if b.cursor >= PieceCount {
		b.refill()
	}
	return b.order[b.cursor]
}

// Reset discards the current permutation; the next draw reshuffles.
func (b *Bag) Reset() {
	b.cursor = PieceCount
}
