package tetris

import "math/rand/v2"

// Bag is the sequence generator. Whenever its pool runs dry it is refilled
// with one of each shape in uniformly random order, so every seven
// consecutive draws contain each shape exactly once.
type Bag struct {
	rng  *rand.Rand
	pool []ShapeId
}

// NewBag creates a bag drawing from a PCG source seeded with seed.
func NewBag(seed uint64) *Bag {
	return NewBagWithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewBagWithRand creates a bag drawing from rng.
func NewBagWithRand(rng *rand.Rand) *Bag {
	return &Bag{
		rng:  rng,
		pool: make([]ShapeId, 0, ShapeCount),
	}
}

// refill appends a random permutation of all shapes by repeatedly removing a
// uniformly chosen candidate.
func (b *Bag) refill() {
	candidates := AllShapes
	remaining := candidates[:]
	for len(remaining) > 0 {
		idx := b.rng.IntN(len(remaining))
		b.pool = append(b.pool, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
}

// Next pops the next shape, refilling the pool first if it is empty.
func (b *Bag) Next() ShapeId {
	if len(b.pool) == 0 {
		b.refill()
	}
	last := len(b.pool) - 1
	s := b.pool[last]
	b.pool = b.pool[:last]
	return s
}

// Peek returns the next n shapes in the order Next would return them without
// consuming them. The pool grows by whole bags as needed.
func (b *Bag) Peek(n int) []ShapeId {
	if n <= 0 {
		return nil
	}

	for len(b.pool) < n {
		// New bags are drawn after the current pool empties, which with
		// pop-from-end means they sit in front of it.
		existing := b.pool
		b.pool = make([]ShapeId, 0, len(existing)+ShapeCount)
		b.refill()
		b.pool = append(b.pool, existing...)
	}

	out := make([]ShapeId, n)
	for i := range out {
		out[i] = b.pool[len(b.pool)-1-i]
	}
	return out
}

// Len returns the number of shapes currently waiting in the pool.
func (b *Bag) Len() int {
	return len(b.pool)
}
