package mines

// RandomSource permutes n elements through swap. *rand.Rand from
// math/rand/v2 satisfies it.
type RandomSource interface {
	Shuffle(n int, swap func(i, j int))
}

// placeMines lays out the mines, keeping the cell at prohibited free so
// that the first reveal is always safe. Only the first call has an
// effect.
func (b *Board) placeMines(prohibited int, r RandomSource) {
	if b.minesPlaced {
		return
	}

	/*
	 * Write down every possible mine location, shuffle the list and take
	 * the first totalMines of it.
	 */
	candidates := make([]int, 0, len(b.cells)-1)
	for i := range b.cells {
		if i != prohibited {
			candidates = append(candidates, i)
		}
	}
	r.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, i := range candidates[:b.totalMines] {
		b.cells[i].Value = Mine
	}

	b.minesPlaced = true
}

// computeNeighborCounts adds one to every non-mine neighbour of each
// mine. It must run after all mines are placed.
func (b *Board) computeNeighborCounts() {
	for i := range b.cells {
		if b.cells[i].Value != Mine {
			continue
		}
		b.neighbours(i, func(j int) {
			if b.cells[j].Value != Mine {
				b.cells[j].Value++
			}
		})
	}
}
