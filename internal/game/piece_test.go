package game

import "testing"

func TestShapeMasksHaveFourConnectedCells(t *testing.T) {
	for ty := PieceType(0); ty < PieceCount; ty++ {
		for r := Rotation(0); r < 4; r++ {
			m := Shape(ty, r)
			if got := m.Bits(); got != 4 {
				t.Errorf("shape %v rot %d: %d bits set, want 4", ty, r, got)
			}
			if !connected(m) {
				t.Errorf("shape %v rot %d: cells are not 4-connected", ty, r)
			}
		}
	}
}

// connected reports whether the mask's cells form one 4-connected group.
func connected(m Mask) bool {
	var start [2]int
	found := false
	for row := 0; row < 4 && !found; row++ {
		for col := 0; col < 4 && !found; col++ {
			if m.Has(col, row) {
				start = [2]int{col, row}
				found = true
			}
		}
	}
	if !found {
		return false
	}

	seen := map[[2]int]bool{start: true}
	queue := [][2]int{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			n := [2]int{c[0] + d[0], c[1] + d[1]}
			if n[0] < 0 || n[0] > 3 || n[1] < 0 || n[1] > 3 {
				continue
			}
			if seen[n] || !m.Has(n[0], n[1]) {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return len(seen) == m.Bits()
}

func TestSquareIsRotationInvariant(t *testing.T) {
	for r := Rotation(1); r < 4; r++ {
		if Shape(PieceO, r) != Shape(PieceO, 0) {
			t.Errorf("O piece rot %d differs from spawn state", r)
		}
	}
}

func TestRotationStepping(t *testing.T) {
	if got := Rotation(3).CW(); got != 0 {
		t.Errorf("Rotation(3).CW() = %d, want 0", got)
	}
	if got := Rotation(0).CCW(); got != 3 {
		t.Errorf("Rotation(0).CCW() = %d, want 3", got)
	}
}

func TestStraightPieceSpansRowAndColumn(t *testing.T) {
	// Spawn state occupies one full row of the box, rotated states one column.
	m := Shape(PieceI, 0)
	for col := 0; col < 4; col++ {
		if !m.Has(col, 1) {
			t.Fatalf("I spawn state missing cell (%d,1)", col)
		}
	}
	m = Shape(PieceI, 1)
	for row := 0; row < 4; row++ {
		if !m.Has(2, row) {
			t.Fatalf("I rot 1 missing cell (2,%d)", row)
		}
	}
}
