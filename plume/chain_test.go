package plume

import "testing"

func TestBoundaryChainBlock(t *testing.T) {
	// 3x3 block: every block cell touches the outside, so the component
	// is all 9 cells.
	mask := maskBlock(7, 7, 2, 2, 4, 4)

	paths := BoundaryChain{}.Trace(mask, 7, 7)
	if len(paths) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(paths))
	}

	p := paths[0]
	if !p.Closed() {
		t.Error("chained component should be closed back to its start")
	}
	for _, pt := range p {
		if pt.X < 2 || pt.X > 4 || pt.Y < 2 || pt.Y > 4 {
			t.Errorf("point %v outside block bounds", pt)
		}
	}
}

func TestBoundaryChainInteriorExcluded(t *testing.T) {
	// 4x4 block: all cells except the middle 2x2 are boundary cells.
	mask := maskBlock(8, 8, 2, 2, 5, 5)

	paths := BoundaryChain{}.Trace(mask, 8, 8)
	if len(paths) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(paths))
	}

	// 16 cells minus 4 interior = 12 boundary cells, plus the closing point.
	if len(paths[0]) != 13 {
		t.Errorf("expected 13 points, got %d", len(paths[0]))
	}
	for _, pt := range paths[0][:len(paths[0])-1] {
		if pt.X >= 3 && pt.X <= 4 && pt.Y >= 3 && pt.Y <= 4 {
			t.Errorf("interior cell %v should not be part of the boundary", pt)
		}
	}
}

func TestBoundaryChainNoiseDropped(t *testing.T) {
	// Two isolated cells: components of size 1 cannot form a polygon.
	mask := make([]bool, 9*9)
	mask[2*9+2] = true
	mask[6*9+6] = true

	paths := BoundaryChain{}.Trace(mask, 9, 9)
	if len(paths) != 0 {
		t.Errorf("expected noise components to be dropped, got %d paths", len(paths))
	}
}

func TestBoundaryChainDisjointComponents(t *testing.T) {
	mask := maskBlock(10, 10, 1, 1, 2, 2)
	for c := 6; c <= 7; c++ {
		for r := 6; r <= 7; r++ {
			mask[c*10+r] = true
		}
	}

	paths := BoundaryChain{}.Trace(mask, 10, 10)
	if len(paths) != 2 {
		t.Fatalf("expected 2 contours, got %d", len(paths))
	}
}

func TestBoundaryChainDegenerateMasks(t *testing.T) {
	if paths := (BoundaryChain{}).Trace(make([]bool, 16), 4, 4); len(paths) != 0 {
		t.Errorf("all-false mask: expected 0 contours, got %d", len(paths))
	}
}
