package plume

import (
	"log"
	"math"
	"sort"
)

// BoundaryChain is the dependency-free fallback tracer. It identifies
// boundary cells morphologically (a true cell with at least one false
// 8-neighbor), groups them into connected components, and orders each
// component by greedy nearest-neighbor chaining from the leftmost cell.
//
// This is a documented approximation: on concave or elongated regions the
// chained path can self-intersect. MarchingSquares is preferred and is the
// default; BoundaryChain exists for callers that want cell-center output.
type BoundaryChain struct{}

var neighbors8 = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// Trace implements ContourTracer. Output points are cell centers (integer
// pixel coordinates). Components with fewer than 3 cells are dropped as
// noise. Each component's chain is closed back to its starting cell.
func (BoundaryChain) Trace(mask []bool, ncol, nrow int) []Path {
	if ncol < 2 || nrow < 2 {
		return nil
	}

	boundary := boundaryCells(mask, ncol, nrow)
	if len(boundary) == 0 {
		return nil
	}

	components := connectedComponents(boundary, ncol, nrow)

	var paths []Path
	for _, comp := range components {
		if len(comp) < 3 {
			continue
		}
		path := chainNearest(comp)
		if len(path) < 3 {
			continue
		}
		// Close the ring.
		path = append(path, path[0])
		paths = append(paths, path)
	}
	return paths
}

// boundaryCells returns the indices of true cells adjacent to at least one
// false cell. Cells outside the grid count as false, so regions touching the
// domain edge contribute their edge cells. An entirely true mask therefore
// still yields boundary cells here; degenerate masks are rejected by the
// pipeline before tracing.
func boundaryCells(mask []bool, ncol, nrow int) []int {
	at := func(c, r int) bool {
		if c < 0 || c >= ncol || r < 0 || r >= nrow {
			return false
		}
		return mask[c*nrow+r]
	}

	var cells []int
	for c := 0; c < ncol; c++ {
		for r := 0; r < nrow; r++ {
			if !at(c, r) {
				continue
			}
			for _, n := range neighbors8 {
				if !at(c+n[0], r+n[1]) {
					cells = append(cells, c*nrow+r)
					break
				}
			}
		}
	}
	return cells
}

// connectedComponents groups boundary cells into 8-connected blobs via BFS.
func connectedComponents(cells []int, ncol, nrow int) [][]Point {
	inSet := make(map[int]bool, len(cells))
	for _, idx := range cells {
		inSet[idx] = true
	}

	visited := make(map[int]bool, len(cells))
	var components [][]Point

	for _, start := range cells {
		if visited[start] {
			continue
		}
		visited[start] = true

		var comp []Point
		queue := []int{start}
		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]
			c, r := idx/nrow, idx%nrow
			comp = append(comp, Point{X: float64(c), Y: float64(r)})

			for _, n := range neighbors8 {
				nc, nr := c+n[0], r+n[1]
				if nc < 0 || nc >= ncol || nr < 0 || nr >= nrow {
					continue
				}
				nidx := nc*nrow + nr
				if inSet[nidx] && !visited[nidx] {
					visited[nidx] = true
					queue = append(queue, nidx)
				}
			}
		}
		components = append(components, comp)
	}
	return components
}

// chainNearest orders component cells into a traversable path: start from
// the leftmost (then lowest) cell and repeatedly append the nearest
// unvisited cell. The iteration cap equals the component size; hitting it
// with cells left over truncates the path with a logged warning rather than
// looping forever.
func chainNearest(comp []Point) Path {
	pts := make([]Point, len(comp))
	copy(pts, comp)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	remaining := pts[1:]
	path := Path{pts[0]}
	cur := pts[0]

	maxIter := len(pts)
	for iter := 0; len(remaining) > 0; iter++ {
		if iter >= maxIter {
			log.Printf("[CONTOUR] nearest-neighbor chaining hit iteration cap with %d cells unvisited, truncating path", len(remaining))
			break
		}

		best := 0
		bestDist := math.MaxFloat64
		for i, p := range remaining {
			d := math.Hypot(p.X-cur.X, p.Y-cur.Y)
			if d < bestDist {
				bestDist = d
				best = i
			}
		}

		cur = remaining[best]
		path = append(path, cur)
		remaining[best] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
	}

	return path
}
