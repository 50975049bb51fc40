package plume

// ContourTracer extracts iso-contours from a binary mask of ncol x nrow
// cells (column-major, index = col*nrow + row). Returned paths are in
// fractional pixel coordinates: X is the column index, Y the row index.
// Closed rings repeat their first point at the end; paths that terminate at
// the domain edge stay open.
type ContourTracer interface {
	Trace(mask []bool, ncol, nrow int) []Path
}

// MarchingSquares traces contours by walking cell edges of the mask lattice,
// contouring the 0/1 indicator at the 0.5 crossing. Segment endpoints sit at
// edge midpoints, so coordinates are multiples of 0.5. Unlike centroid
// angle-sorting or nearest-neighbor chaining, the traced paths cannot
// self-intersect on concave regions.
type MarchingSquares struct{}

// segment is one marching-squares line piece inside a single lattice cell.
// Endpoints are stored doubled (2x pixel coordinates) so they are exact
// integers and usable as map keys when chaining.
type segment struct {
	a, b gridKey
}

type gridKey struct {
	x, y int // doubled pixel coordinates
}

func (k gridKey) point() Point {
	return Point{X: float64(k.x) / 2, Y: float64(k.y) / 2}
}

// Trace implements ContourTracer.
func (MarchingSquares) Trace(mask []bool, ncol, nrow int) []Path {
	if ncol < 2 || nrow < 2 {
		return nil
	}

	segments := marchCells(mask, ncol, nrow)
	if len(segments) == 0 {
		// All-true or all-false mask: no boundary is a valid outcome.
		return nil
	}

	paths := chainSegments(segments)

	// Fewer than 3 points cannot form a meaningful boundary.
	var result []Path
	for _, p := range paths {
		if len(p) >= 3 {
			result = append(result, p)
		}
	}
	return result
}

// marchCells emits one or two segments per lattice cell according to the
// 16-case marching-squares table. Corner bits: 1=(col,row), 2=(col+1,row),
// 4=(col+1,row+1), 8=(col,row+1). Saddle cells (cases 5 and 10) are resolved
// by separating the two high corners.
func marchCells(mask []bool, ncol, nrow int) []segment {
	at := func(c, r int) bool { return mask[c*nrow+r] }

	var segs []segment
	for c := 0; c < ncol-1; c++ {
		for r := 0; r < nrow-1; r++ {
			idx := 0
			if at(c, r) {
				idx |= 1
			}
			if at(c+1, r) {
				idx |= 2
			}
			if at(c+1, r+1) {
				idx |= 4
			}
			if at(c, r+1) {
				idx |= 8
			}
			if idx == 0 || idx == 15 {
				continue
			}

			// Edge midpoints in doubled coordinates.
			top := gridKey{2*c + 1, 2 * r}
			bottom := gridKey{2*c + 1, 2*r + 2}
			left := gridKey{2 * c, 2*r + 1}
			right := gridKey{2*c + 2, 2*r + 1}

			switch idx {
			case 1, 14:
				segs = append(segs, segment{top, left})
			case 2, 13:
				segs = append(segs, segment{top, right})
			case 3, 12:
				segs = append(segs, segment{left, right})
			case 4, 11:
				segs = append(segs, segment{right, bottom})
			case 6, 9:
				segs = append(segs, segment{top, bottom})
			case 7, 8:
				segs = append(segs, segment{left, bottom})
			case 5:
				segs = append(segs, segment{top, left}, segment{right, bottom})
			case 10:
				segs = append(segs, segment{top, right}, segment{left, bottom})
			}
		}
	}
	return segs
}

// chainSegments links individual segments into ordered paths by matching
// shared endpoints. Each segment is used exactly once. Chains that return to
// their starting point are closed by repeating the first point; chains that
// run out of unused neighbors (at the domain edge) stay open.
func chainSegments(segs []segment) []Path {
	// Endpoint adjacency: every key maps to the segments touching it.
	adj := make(map[gridKey][]int, len(segs)*2)
	for i, s := range segs {
		adj[s.a] = append(adj[s.a], i)
		adj[s.b] = append(adj[s.b], i)
	}

	used := make([]bool, len(segs))

	// nextFrom consumes an unused segment touching key and returns its far end.
	nextFrom := func(key gridKey) (gridKey, bool) {
		for _, i := range adj[key] {
			if used[i] {
				continue
			}
			used[i] = true
			if segs[i].a == key {
				return segs[i].b, true
			}
			return segs[i].a, true
		}
		return gridKey{}, false
	}

	// walk extends from key as far as possible, collecting visited keys.
	walk := func(key gridKey) []gridKey {
		chain := []gridKey{key}
		for {
			next, ok := nextFrom(chain[len(chain)-1])
			if !ok {
				return chain
			}
			chain = append(chain, next)
		}
	}

	var paths []Path
	for i := range segs {
		if used[i] {
			continue
		}
		used[i] = true

		// Walk forward from b, then backward from a, and splice.
		forward := walk(segs[i].b)
		backward := walk(segs[i].a)

		keys := make([]gridKey, 0, len(forward)+len(backward))
		for j := len(backward) - 1; j >= 0; j-- {
			keys = append(keys, backward[j])
		}
		keys = append(keys, forward...)

		path := make(Path, len(keys))
		for j, k := range keys {
			path[j] = k.point()
		}
		paths = append(paths, path)
	}
	return paths
}
