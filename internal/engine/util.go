package engine

// offset returns the distance and unit direction (-1, 0 or 1) from one file
// or rank to another.
func offset[T ~byte](from, to T) (dist, dir int) {
	switch d := int(to) - int(from); {
	case d > 0:
		return d, 1
	case d < 0:
		return -d, -1
	}
	return 0, 0
}
