package utils

type Index []int

// NewRange returns rmin..rmax, both included
func NewRange(rmin, rmax int) (r Index) {
	var (
		size = rmax - rmin + 1 // INCLUSIVE RANGE
	)
	if size < 0 {
		size = 0
	}
	r = make(Index, size)
	for i := range r {
		r[i] = i + rmin
	}
	return
}
