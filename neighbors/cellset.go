package neighbors

// cellSet is a bitset over cell indices
type cellSet []uint64

func newCellSet(K int) cellSet {
	return make(cellSet, (K+63)/64)
}

func (s cellSet) has(k int) bool {
	return s[k>>6]&(1<<(uint(k)&63)) != 0
}

func (s cellSet) add(k int) {
	s[k>>6] |= 1 << (uint(k) & 63)
}
