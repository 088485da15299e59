package search

import "math/bits"

// FoodSet is an immutable bitset over a problem's food list. It is backed by
// a string so that states containing it stay comparable.
type FoodSet string

func fullFoodSet(n int) FoodSet {
	buf := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		buf[i/8] |= 1 << (i % 8)
	}
	return FoodSet(buf)
}

func (f FoodSet) Has(i int) bool {
	return i/8 < len(f) && f[i/8]&(1<<(i%8)) != 0
}

// Without returns f with i removed.
func (f FoodSet) Without(i int) FoodSet {
	if !f.Has(i) {
		return f
	}
	buf := []byte(f)
	buf[i/8] &^= 1 << (i % 8)
	return FoodSet(buf)
}

func (f FoodSet) Len() int {
	count := 0
	for i := 0; i < len(f); i++ {
		count += bits.OnesCount8(f[i])
	}
	return count
}

func (f FoodSet) Empty() bool {
	for i := 0; i < len(f); i++ {
		if f[i] != 0 {
			return false
		}
	}
	return true
}
