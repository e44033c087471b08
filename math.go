package ggcontainer

import "fmt"

// checkedMul multiplies a and b and checks for overflow.
func checkedMul(a, b uint64) (uint64, error) {
	c := a * b
	if a > 1 && b > 1 && c/a != b {
		return c, fmt.Errorf("multiplication overflow: %d * %d", a, b)
	}
	return c, nil
}

// elementCount computes Π dims[i]. An empty dims list yields 1, so a
// scalar tensor (no axes) still has a well-defined element count.
func elementCount(dims []uint64) (uint64, error) {
	n := uint64(1)
	for _, d := range dims {
		var err error
		n, err = checkedMul(n, d)
		if err != nil {
			return 0, fmt.Errorf("failed to compute element count from dims %v: %w", dims, err)
		}
	}
	return n, nil
}

func ceilDiv(n, d uint64) uint64 {
	if n == 0 {
		return 0
	}
	return (n + d - 1) / d
}
