package distance

// Func returns the squared distance between two points of equal dimension.
type Func func(a, b []float64) float64

// SquaredL2 calculates the squared L2 (Euclidean) distance between a and b.
// Assumes both have the same length (caller's responsibility).
func SquaredL2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += float64(d * d)
	}
	return sum
}

func squaredL2D1(a, b []float64) float64 {
	d := a[0] - b[0]
	return float64(d * d)
}

func squaredL2D2(a, b []float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return float64(dx*dx) + float64(dy*dy)
}

func squaredL2D3(a, b []float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return float64(dx*dx) + float64(dy*dy) + float64(dz*dz)
}

// ForDim returns the kernel specialized for dim.
// All kernels accumulate axis by axis in order and round every product
// (the explicit conversions forbid fused multiply-add), so they agree bit for
// bit with SquaredL2 on every architecture.
func ForDim(dim int) Func {
	switch dim {
	case 1:
		return squaredL2D1
	case 2:
		return squaredL2D2
	case 3:
		return squaredL2D3
	default:
		return SquaredL2
	}
}
