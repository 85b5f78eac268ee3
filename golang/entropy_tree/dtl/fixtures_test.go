package dtl

import "math/rand"

//oneFeature builds a dataset with a single feature column.
func oneFeature(xs []float64, ys []int) Dataset {
	data := make(Dataset, len(xs))
	for p := range xs {
		data[p] = Datum{X: []float64{xs[p]}, Y: ys[p]}
	}
	return data
}

//bandData is 0 below 3, 1 in [3, 5) and 0 from 5 on.
func bandData() Dataset {
	return oneFeature([]float64{1, 2, 3, 4, 5, 6}, []int{0, 0, 1, 1, 0, 0})
}

func randomData(seed int64, h, w int) Dataset {
	rnd := rand.New(rand.NewSource(seed))
	data := make(Dataset, h)
	for p := 0; p < h; p++ {
		x := make([]float64, w)
		for q := range x {
			x[q] = float64(rnd.Intn(10))
		}
		y := 0
		if x[0]+x[w-1] > 9 {
			y = 1
		}
		if rnd.Float64() < 0.1 {
			y = 1 - y
		}
		data[p] = Datum{X: x, Y: y}
	}
	return data
}
