package dtl

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

//BestSplit contains results of the split selection algorithm. Left and Right are
//the partition produced by the winning candidate.
type BestSplit struct {
	Attribute       int
	Threshold       float64
	WeightedEntropy float64
	Left, Right     Dataset
}

//candidateCounts counts labels on both sides of the split x[feature] < threshold.
func candidateCounts(data Dataset, feature int, threshold float64) (left0, left1, right0, right1 int) {
	for _, datum := range data {
		if datum.X[feature] < threshold {
			if datum.Y == 0 {
				left0++
			} else {
				left1++
			}
		} else {
			if datum.Y == 0 {
				right0++
			} else {
				right1++
			}
		}
	}
	return
}

//weightedEntropy is the size-weighted entropy of the two sides of a split.
func weightedEntropy(left0, left1, right0, right1 int) float64 {
	leftSize := left0 + left1
	rightSize := right0 + right1
	total := float64(leftSize + rightSize)
	if total == 0 {
		return 0
	}
	return float64(leftSize)*entropyFromCounts(left0, left1)/total +
		float64(rightSize)*entropyFromCounts(right0, right1)/total
}

//partition splits data into records with x[feature] < threshold and the rest,
//preserving dataset order on both sides.
func partition(data Dataset, feature int, threshold float64) (left, right Dataset) {
	left, right = make(Dataset, 0), make(Dataset, 0)
	for _, datum := range data {
		if datum.X[feature] < threshold {
			left = append(left, datum)
		} else {
			right = append(right, datum)
		}
	}
	return
}

//TheBestSplit finds the split with the smallest weighted entropy. Every feature
//value of every record is tried as a threshold, features in ascending order and
//records in dataset order; on ties the earliest candidate wins.
//It returns nil when there is no candidate (empty data or no features).
func TheBestSplit(data Dataset) *BestSplit {
	var best *BestSplit

	for candidates := NewCandidateRange(data.Dimension(), len(data)); candidates.HasNext(); {
		candidate := candidates.GetNext()
		threshold := data[candidate.Record].X[candidate.Feature]
		currentValue := weightedEntropy(candidateCounts(data, candidate.Feature, threshold))

		if best == nil || currentValue < best.WeightedEntropy {
			left, right := partition(data, candidate.Feature, threshold)
			best = &BestSplit{
				Attribute:       candidate.Feature,
				Threshold:       threshold,
				WeightedEntropy: currentValue,
				Left:            left,
				Right:           right,
			}
		}
	}

	return best
}

//SplitProfile evaluates every candidate split of data and returns a D x n tensor
//whose element (i, j) is the weighted entropy of the split x[i] < data[j].X[i].
func SplitProfile(data Dataset) (*tensor.Dense, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	d, h := data.Dimension(), len(data)

	profile := tensor.New(tensor.WithShape(d, h), tensor.Of(tensor.Float64))
	for candidates := NewCandidateRange(d, h); candidates.HasNext(); {
		candidate := candidates.GetNext()
		threshold := data[candidate.Record].X[candidate.Feature]
		value := weightedEntropy(candidateCounts(data, candidate.Feature, threshold))
		if err := profile.SetAt(value, candidate.Feature, candidate.Record); err != nil {
			return nil, errors.Wrapf(err, "set profile at (%d, %d)", candidate.Feature, candidate.Record)
		}
	}
	return profile, nil
}

//ProfileMatrix copies a split profile into a D x n matrix, ready for WriteNpy.
func ProfileMatrix(profile *tensor.Dense) *mat.Dense {
	shape := profile.Shape()
	data := make([]float64, profile.DataSize())
	copy(data, profile.Data().([]float64))
	return mat.NewDense(shape[0], shape[1], data)
}
