package dtl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCandidateRangeOrder(t *testing.T) {
	r := NewCandidateRange(2, 3)
	require.Equal(t, 6, r.Len())

	var got []Candidate
	for r.HasNext() {
		got = append(got, r.GetNext())
	}
	require.Equal(t, []Candidate{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 1}, {1, 2},
	}, got)

	require.False(t, NewCandidateRange(0, 5).HasNext())
	require.False(t, NewCandidateRange(3, 0).HasNext())
}

func TestTheBestSplitTwoPoints(t *testing.T) {
	data := oneFeature([]float64{0, 1}, []int{0, 1})

	bestSplit := TheBestSplit(data)
	require.NotNil(t, bestSplit)
	require.Equal(t, 0, bestSplit.Attribute)
	require.Equal(t, 1.0, bestSplit.Threshold)
	require.Equal(t, 0.0, bestSplit.WeightedEntropy)
	require.Equal(t, data[:1], bestSplit.Left)
	require.Equal(t, data[1:], bestSplit.Right)
}

func TestTheBestSplitPrefersEarlierRecord(t *testing.T) {
	// thresholds 3 and 5 give the same weighted entropy; 3 comes first in dataset order
	bestSplit := TheBestSplit(bandData())
	require.Equal(t, 3.0, bestSplit.Threshold)
	require.InDelta(t, 4.0/6.0, bestSplit.WeightedEntropy, 1e-12)
	require.Len(t, bestSplit.Left, 2)
	require.Len(t, bestSplit.Right, 4)
}

func TestTheBestSplitPrefersLowerFeature(t *testing.T) {
	data := Dataset{
		{X: []float64{0, 10}, Y: 0},
		{X: []float64{1, 20}, Y: 1},
	}
	bestSplit := TheBestSplit(data)
	require.Equal(t, 0, bestSplit.Attribute)
	require.Equal(t, 1.0, bestSplit.Threshold)
}

func TestTheBestSplitThresholdIsObservedValue(t *testing.T) {
	data := randomData(7, 40, 3)
	bestSplit := TheBestSplit(data)
	require.NotNil(t, bestSplit)

	found := false
	for _, datum := range data {
		if datum.X[bestSplit.Attribute] == bestSplit.Threshold {
			found = true
			break
		}
	}
	require.True(t, found)
	require.Equal(t, len(data), len(bestSplit.Left)+len(bestSplit.Right))
	for _, datum := range bestSplit.Left {
		require.Less(t, datum.X[bestSplit.Attribute], bestSplit.Threshold)
	}
	for _, datum := range bestSplit.Right {
		require.GreaterOrEqual(t, datum.X[bestSplit.Attribute], bestSplit.Threshold)
	}
}

func TestTheBestSplitWithoutCandidates(t *testing.T) {
	require.Nil(t, TheBestSplit(nil))
	require.Nil(t, TheBestSplit(Dataset{{X: []float64{}, Y: 1}}))
}

func TestSplitProfileMatchesBestSplit(t *testing.T) {
	data := randomData(11, 25, 4)

	profile, err := SplitProfile(data)
	require.NoError(t, err)
	require.Equal(t, []int{4, 25}, []int(profile.Shape()))

	values := profile.Data().([]float64)
	bestIndex := 0
	for ind, val := range values {
		if val < values[bestIndex] {
			bestIndex = ind
		}
	}

	bestSplit := TheBestSplit(data)
	require.Equal(t, bestSplit.Attribute, bestIndex/len(data))
	require.Equal(t, bestSplit.Threshold, data[bestIndex%len(data)].X[bestSplit.Attribute])
	require.Equal(t, bestSplit.WeightedEntropy, values[bestIndex])
}

func TestSplitProfileRejectsEmptyData(t *testing.T) {
	_, err := SplitProfile(nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSplitProfileNpyRoundTrip(t *testing.T) {
	data := bandData()
	profile, err := SplitProfile(data)
	require.NoError(t, err)

	fileName := filepath.Join(t.TempDir(), "profile.npy")
	require.NoError(t, WriteNpy(fileName, ProfileMatrix(profile)))

	restored, err := ReadNpy(fileName)
	require.NoError(t, err)
	h, w := restored.Dims()
	require.Equal(t, 1, h)
	require.Equal(t, len(data), w)
	require.Equal(t, profile.Data().([]float64), restored.RawRowView(0))
	require.InDelta(t, Entropy(data), restored.At(0, 0), 1e-12)
}

func TestReadNpyMalformedHeader(t *testing.T) {
	profile, err := SplitProfile(bandData())
	require.NoError(t, err)

	// the tensor npy writer pads the header without the closing newline
	fileName := filepath.Join(t.TempDir(), "profile.npy")
	dst, err := os.Create(fileName)
	require.NoError(t, err)
	require.NoError(t, profile.WriteNpy(dst))
	require.NoError(t, dst.Close())

	_, err = ReadNpy(fileName)
	require.ErrorIs(t, err, ErrInvalidInput)
}
