package dtl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tree, err := Train(oneFeature([]float64{0, 1}, []int{0, 1}), 1)
	require.NoError(t, err)

	// x < 1 is predicted 0, the rest 1
	test := oneFeature(
		[]float64{0, 0.5, 0.7, 1, 2, 3},
		[]int{0, 1, 0, 1, 0, 1},
	)
	evaluation, err := Evaluate(tree, test)
	require.NoError(t, err)

	require.Equal(t, 6, evaluation.Total)
	require.Equal(t, 2, evaluation.Misclassified)
	require.InDelta(t, 1.0/3, evaluation.Rate, 1e-12)
	require.InDelta(t, 2.0/3, evaluation.Accuracy(), 1e-12)
	require.Equal(t, []float64{2, 1, 1, 2}, evaluation.Confusion.RawMatrix().Data)
	require.InDelta(t, 2.0/3, evaluation.Precision(), 1e-12)
	require.InDelta(t, 2.0/3, evaluation.Recall(), 1e-12)

	rate, err := MisclassificationRate(tree, test)
	require.NoError(t, err)
	require.Equal(t, evaluation.Rate, rate)
}

func TestEvaluateTrainingSet(t *testing.T) {
	data := bandData()
	tree, err := Train(data, 1)
	require.NoError(t, err)

	rate, err := MisclassificationRate(tree, data)
	require.NoError(t, err)
	require.Zero(t, rate)
}

func TestEvaluateNoPositives(t *testing.T) {
	tree, err := Train(oneFeature([]float64{0, 1}, []int{0, 0}), 1)
	require.NoError(t, err)

	evaluation, err := Evaluate(tree, oneFeature([]float64{0, 1}, []int{0, 0}))
	require.NoError(t, err)
	require.Zero(t, evaluation.Precision())
	require.Zero(t, evaluation.Recall())
}

func TestEvaluateErrors(t *testing.T) {
	tree, err := Train(bandData(), 1)
	require.NoError(t, err)

	_, err = Evaluate(tree, nil)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = Evaluate(tree, Dataset{{X: []float64{1, 2}, Y: 0}})
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = Evaluate(tree, oneFeature([]float64{1}, []int{5}))
	require.ErrorIs(t, err, ErrInvalidInput)
}
