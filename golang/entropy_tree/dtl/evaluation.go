package dtl

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

//Evaluation summarizes how a tree performs on a labeled dataset.
type Evaluation struct {
	Total         int
	Misclassified int
	// Rate is Misclassified / Total.
	Rate float64
	// Confusion counts records by actual label (row) and predicted label (column).
	Confusion *mat.Dense
}

//Evaluate classifies every record of data and compares the result with its label.
func Evaluate(tree *Tree, data Dataset) (Evaluation, error) {
	if len(data) == 0 {
		return Evaluation{}, invalidInput("empty dataset")
	}

	confusion := mat.NewDense(2, 2, nil)
	misclassified := 0
	for p, datum := range data {
		if datum.Y != 0 && datum.Y != 1 {
			return Evaluation{}, invalidInput("record %d has label %d, expected 0 or 1", p, datum.Y)
		}
		predicted, err := tree.Classify(datum.X)
		if err != nil {
			return Evaluation{}, errors.Wrapf(err, "record %d", p)
		}
		confusion.Set(datum.Y, predicted, confusion.At(datum.Y, predicted)+1)
		if predicted != datum.Y {
			misclassified++
		}
	}

	return Evaluation{
		Total:         len(data),
		Misclassified: misclassified,
		Rate:          float64(misclassified) / float64(len(data)),
		Confusion:     confusion,
	}, nil
}

//MisclassificationRate returns the share of records in data the tree labels wrongly.
func MisclassificationRate(tree *Tree, data Dataset) (float64, error) {
	evaluation, err := Evaluate(tree, data)
	if err != nil {
		return 0, err
	}
	return evaluation.Rate, nil
}

//Accuracy returns the share of correctly classified records.
func (e Evaluation) Accuracy() float64 {
	return 1 - e.Rate
}

//Precision returns TP / (TP + FP) for label 1, or 0 when nothing was predicted as 1.
func (e Evaluation) Precision() float64 {
	tp, fp := e.Confusion.At(1, 1), e.Confusion.At(0, 1)
	if tp+fp == 0 {
		return 0
	}
	return tp / (tp + fp)
}

//Recall returns TP / (TP + FN) for label 1, or 0 when there are no records labeled 1.
func (e Evaluation) Recall() float64 {
	tp, fn := e.Confusion.At(1, 1), e.Confusion.At(1, 0)
	if tp+fn == 0 {
		return 0
	}
	return tp / (tp + fn)
}
