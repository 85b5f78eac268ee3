package dtl

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/sbinet/npyio"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"
)

//Datum is one labeled record: a feature vector and a binary label.
type Datum struct {
	X []float64
	Y int
}

//Dataset is an ordered collection of records. The order matters: split search
//enumerates candidate thresholds in dataset order.
type Dataset []Datum

//Dimension returns the number of features of the first record, or 0 for an empty dataset.
func (data Dataset) Dimension() int {
	if len(data) == 0 {
		return 0
	}
	return len(data[0].X)
}

//Validate checks that the dataset is usable for training and reports every problem found.
func (data Dataset) Validate() error {
	if len(data) == 0 {
		return invalidInput("empty dataset")
	}

	var err error
	d := data.Dimension()
	if d == 0 {
		err = multierr.Append(err, invalidInput("record 0 has no features"))
	}
	for ind, datum := range data {
		if len(datum.X) != d {
			err = multierr.Append(err, invalidInput("record %d has %d features, expected %d", ind, len(datum.X), d))
		}
		if datum.Y != 0 && datum.Y != 1 {
			err = multierr.Append(err, invalidInput("record %d has label %d, expected 0 or 1", ind, datum.Y))
		}
		for q, val := range datum.X {
			if math.IsNaN(val) || math.IsInf(val, 0) {
				err = multierr.Append(err, invalidInput("record %d has %v in feature %d", ind, val, q))
				break
			}
		}
	}
	return err
}

//Features packs feature vectors into an n x D matrix. It returns nil for an empty dataset.
func (data Dataset) Features() *mat.Dense {
	h, w := len(data), data.Dimension()
	if h == 0 || w == 0 {
		return nil
	}
	features := mat.NewDense(h, w, nil)
	for p, datum := range data {
		features.SetRow(p, datum.X)
	}
	return features
}

//Labels packs labels into an n x 1 matrix. It returns nil for an empty dataset.
func (data Dataset) Labels() *mat.Dense {
	if len(data) == 0 {
		return nil
	}
	labels := mat.NewDense(len(data), 1, nil)
	for p, datum := range data {
		labels.Set(p, 0, float64(datum.Y))
	}
	return labels
}

//NewDataset joins a feature matrix (n x D) and a label column (n x 1) into a Dataset.
//Labels must be exactly 0 or 1.
func NewDataset(features, labels mat.Matrix) (Dataset, error) {
	h, w := features.Dims()
	labelsH, labelsW := labels.Dims()
	if labelsW != 1 {
		return nil, invalidInput("the width of labels should be 1 not %d", labelsW)
	}
	if labelsH != h {
		return nil, invalidInput("the labels height %d is not equal to the features height %d", labelsH, h)
	}

	data := make(Dataset, h)
	for p := 0; p < h; p++ {
		y := labels.At(p, 0)
		if y != 0 && y != 1 {
			return nil, invalidInput("record %d has label %v, expected 0 or 1", p, y)
		}
		x := make([]float64, w)
		for q := 0; q < w; q++ {
			x[q] = features.At(p, q)
		}
		data[p] = Datum{X: x, Y: int(y)}
	}
	return data, nil
}

//ReadNpy reads the content of an npy file into a dense matrix. A malformed
//file is reported as ErrInvalidInput.
func ReadNpy(fileName string) (denseMat *mat.Dense, err error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", fileName)
	}
	defer f.Close()

	// npyio panics on some malformed headers
	defer func() {
		if r := recover(); r != nil {
			denseMat, err = nil, invalidInput("malformed npy file %s: %v", fileName, r)
		}
	}()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read npy header of %s", fileName)
	}

	denseMat = &mat.Dense{}
	if err := r.Read(denseMat); err != nil {
		return nil, errors.Wrapf(err, "read npy data of %s", fileName)
	}
	return denseMat, nil
}

//ReadDataset reads features and labels from two npy files and unites them into one Dataset.
func ReadDataset(fileNameFeatures, fileNameLabels string) (Dataset, error) {
	logger.Debugf("try to load features <%s>", fileNameFeatures)
	features, err := ReadNpy(fileNameFeatures)
	if err != nil {
		return nil, err
	}
	logger.Debugf("try to load labels <%s>", fileNameLabels)
	labels, err := ReadNpy(fileNameLabels)
	if err != nil {
		return nil, err
	}
	return NewDataset(features, labels)
}

//WriteNpy stores a matrix as an npy file.
func WriteNpy(fileName string, m mat.Matrix) (err error) {
	dst, err := os.Create(fileName)
	if err != nil {
		return errors.Wrapf(err, "create %s", fileName)
	}
	defer func() {
		if cerr := dst.Close(); err == nil {
			err = cerr
		}
	}()
	return errors.Wrapf(npyio.Write(dst, m), "write npy %s", fileName)
}

//Height returns the number of rows of a matrix.
func Height(m mat.Matrix) int {
	h, _ := m.Dims()
	return h
}
