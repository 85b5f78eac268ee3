// SPDX-License-Identifier: Apache-2.0

package main

/*
#cgo CFLAGS: -I.
#include <stdlib.h>
*/
import "C"

import (
	"context"
	"io"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/tarstars/entropy_tree/golang/entropy_tree/dtl"
)

var (
	handleMu   sync.Mutex
	nextHandle uint64 = 1
	trees             = make(map[uint64]*dtl.Tree)

	lastErrorMu sync.Mutex
	lastError   string

	logSilenceOnce sync.Once
)

func setLastError(err error) {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	if err != nil {
		lastError = err.Error()
	} else {
		lastError = ""
	}
}

func getLastError() string {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	return lastError
}

func silenceLogs() {
	logSilenceOnce.Do(func() {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		dtl.SetLogger(quiet)
	})
}

func storeTree(tree *dtl.Tree) uint64 {
	handleMu.Lock()
	defer handleMu.Unlock()
	handle := nextHandle
	trees[handle] = tree
	nextHandle++
	return handle
}

func fetchTree(handle C.ulonglong) (*dtl.Tree, error) {
	handleMu.Lock()
	defer handleMu.Unlock()
	tree, ok := trees[uint64(handle)]
	if !ok {
		return nil, errors.Errorf("invalid tree handle %d", uint64(handle))
	}
	return tree, nil
}

//export FreeModel
func FreeModel(handle C.ulonglong) {
	handleMu.Lock()
	defer handleMu.Unlock()
	delete(trees, uint64(handle))
}

func copyFloatSlice(ptr *C.double, length int) ([]float64, error) {
	if length < 0 {
		return nil, errors.New("negative length")
	}
	if length == 0 {
		return nil, nil
	}
	if ptr == nil {
		return nil, errors.New("null pointer for non-empty slice")
	}
	src := unsafe.Slice((*float64)(unsafe.Pointer(ptr)), length)
	dst := make([]float64, length)
	copy(dst, src)
	return dst, nil
}

func buildDense(ptr *C.double, rows, cols C.int) (*mat.Dense, error) {
	r, c := int(rows), int(cols)
	if r <= 0 || c <= 0 {
		return nil, errors.Errorf("invalid matrix dimensions %d x %d", r, c)
	}
	data, err := copyFloatSlice(ptr, r*c)
	if err != nil {
		return nil, err
	}
	return mat.NewDense(r, c, data), nil
}

func buildDataset(featuresPtr *C.double, rows, cols C.int, labelsPtr *C.double) (dtl.Dataset, error) {
	features, err := buildDense(featuresPtr, rows, cols)
	if err != nil {
		return nil, errors.Wrap(err, "features")
	}
	labels, err := buildDense(labelsPtr, rows, 1)
	if err != nil {
		return nil, errors.Wrap(err, "labels")
	}
	return dtl.NewDataset(features, labels)
}

//export TrainModel
func TrainModel(featuresPtr *C.double, rows, cols C.int, labelsPtr *C.double, minSplitSize C.int) C.ulonglong {
	setLastError(nil)
	silenceLogs()

	data, err := buildDataset(featuresPtr, rows, cols, labelsPtr)
	if err != nil {
		setLastError(err)
		return 0
	}
	tree, err := dtl.Train(data, int(minSplitSize))
	if err != nil {
		setLastError(err)
		return 0
	}
	return C.ulonglong(storeTree(tree))
}

//export Classify
func Classify(handle C.ulonglong, featuresPtr *C.double, rows, cols C.int, outputPtr *C.int, threadsNum C.int) C.int {
	setLastError(nil)
	tree, err := fetchTree(handle)
	if err != nil {
		setLastError(err)
		return 1
	}
	features, err := buildDense(featuresPtr, rows, cols)
	if err != nil {
		setLastError(err)
		return 2
	}
	if outputPtr == nil {
		setLastError(errors.New("null output pointer"))
		return 3
	}

	var labels []int
	if threadsNum > 1 {
		queries := make([][]float64, int(rows))
		for p := range queries {
			queries[p] = features.RawRowView(p)
		}
		labels, err = dtl.ClassifyAll(context.Background(), tree, queries, int(threadsNum))
	} else {
		labels, err = tree.ClassifyMatrix(features)
	}
	if err != nil {
		setLastError(err)
		return 4
	}

	out := unsafe.Slice((*C.int)(unsafe.Pointer(outputPtr)), len(labels))
	for p, label := range labels {
		out[p] = C.int(label)
	}
	return 0
}

//export MisclassificationRate
func MisclassificationRate(handle C.ulonglong, featuresPtr *C.double, rows, cols C.int, labelsPtr *C.double, ratePtr *C.double) C.int {
	setLastError(nil)
	tree, err := fetchTree(handle)
	if err != nil {
		setLastError(err)
		return 1
	}
	data, err := buildDataset(featuresPtr, rows, cols, labelsPtr)
	if err != nil {
		setLastError(err)
		return 2
	}
	if ratePtr == nil {
		setLastError(errors.New("null output pointer"))
		return 3
	}
	rate, err := dtl.MisclassificationRate(tree, data)
	if err != nil {
		setLastError(err)
		return 4
	}
	*ratePtr = C.double(rate)
	return 0
}

//export SaveModel
func SaveModel(handle C.ulonglong, path *C.char) C.int {
	setLastError(nil)
	tree, err := fetchTree(handle)
	if err != nil {
		setLastError(err)
		return 1
	}
	if err := tree.SaveModel(C.GoString(path)); err != nil {
		setLastError(err)
		return 2
	}
	return 0
}

//export LoadModel
func LoadModel(path *C.char) C.ulonglong {
	setLastError(nil)
	tree, err := dtl.LoadModel(C.GoString(path))
	if err != nil {
		setLastError(err)
		return 0
	}
	return C.ulonglong(storeTree(tree))
}

//export RenderGraph
func RenderGraph(handle C.ulonglong, path, figureType *C.char) C.int {
	setLastError(nil)
	tree, err := fetchTree(handle)
	if err != nil {
		setLastError(err)
		return 1
	}
	goFigureType := C.GoString(figureType)
	if goFigureType == "" {
		goFigureType = "svg"
	}
	if err := tree.RenderGraph(C.GoString(path), goFigureType); err != nil {
		setLastError(err)
		return 2
	}
	return 0
}

//TreesEqual returns 1 for structurally equal trees, 0 for different ones and -1 for a bad handle.
//
//export TreesEqual
func TreesEqual(first, second C.ulonglong) C.int {
	setLastError(nil)
	a, err := fetchTree(first)
	if err != nil {
		setLastError(err)
		return -1
	}
	b, err := fetchTree(second)
	if err != nil {
		setLastError(err)
		return -1
	}
	if dtl.Equal(a, b) {
		return 1
	}
	return 0
}

//export GetLastError
func GetLastError() *C.char {
	errStr := getLastError()
	if errStr == "" {
		return nil
	}
	return C.CString(errStr)
}

//export FreeCString
func FreeCString(str *C.char) {
	if str != nil {
		C.free(unsafe.Pointer(str))
	}
}

func main() {}
