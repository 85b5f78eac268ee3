package dtl

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

//Classify returns the label the tree assigns to query. The query must have as
//many features as the training records.
func (tree *Tree) Classify(query []float64) (int, error) {
	if len(query) != tree.dimension {
		return 0, invalidInput("query has %d features, the tree expects %d", len(query), tree.dimension)
	}
	return descend(tree.root, query), nil
}

//descend walks from node to a leaf: right when query[attribute] >= threshold, left otherwise.
func descend(node Node, query []float64) int {
	for {
		switch n := node.(type) {
		case Leaf:
			return n.Label
		case Internal:
			if query[n.Attribute] >= n.Threshold {
				node = n.Right
			} else {
				node = n.Left
			}
		default:
			logger.Panicf("malformed tree node %T", node)
		}
	}
}

//ClassifyMatrix classifies every row of features.
func (tree *Tree) ClassifyMatrix(features mat.Matrix) ([]int, error) {
	h, w := features.Dims()
	if w != tree.dimension {
		return nil, invalidInput("features have %d columns, the tree expects %d", w, tree.dimension)
	}

	labels := make([]int, h)
	row := make([]float64, w)
	for p := 0; p < h; p++ {
		for q := 0; q < w; q++ {
			row[q] = features.At(p, q)
		}
		labels[p] = descend(tree.root, row)
	}
	return labels, nil
}

//ClassifyAll classifies queries on up to workers goroutines. Labels are returned
//in query order; the first failing query aborts the batch.
func ClassifyAll(ctx context.Context, tree *Tree, queries [][]float64, workers int) ([]int, error) {
	if workers < 1 {
		return nil, invalidConfig("workers should be at least 1, got %d", workers)
	}

	labels := make([]int, len(queries))
	chunk := (len(queries) + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for begin := 0; begin < len(queries); begin += chunk {
		begin, end := begin, begin+chunk
		if end > len(queries) {
			end = len(queries)
		}
		g.Go(func() error {
			for p := begin; p < end; p++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				label, err := tree.Classify(queries[p])
				if err != nil {
					return errors.Wrapf(err, "query %d", p)
				}
				labels[p] = label
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return labels, nil
}
