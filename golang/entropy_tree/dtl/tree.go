package dtl

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

//minInformationGain is the smallest entropy reduction worth a split. Smaller
//gains are floating point noise.
const minInformationGain = 1e-5

//Tree is a trained binary decision tree. It is immutable and safe for concurrent use.
type Tree struct {
	root         Node
	minSplitSize int
	dimension    int
}

//Root returns the root node.
func (tree *Tree) Root() Node {
	return tree.root
}

//MinSplitSize returns the smallest number of records the tree was allowed to split.
func (tree *Tree) MinSplitSize() int {
	return tree.minSplitSize
}

//Dimension returns the number of features the tree was trained on.
func (tree *Tree) Dimension() int {
	return tree.dimension
}

//Train builds a tree from data. Sets with fewer than minSplitSize records become leaves.
func Train(data Dataset, minSplitSize int) (*Tree, error) {
	return TrainContext(context.Background(), data, minSplitSize)
}

//TrainContext is Train with cancellation. The context is checked before every node is built.
func TrainContext(ctx context.Context, data Dataset, minSplitSize int) (*Tree, error) {
	if minSplitSize < 1 {
		return nil, invalidConfig("min split size should be at least 1, got %d", minSplitSize)
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"records":        len(data),
		"features":       data.Dimension(),
		"min_split_size": minSplitSize,
	}).Info("train tree")

	b := builder{ctx: ctx, minSplitSize: minSplitSize}
	root, err := b.BuildTree(data, 0)
	if err != nil {
		return nil, err
	}

	tree := &Tree{root: root, minSplitSize: minSplitSize, dimension: data.Dimension()}
	logger.WithFields(logrus.Fields{
		"leaves": tree.LeafCount(),
		"depth":  tree.Depth(),
	}).Info("tree trained")
	return tree, nil
}

type builder struct {
	ctx          context.Context
	minSplitSize int
}

//BuildTree recurrently builds a tree node for data.
func (b builder) BuildTree(data Dataset, depth int) (Node, error) {
	if err := b.ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "training interrupted")
	}
	log := logger.WithFields(logrus.Fields{"depth": depth, "size": len(data)})

	if len(data) < b.minSplitSize {
		label := MajorityVote(data)
		log.Debugf("leaf %d: fewer records than %d", label, b.minSplitSize)
		return Leaf{Label: label}, nil
	}

	if label, ok := sameLabel(data); ok {
		log.Debugf("leaf %d: single label", label)
		return Leaf{Label: label}, nil
	}

	currentEntropy := Entropy(data)
	bestSplit := TheBestSplit(data)
	if bestSplit == nil || currentEntropy-bestSplit.WeightedEntropy < minInformationGain {
		label := MajorityVote(data)
		log.Debugf("leaf %d: no information gain, entropy %g", label, currentEntropy)
		return Leaf{Label: label}, nil
	}
	log.Debugf("split f_%d < %g, entropy %g -> %g", bestSplit.Attribute, bestSplit.Threshold, currentEntropy, bestSplit.WeightedEntropy)

	left, err := b.BuildTree(bestSplit.Left, depth+1)
	if err != nil {
		return nil, err
	}
	right, err := b.BuildTree(bestSplit.Right, depth+1)
	if err != nil {
		return nil, err
	}

	return Internal{
		Attribute: bestSplit.Attribute,
		Threshold: bestSplit.Threshold,
		Left:      left,
		Right:     right,
	}, nil
}

//Depth returns the number of edges on the longest root-to-leaf path.
func (tree *Tree) Depth() int {
	return nodeDepth(tree.root)
}

//LeafCount returns the number of leaves.
func (tree *Tree) LeafCount() int {
	return countNodes(tree.root, true)
}

//NodeCount returns the number of nodes, leaves included.
func (tree *Tree) NodeCount() int {
	return countNodes(tree.root, false)
}

func nodeDepth(node Node) int {
	internal, ok := node.(Internal)
	if !ok {
		return 0
	}
	left, right := nodeDepth(internal.Left), nodeDepth(internal.Right)
	if left > right {
		return left + 1
	}
	return right + 1
}

func countNodes(node Node, leavesOnly bool) int {
	switch n := node.(type) {
	case Leaf:
		return 1
	case Internal:
		count := countNodes(n.Left, leavesOnly) + countNodes(n.Right, leavesOnly)
		if !leavesOnly {
			count++
		}
		return count
	}
	return 0
}
