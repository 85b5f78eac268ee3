package dtl

import "fmt"

//Node is a node of a decision tree: either a Leaf or an Internal node.
//Nodes are values; a tree never shares a subtree between two parents.
type Node interface {
	IsLeaf() bool
	GraphDescription() string
	isNode()
}

//Leaf is a terminal node that predicts a fixed label.
type Leaf struct {
	Label int
}

//Internal is a splitting node. Records with x[Attribute] < Threshold go Left, the rest go Right.
type Internal struct {
	Attribute int
	Threshold float64
	Left      Node
	Right     Node
}

func (Leaf) isNode()     {}
func (Internal) isNode() {}

//IsLeaf returns whether this node is a Leaf.
func (Leaf) IsLeaf() bool { return true }

//IsLeaf returns whether this node is a Leaf.
func (Internal) IsLeaf() bool { return false }

//GraphDescription returns the description of a leaf node for tree rendering as a graph
func (leaf Leaf) GraphDescription() string {
	return fmt.Sprintf("label: %d", leaf.Label)
}

//GraphDescription returns the description of a split node for tree rendering as a graph
func (node Internal) GraphDescription() string {
	return fmt.Sprintf("f_%d < %g", node.Attribute, node.Threshold)
}

func (node Internal) wellFormed() bool {
	return node.Left != nil && node.Right != nil
}
