package dtl

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

//Kinds of EncodedNode records.
const (
	KindLeaf     = "leaf"
	KindInternal = "internal"
)

//EncodedNode is one record of the preorder encoding of a tree. A leaf record
//carries Label; an internal record carries Attribute and Threshold and is
//followed by the records of its left subtree and then its right subtree.
type EncodedNode struct {
	Kind      string   `json:"kind"`
	Label     *int     `json:"label,omitempty"`
	Attribute *int     `json:"attribute,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
}

//Model is the serializable form of a tree.
type Model struct {
	MinSplitSize int           `json:"min_split_size"`
	Dimension    int           `json:"dimension"`
	Nodes        []EncodedNode `json:"nodes"`
}

//Preorder returns the preorder encoding of the tree.
func (tree *Tree) Preorder() []EncodedNode {
	return appendPreorder(make([]EncodedNode, 0, tree.NodeCount()), tree.root)
}

func appendPreorder(nodes []EncodedNode, node Node) []EncodedNode {
	switch n := node.(type) {
	case Leaf:
		label := n.Label
		return append(nodes, EncodedNode{Kind: KindLeaf, Label: &label})
	case Internal:
		attribute, threshold := n.Attribute, n.Threshold
		nodes = append(nodes, EncodedNode{Kind: KindInternal, Attribute: &attribute, Threshold: &threshold})
		nodes = appendPreorder(nodes, n.Left)
		return appendPreorder(nodes, n.Right)
	}
	return nodes
}

//Model returns the serializable form of the tree.
func (tree *Tree) Model() Model {
	return Model{
		MinSplitSize: tree.minSplitSize,
		Dimension:    tree.dimension,
		Nodes:        tree.Preorder(),
	}
}

//FromModel rebuilds a tree from its serializable form and checks that the
//encoding describes a well-formed tree.
func FromModel(model Model) (*Tree, error) {
	if model.MinSplitSize < 1 {
		return nil, invalidConfig("min split size should be at least 1, got %d", model.MinSplitSize)
	}
	if model.Dimension < 1 {
		return nil, invalidInput("dimension should be at least 1, got %d", model.Dimension)
	}

	decoder := preorderDecoder{nodes: model.Nodes, dimension: model.Dimension}
	root, err := decoder.next()
	if err != nil {
		return nil, err
	}
	if decoder.pos != len(model.Nodes) {
		return nil, invalidInput("%d trailing records after the tree", len(model.Nodes)-decoder.pos)
	}
	return &Tree{root: root, minSplitSize: model.MinSplitSize, dimension: model.Dimension}, nil
}

type preorderDecoder struct {
	nodes     []EncodedNode
	pos       int
	dimension int
}

func (d *preorderDecoder) next() (Node, error) {
	if d.pos >= len(d.nodes) {
		return nil, invalidInput("truncated encoding at record %d", d.pos)
	}
	ind := d.pos
	record := d.nodes[ind]
	d.pos++

	switch record.Kind {
	case KindLeaf:
		if record.Attribute != nil || record.Threshold != nil {
			return nil, invalidInput("leaf record %d carries a split", ind)
		}
		if record.Label == nil || (*record.Label != 0 && *record.Label != 1) {
			return nil, invalidInput("leaf record %d needs a label of 0 or 1", ind)
		}
		return Leaf{Label: *record.Label}, nil
	case KindInternal:
		if record.Label != nil {
			return nil, invalidInput("internal record %d carries a label", ind)
		}
		if record.Attribute == nil || record.Threshold == nil {
			return nil, invalidInput("internal record %d needs attribute and threshold", ind)
		}
		if *record.Attribute < 0 || *record.Attribute >= d.dimension {
			return nil, invalidInput("internal record %d has attribute %d out of [0, %d)", ind, *record.Attribute, d.dimension)
		}
		left, err := d.next()
		if err != nil {
			return nil, err
		}
		right, err := d.next()
		if err != nil {
			return nil, err
		}
		return Internal{Attribute: *record.Attribute, Threshold: *record.Threshold, Left: left, Right: right}, nil
	default:
		return nil, invalidInput("record %d has unknown kind %q", ind, record.Kind)
	}
}

//Encode writes the tree as JSON.
func (tree *Tree) Encode(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(tree.Model()), "encode tree")
}

//Decode reads a tree written by Encode.
func Decode(r io.Reader) (*Tree, error) {
	var model Model
	if err := json.NewDecoder(r).Decode(&model); err != nil {
		return nil, errors.Wrap(err, "decode tree")
	}
	return FromModel(model)
}

//SaveModel writes the tree to filename.
func (tree *Tree) SaveModel(filename string) (err error) {
	dest, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "can't open file %s to write", filename)
	}
	defer func() {
		if cerr := dest.Close(); err == nil {
			err = cerr
		}
	}()
	return tree.Encode(dest)
}

//LoadModel reads a tree saved by SaveModel.
func LoadModel(filename string) (*Tree, error) {
	source, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "can't open file %s to read", filename)
	}
	defer source.Close()
	return Decode(source)
}
