package dtl

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestPreorder(t *testing.T) {
	tree, err := Train(oneFeature([]float64{0, 1}, []int{0, 1}), 1)
	require.NoError(t, err)

	require.Equal(t, []EncodedNode{
		{Kind: KindInternal, Attribute: intPtr(0), Threshold: floatPtr(1)},
		{Kind: KindLeaf, Label: intPtr(0)},
		{Kind: KindLeaf, Label: intPtr(1)},
	}, tree.Preorder())
}

func TestEncodeDecode(t *testing.T) {
	tree, err := Train(randomData(7, 70, 3), 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tree.Encode(&buf))

	restored, err := Decode(&buf)
	require.NoError(t, err)
	require.True(t, Equal(tree, restored))
	require.Equal(t, tree.MinSplitSize(), restored.MinSplitSize())
	require.Equal(t, tree.Dimension(), restored.Dimension())
}

func TestSaveLoadModel(t *testing.T) {
	tree, err := Train(bandData(), 1)
	require.NoError(t, err)

	fileName := filepath.Join(t.TempDir(), "tree.json")
	require.NoError(t, tree.SaveModel(fileName))

	restored, err := LoadModel(fileName)
	require.NoError(t, err)
	require.True(t, tree.Equal(restored))

	_, err = LoadModel(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestFromModelErrors(t *testing.T) {
	leaf := EncodedNode{Kind: KindLeaf, Label: intPtr(1)}
	split := EncodedNode{Kind: KindInternal, Attribute: intPtr(0), Threshold: floatPtr(2)}

	for name, tc := range map[string]struct {
		model Model
		err   error
	}{
		"empty":           {Model{MinSplitSize: 1, Dimension: 1}, ErrInvalidInput},
		"truncated":       {Model{MinSplitSize: 1, Dimension: 1, Nodes: []EncodedNode{split, leaf}}, ErrInvalidInput},
		"trailing":        {Model{MinSplitSize: 1, Dimension: 1, Nodes: []EncodedNode{leaf, leaf}}, ErrInvalidInput},
		"unknown kind":    {Model{MinSplitSize: 1, Dimension: 1, Nodes: []EncodedNode{{Kind: "branch"}}}, ErrInvalidInput},
		"bad label":       {Model{MinSplitSize: 1, Dimension: 1, Nodes: []EncodedNode{{Kind: KindLeaf, Label: intPtr(2)}}}, ErrInvalidInput},
		"missing label":   {Model{MinSplitSize: 1, Dimension: 1, Nodes: []EncodedNode{{Kind: KindLeaf}}}, ErrInvalidInput},
		"leaf with split": {Model{MinSplitSize: 1, Dimension: 1, Nodes: []EncodedNode{{Kind: KindLeaf, Label: intPtr(0), Attribute: intPtr(0)}}}, ErrInvalidInput},
		"split with label": {Model{MinSplitSize: 1, Dimension: 1, Nodes: []EncodedNode{
			{Kind: KindInternal, Attribute: intPtr(0), Threshold: floatPtr(1), Label: intPtr(0)}, leaf, leaf,
		}}, ErrInvalidInput},
		"missing threshold": {Model{MinSplitSize: 1, Dimension: 1, Nodes: []EncodedNode{
			{Kind: KindInternal, Attribute: intPtr(0)}, leaf, leaf,
		}}, ErrInvalidInput},
		"attribute out of range": {Model{MinSplitSize: 1, Dimension: 1, Nodes: []EncodedNode{
			{Kind: KindInternal, Attribute: intPtr(1), Threshold: floatPtr(1)}, leaf, leaf,
		}}, ErrInvalidInput},
		"zero dimension":      {Model{MinSplitSize: 1, Nodes: []EncodedNode{leaf}}, ErrInvalidInput},
		"zero min split size": {Model{Dimension: 1, Nodes: []EncodedNode{leaf}}, ErrInvalidConfig},
	} {
		_, err := FromModel(tc.model)
		require.ErrorIs(t, err, tc.err, name)
	}

	tree, err := FromModel(Model{MinSplitSize: 3, Dimension: 1, Nodes: []EncodedNode{split, leaf, {Kind: KindLeaf, Label: intPtr(0)}}})
	require.NoError(t, err)
	require.Equal(t, Internal{Attribute: 0, Threshold: 2, Left: Leaf{Label: 1}, Right: Leaf{Label: 0}}, tree.Root())
}

func TestDecodeMalformedJSON(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"min_split_size": 1, "nodes": [`))
	require.Error(t, err)
}
