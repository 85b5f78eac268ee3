package dtl

//Equal reports whether two trees have the same structure: the same split
//attributes, exactly equal thresholds and the same leaf labels.
func Equal(a, b *Tree) bool {
	if a == nil || b == nil {
		return a == b
	}
	return nodesEqual(a.root, b.root)
}

//Equal reports whether tree and other have the same structure.
func (tree *Tree) Equal(other *Tree) bool {
	return Equal(tree, other)
}

//nodesEqual compares two subtrees. A nil node or an internal node missing a
//child never equals anything.
func nodesEqual(a, b Node) bool {
	switch x := a.(type) {
	case Leaf:
		y, ok := b.(Leaf)
		return ok && x.Label == y.Label
	case Internal:
		y, ok := b.(Internal)
		if !ok || !x.wellFormed() || !y.wellFormed() {
			return false
		}
		return x.Attribute == y.Attribute &&
			x.Threshold == y.Threshold &&
			nodesEqual(x.Left, y.Left) &&
			nodesEqual(x.Right, y.Right)
	}
	return false
}
