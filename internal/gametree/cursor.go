package gametree

// Cursor is a position within a tree. It is a small value owned by the
// caller; moving it returns a new cursor and never changes the tree.
type Cursor struct {
	tree *Tree
	id   NodeID
}

// Cursor returns a cursor at the root of t.
func (t *Tree) Cursor() Cursor {
	return Cursor{tree: t, id: Root}
}

// ID returns the node id under the cursor.
func (c Cursor) ID() NodeID {
	return c.id
}

// Node returns the node under the cursor.
func (c Cursor) Node() *Node {
	return &c.tree.Nodes[c.id]
}

// Start moves to the root.
func (c Cursor) Start() Cursor {
	c.id = Root
	return c
}

// End follows the main continuation to the end of the current line.
func (c Cursor) End() Cursor {
	c.id = c.tree.Leaf(c.id)
	return c
}

// Back moves to the parent. It reports false at the root.
func (c Cursor) Back() (Cursor, bool) {
	parent := c.Node().Parent
	if parent == NoParent {
		return c, false
	}
	c.id = parent
	return c, true
}

// Forward moves to children[idx]; 0 is the main continuation.
func (c Cursor) Forward(idx int) (Cursor, bool) {
	children := c.Node().Children
	if idx < 0 || idx >= len(children) {
		return c, false
	}
	c.id = children[idx]
	return c, true
}

// Jump moves to an arbitrary node.
func (c Cursor) Jump(id NodeID) (Cursor, error) {
	if _, err := c.tree.Node(id); err != nil {
		return c, err
	}
	c.id = id
	return c, nil
}

// NextVariation moves to the next sibling of the current node.
func (c Cursor) NextVariation() (Cursor, bool) {
	return c.sibling(1)
}

// PrevVariation moves to the previous sibling of the current node.
func (c Cursor) PrevVariation() (Cursor, bool) {
	return c.sibling(-1)
}

func (c Cursor) sibling(delta int) (Cursor, bool) {
	parent := c.Node().Parent
	if parent == NoParent {
		return c, false
	}
	siblings := c.tree.Nodes[parent].Children
	idx := c.VariationIndex() + delta
	if idx < 0 || idx >= len(siblings) {
		return c, false
	}
	c.id = siblings[idx]
	return c, true
}

// VariationIndex returns the position of the current node among its
// siblings; 0 means it is the main continuation of its parent.
func (c Cursor) VariationIndex() int {
	parent := c.Node().Parent
	if parent == NoParent {
		return 0
	}
	for i, id := range c.tree.Nodes[parent].Children {
		if id == c.id {
			return i
		}
	}
	return 0
}

// Path returns the node ids from the root to the cursor.
func (c Cursor) Path() []NodeID {
	return c.tree.Line(c.id)
}
