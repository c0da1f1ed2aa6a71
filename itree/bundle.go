package itree

import "github.com/kelly-lin/bevyml/layout"

// Bundle is what a UI runtime needs to spawn one node.
type Bundle struct {
	Name   string
	Layout layout.Node
	Type   NodeType
}

// NodeTree is an element tree stripped down to bundles.
type NodeTree struct {
	Bundle   Bundle
	Children []NodeTree
}

// Bundle returns the node's bundle. Elements without a name are called
// "unknown".
func (n *Node) Bundle() Bundle {
	name := n.ElementName
	if name == "" {
		name = "unknown"
	}
	return Bundle{Name: name, Layout: n.Layout, Type: n.Type}
}

// NodeTree converts the node and its descendants.
func (n *Node) NodeTree() NodeTree {
	result := NodeTree{Bundle: n.Bundle()}
	for _, child := range n.Children {
		result.Children = append(result.Children, child.NodeTree())
	}
	return result
}

// NodeTrees converts every root.
func (t *Tree) NodeTrees() []NodeTree {
	result := make([]NodeTree, 0, len(t.Roots))
	for _, root := range t.Roots {
		result = append(result, root.NodeTree())
	}
	return result
}
