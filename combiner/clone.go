package combiner

import (
	"fmt"

	"github.com/scenekit/scenemerge/scene"
)

// cloneSubtree performs a deep, order-preserving structural copy of the node
// and all its descendants from its source graph into the combined graph. The
// destination parent is the combined node at the source parent's path,
// falling back to the default-prim root when that path does not exist. The
// copied child gets a collision-free sibling name: the source name, or
// name_<n> with n incrementing from 1.
func cloneSubtree(node *scene.Node, combined *scene.Document) scene.Path {
	parent := combined.NodeAt(node.Parent().Path())
	if parent == nil {
		parent = combined.DefaultPrimNode()
	}

	name := node.Name
	for count := 1; parent.Child(name) != nil; count++ {
		name = fmt.Sprintf("%s_%d", node.Name, count)
	}

	clone := node.Clone()
	clone.Name = name
	parent.AddChild(clone)
	return clone.Path()
}
