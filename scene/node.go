package scene

// Node is a named, path-addressed graph element with typed properties,
// relationships and an ordered set of uniquely named children.
type Node struct {
	Name          string
	Type          string
	Properties    []*Property
	Relationships []*Relationship

	parent   *Node
	children []*Node

	childMap map[string]int // Map of children for quick lookup
	relMap   map[string]int // Map of relationships for quick lookup
	propMap  map[string]int // Map of properties for quick lookup
}

// Parent returns the owning node, nil for a document root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Path returns the hierarchical path of the node within its document.
func (n *Node) Path() Path {
	if n.parent == nil {
		return RootPath
	}
	return n.parent.Path().Append(n.Name)
}

// Children returns the ordered child nodes.
func (n *Node) Children() []*Node {
	return n.children
}

// ChildNames returns the names of the direct children in order.
func (n *Node) ChildNames() []string {
	names := make([]string, 0, len(n.children))
	for _, child := range n.children {
		names = append(names, child.Name)
	}
	return names
}

// Child retrieves a direct child by name.
func (n *Node) Child(name string) *Node {
	if n.childMap == nil {
		return nil
	}
	if idx, ok := n.childMap[name]; ok && idx < len(n.children) {
		return n.children[idx]
	}
	return nil
}

// AddChild appends a child node and indexes it by name. Sibling names are
// unique; callers resolve collisions before adding.
func (n *Node) AddChild(child *Node) {
	if n.childMap == nil {
		n.childMap = make(map[string]int)
	}
	child.parent = n
	n.children = append(n.children, child)
	n.childMap[child.Name] = len(n.children) - 1
}

// Relationship retrieves a relationship by name.
func (n *Node) Relationship(name string) *Relationship {
	if n.relMap == nil {
		return nil
	}
	if idx, ok := n.relMap[name]; ok && idx < len(n.Relationships) {
		return n.Relationships[idx]
	}
	return nil
}

// AddRelationship adds a relationship to the node.
func (n *Node) AddRelationship(rel *Relationship) {
	if n.relMap == nil {
		n.relMap = make(map[string]int)
	}
	n.Relationships = append(n.Relationships, rel)
	n.relMap[rel.Name] = len(n.Relationships) - 1
}

// CreateRelationship returns the named relationship, creating it when absent.
func (n *Node) CreateRelationship(name string) *Relationship {
	if rel := n.Relationship(name); rel != nil {
		return rel
	}
	rel := &Relationship{Name: name}
	n.AddRelationship(rel)
	return rel
}

// Property retrieves a property by name.
func (n *Node) Property(name string) *Property {
	if n.propMap == nil {
		return nil
	}
	if idx, ok := n.propMap[name]; ok && idx < len(n.Properties) {
		return n.Properties[idx]
	}
	return nil
}

// AddProperty adds a property to the node.
func (n *Node) AddProperty(property *Property) {
	if n.propMap == nil {
		n.propMap = make(map[string]int)
	}
	n.Properties = append(n.Properties, property)
	n.propMap[property.Name] = len(n.Properties) - 1
}

// Clone creates a deep, order-preserving copy of the node and all its
// descendants. The copy has no parent and aliases nothing with the source,
// so source and copy may be torn down independently.
func (n *Node) Clone() *Node {
	result := &Node{
		Name: n.Name,
		Type: n.Type,
	}
	for _, property := range n.Properties {
		result.AddProperty(property.Clone())
	}
	for _, rel := range n.Relationships {
		result.AddRelationship(rel.Clone())
	}
	for _, child := range n.children {
		result.AddChild(child.Clone())
	}
	return result
}
