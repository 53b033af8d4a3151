package scene

// Document is one fully loaded scene graph. A document is ephemeral: it is
// owned by whichever component loaded it and discarded once its content has
// been merged or exported.
type Document struct {
	Location    string
	DefaultPrim string
	SubLayers   []string
	StartTime   float64
	EndTime     float64
	Root        *Node
	VariantSets []*VariantSet

	setMap map[string]int // Map of variant sets for quick lookup
}

// NewDocument creates an empty document with an implicit root node.
func NewDocument(location string) *Document {
	return &Document{
		Location: location,
		Root:     &Node{},
	}
}

// NodeAt locates the node at the given path, nil when absent.
func (d *Document) NodeAt(path Path) *Node {
	node := d.Root
	for _, segment := range path.Segments() {
		node = node.Child(segment)
		if node == nil {
			return nil
		}
	}
	return node
}

// DefaultPrimNode returns the designated default-prim root of the document,
// nil when the document does not declare one or the node is missing.
func (d *Document) DefaultPrimNode() *Node {
	if d.DefaultPrim == "" || d.Root == nil {
		return nil
	}
	return d.Root.Child(d.DefaultPrim)
}

// Walk visits every node of the graph in pre-order. Returning false from
// the visitor prunes the node's subtree.
func (d *Document) Walk(visit func(node *Node) bool) {
	if d.Root == nil {
		return
	}
	walk(d.Root, visit)
}

func walk(node *Node, visit func(node *Node) bool) {
	for _, child := range node.Children() {
		if !visit(child) {
			continue
		}
		walk(child, visit)
	}
}

// VariantSet retrieves a variant set by name.
func (d *Document) VariantSet(name string) *VariantSet {
	if d.setMap == nil {
		return nil
	}
	if idx, ok := d.setMap[name]; ok && idx < len(d.VariantSets) {
		return d.VariantSets[idx]
	}
	return nil
}

// AddVariantSet returns the named variant set, creating it when absent.
// Creation is idempotent: one variant set per name per document.
func (d *Document) AddVariantSet(name string) *VariantSet {
	if set := d.VariantSet(name); set != nil {
		return set
	}
	if d.setMap == nil {
		d.setMap = make(map[string]int)
	}
	set := &VariantSet{Name: name}
	d.VariantSets = append(d.VariantSets, set)
	d.setMap[name] = len(d.VariantSets) - 1
	return set
}
