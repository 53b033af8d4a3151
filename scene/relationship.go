package scene

// Relationship is a named, ordered, multi-target edge from a node to other
// node paths. Target order is semantic: the first target may be privileged
// by the consumer.
type Relationship struct {
	Name     string
	Targets  []Path
	Metadata map[string]string
}

// Clone creates a deep copy of the relationship.
func (r *Relationship) Clone() *Relationship {
	result := &Relationship{
		Name:    r.Name,
		Targets: make([]Path, len(r.Targets)),
	}
	copy(result.Targets, r.Targets)
	if r.Metadata != nil {
		result.Metadata = make(map[string]string, len(r.Metadata))
		for k, v := range r.Metadata {
			result.Metadata[k] = v
		}
	}
	return result
}

// Property represents a typed property on a node. Properties with the
// "asset" type carry file references subject to resource baking.
type Property struct {
	Name  string
	Type  string
	Value string
}

// AssetType marks properties whose value is a file reference.
const AssetType = "asset"

// Clone creates a copy of the property.
func (p *Property) Clone() *Property {
	result := *p
	return &result
}
