package scene

// VariantSet is a named switchable axis owned by the document's default-prim
// root. Variant order follows registration order; Selection names the
// variant shown when the set is not explicitly switched.
type VariantSet struct {
	Name      string
	Variants  []*Variant
	Selection string

	variantMap map[string]int // Map of variants for quick lookup
}

// Variant retrieves a variant by name.
func (s *VariantSet) Variant(name string) *Variant {
	if s.variantMap == nil {
		return nil
	}
	if idx, ok := s.variantMap[name]; ok && idx < len(s.Variants) {
		return s.Variants[idx]
	}
	return nil
}

// AddVariant returns the named variant, registering it when absent.
func (s *VariantSet) AddVariant(name string) *Variant {
	if variant := s.Variant(name); variant != nil {
		return variant
	}
	if s.variantMap == nil {
		s.variantMap = make(map[string]int)
	}
	variant := &Variant{Name: name}
	s.Variants = append(s.Variants, variant)
	s.variantMap[name] = len(s.Variants) - 1
	return variant
}

// SetSelection marks the named variant as selected.
func (s *VariantSet) SetSelection(name string) {
	s.Selection = name
}

// Variant is one (name, edit-block) entry of a variant set.
type Variant struct {
	Name      string
	Overrides []*Override
}

// AddOverride appends a relationship opinion to the variant's edit-block.
func (v *Variant) AddOverride(override *Override) {
	v.Overrides = append(v.Overrides, override)
}

// Override is a relationship opinion that applies to the node at Path only
// while the owning variant is selected.
type Override struct {
	Path         Path
	Relationship *Relationship
}
