package store

import (
	"fmt"

	"github.com/scenekit/scenemerge/scene"
	"gopkg.in/yaml.v3"
)

// The textual document form is a YAML rendition of the scene graph. Nodes,
// relationship targets and variants are sequences, never maps: sibling and
// target order is semantic and must survive a round trip.

type documentSpec struct {
	DefaultPrim string            `yaml:"defaultPrim,omitempty"`
	SubLayers   []string          `yaml:"subLayers,omitempty"`
	StartTime   float64           `yaml:"startTime,omitempty"`
	EndTime     float64           `yaml:"endTime,omitempty"`
	Nodes       []*nodeSpec       `yaml:"nodes,omitempty"`
	VariantSets []*variantSetSpec `yaml:"variantSets,omitempty"`
}

type nodeSpec struct {
	Name          string              `yaml:"name"`
	Type          string              `yaml:"type,omitempty"`
	Properties    []*propertySpec     `yaml:"properties,omitempty"`
	Relationships []*relationshipSpec `yaml:"relationships,omitempty"`
	Children      []*nodeSpec         `yaml:"children,omitempty"`
}

type propertySpec struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type,omitempty"`
	Value string `yaml:"value,omitempty"`
}

type relationshipSpec struct {
	Name     string            `yaml:"name"`
	Targets  []string          `yaml:"targets,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

type variantSetSpec struct {
	Name      string         `yaml:"name"`
	Selection string         `yaml:"selection,omitempty"`
	Variants  []*variantSpec `yaml:"variants,omitempty"`
}

type variantSpec struct {
	Name      string          `yaml:"name"`
	Overrides []*overrideSpec `yaml:"overrides,omitempty"`
}

type overrideSpec struct {
	Path         string            `yaml:"path"`
	Relationship *relationshipSpec `yaml:"relationship"`
}

// Decode parses the textual document form.
func Decode(data []byte) (*scene.Document, error) {
	spec := &documentSpec{}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	doc := scene.NewDocument("")
	doc.DefaultPrim = spec.DefaultPrim
	doc.SubLayers = spec.SubLayers
	doc.StartTime = spec.StartTime
	doc.EndTime = spec.EndTime
	for _, node := range spec.Nodes {
		doc.Root.AddChild(decodeNode(node))
	}
	for _, set := range spec.VariantSets {
		decodeVariantSet(doc, set)
	}
	return doc, nil
}

func decodeNode(spec *nodeSpec) *scene.Node {
	node := &scene.Node{Name: spec.Name, Type: spec.Type}
	for _, property := range spec.Properties {
		node.AddProperty(&scene.Property{Name: property.Name, Type: property.Type, Value: property.Value})
	}
	for _, rel := range spec.Relationships {
		node.AddRelationship(decodeRelationship(rel))
	}
	for _, child := range spec.Children {
		node.AddChild(decodeNode(child))
	}
	return node
}

func decodeRelationship(spec *relationshipSpec) *scene.Relationship {
	rel := &scene.Relationship{Name: spec.Name, Metadata: spec.Metadata}
	for _, target := range spec.Targets {
		rel.Targets = append(rel.Targets, scene.Path(target))
	}
	return rel
}

func decodeVariantSet(doc *scene.Document, spec *variantSetSpec) {
	set := doc.AddVariantSet(spec.Name)
	for _, variant := range spec.Variants {
		entry := set.AddVariant(variant.Name)
		for _, override := range variant.Overrides {
			entry.AddOverride(&scene.Override{
				Path:         scene.Path(override.Path),
				Relationship: decodeRelationship(override.Relationship),
			})
		}
	}
	set.SetSelection(spec.Selection)
}

// Encode renders the document into the textual form.
func Encode(doc *scene.Document) ([]byte, error) {
	spec := &documentSpec{
		DefaultPrim: doc.DefaultPrim,
		SubLayers:   doc.SubLayers,
		StartTime:   doc.StartTime,
		EndTime:     doc.EndTime,
	}
	for _, node := range doc.Root.Children() {
		spec.Nodes = append(spec.Nodes, encodeNode(node))
	}
	for _, set := range doc.VariantSets {
		spec.VariantSets = append(spec.VariantSets, encodeVariantSet(set))
	}
	data, err := yaml.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

func encodeNode(node *scene.Node) *nodeSpec {
	spec := &nodeSpec{Name: node.Name, Type: node.Type}
	for _, property := range node.Properties {
		spec.Properties = append(spec.Properties, &propertySpec{Name: property.Name, Type: property.Type, Value: property.Value})
	}
	for _, rel := range node.Relationships {
		spec.Relationships = append(spec.Relationships, encodeRelationship(rel))
	}
	for _, child := range node.Children() {
		spec.Children = append(spec.Children, encodeNode(child))
	}
	return spec
}

func encodeRelationship(rel *scene.Relationship) *relationshipSpec {
	spec := &relationshipSpec{Name: rel.Name, Metadata: rel.Metadata}
	for _, target := range rel.Targets {
		spec.Targets = append(spec.Targets, string(target))
	}
	return spec
}

func encodeVariantSet(set *scene.VariantSet) *variantSetSpec {
	spec := &variantSetSpec{Name: set.Name, Selection: set.Selection}
	for _, variant := range set.Variants {
		entry := &variantSpec{Name: variant.Name}
		for _, override := range variant.Overrides {
			entry.Overrides = append(entry.Overrides, &overrideSpec{
				Path:         string(override.Path),
				Relationship: encodeRelationship(override.Relationship),
			})
		}
		spec.Variants = append(spec.Variants, entry)
	}
	return spec
}
