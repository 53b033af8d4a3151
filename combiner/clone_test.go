package combiner

import (
	"testing"

	"github.com/scenekit/scenemerge/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func combinedFixture() *scene.Document {
	combined := scene.NewDocument("/tmp/base.scn")
	combined.DefaultPrim = "Root"
	root := &scene.Node{Name: "Root", Type: "Xform"}
	combined.Root.AddChild(root)
	root.AddChild(&scene.Node{Name: "Materials"})
	return combined
}

func sourceFixture() *scene.Document {
	source := scene.NewDocument("/tmp/variant.scn")
	source.DefaultPrim = "Root"
	root := &scene.Node{Name: "Root", Type: "Xform"}
	source.Root.AddChild(root)
	materials := &scene.Node{Name: "Materials"}
	blue := &scene.Node{Name: "Blue", Type: "Material"}
	shader := &scene.Node{Name: "Shader", Type: ShaderType}
	shader.AddProperty(&scene.Property{Name: "inputs:file", Type: scene.AssetType, Value: "blue.png"})
	blue.AddChild(shader)
	materials.AddChild(blue)
	root.AddChild(materials)
	return source
}

func TestCloneSubtreeCollisionFreeNames(t *testing.T) {
	combined := combinedFixture()
	source := sourceFixture()
	blue := source.NodeAt("/Root/Materials/Blue")
	require.NotNil(t, blue)

	first := cloneSubtree(blue, combined)
	second := cloneSubtree(blue, combined)

	assert.Equal(t, scene.Path("/Root/Materials/Blue"), first)
	assert.Equal(t, scene.Path("/Root/Materials/Blue_1"), second)
	assert.Equal(t, []string{"Blue", "Blue_1"}, combined.NodeAt("/Root/Materials").ChildNames())

	// The copy is deep: descendants and properties come along.
	shader := combined.NodeAt("/Root/Materials/Blue_1/Shader")
	require.NotNil(t, shader)
	assert.Equal(t, "blue.png", shader.Property("inputs:file").Value)

	// And independent of the source graph.
	shader.Property("inputs:file").Value = "mutated.png"
	assert.Equal(t, "blue.png", source.NodeAt("/Root/Materials/Blue/Shader").Property("inputs:file").Value)
}

func TestCloneSubtreeFallsBackToDefaultPrim(t *testing.T) {
	combined := combinedFixture()
	source := scene.NewDocument("/tmp/variant.scn")
	root := &scene.Node{Name: "Elsewhere"}
	source.Root.AddChild(root)
	anim := &scene.Node{Name: "Run", Type: "SkelAnimation"}
	root.AddChild(anim)

	// /Elsewhere does not exist in the combined graph; the clone lands
	// under the default prim.
	path := cloneSubtree(anim, combined)
	assert.Equal(t, scene.Path("/Root/Run"), path)
}
