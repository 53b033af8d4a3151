package combiner

import (
	"testing"

	"github.com/scenekit/scenemerge/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOrCloneIdempotent(t *testing.T) {
	combined := combinedFixture()
	source := sourceFixture()
	recorder := &Recorder{}
	resolver := newResolver(combined, recorder)

	first, ok := resolver.resolveOrClone("/Root/Materials/Blue", source)
	require.True(t, ok)
	second, ok := resolver.resolveOrClone("/Root/Materials/Blue", source)
	require.True(t, ok)

	assert.Equal(t, first, second)
	// Cloned once, not twice.
	assert.Equal(t, []string{"Blue"}, combined.NodeAt("/Root/Materials").ChildNames())
	assert.Empty(t, recorder.Diagnostics)
}

func TestResolveOrCloneKeyedByDocument(t *testing.T) {
	combined := combinedFixture()
	recorder := &Recorder{}
	resolver := newResolver(combined, recorder)

	sourceA := sourceFixture()
	sourceA.Location = "/tmp/a.scn"
	sourceB := sourceFixture()
	sourceB.Location = "/tmp/b.scn"

	first, ok := resolver.resolveOrClone("/Root/Materials/Blue", sourceA)
	require.True(t, ok)
	second, ok := resolver.resolveOrClone("/Root/Materials/Blue", sourceB)
	require.True(t, ok)

	// Same path in distinct documents is a distinct identity.
	assert.NotEqual(t, first, second)
	assert.Equal(t, []string{"Blue", "Blue_1"}, combined.NodeAt("/Root/Materials").ChildNames())
}

func TestResolveOrCloneDanglingTarget(t *testing.T) {
	combined := combinedFixture()
	source := sourceFixture()
	recorder := &Recorder{}
	resolver := newResolver(combined, recorder)

	_, ok := resolver.resolveOrClone("/Root/Materials/Missing", source)
	assert.False(t, ok)
	require.Len(t, recorder.Diagnostics, 1)
	assert.Equal(t, DanglingTarget, recorder.Diagnostics[0].Kind)
	assert.Equal(t, scene.Path("/Root/Materials/Missing"), recorder.Diagnostics[0].Path)
	// The combined graph is untouched.
	assert.Empty(t, combined.NodeAt("/Root/Materials").ChildNames())
}
