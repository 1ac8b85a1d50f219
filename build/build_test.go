package build

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"square-deps/extract"
)

func TestBuild(t *testing.T) {
	t.Run("Should start with a root project", func(t *testing.T) {
		b := New("sample")

		require.NotNil(t, b.Root())
		assert.Equal(t, ":", b.Root().Path())
	})

	t.Run("Should create projects once and keep their order", func(t *testing.T) {
		b := New("sample")
		app := b.EnsureProject(":app")
		lib := b.EnsureProject(":lib")

		assert.Same(t, app, b.EnsureProject(":app"))
		assert.Equal(t, []*Project{b.Root(), app, lib}, slices.Collect(b.AllProjects()))
	})

	t.Run("Should find included builds by name", func(t *testing.T) {
		b := New("sample")
		inc := New("includeBuild")
		b.Included = append(b.Included, inc)

		got, ok := b.IncludedBuild("includeBuild")
		assert.True(t, ok)
		assert.Same(t, inc, got)

		_, ok = b.IncludedBuild("missing")
		assert.False(t, ok)
	})
}

func TestConfiguration(t *testing.T) {
	t.Run("Should create configurations once", func(t *testing.T) {
		p := &Project{ProjectPath: ":app"}
		c := p.EnsureConfiguration("implementation")

		assert.Same(t, c, p.EnsureConfiguration("implementation"))
		assert.False(t, c.Resolvable())
		assert.Equal(t, "implementation", c.Name())
	})

	t.Run("Should count resolutions and return a copy of the artifacts", func(t *testing.T) {
		c := &Configuration{
			ConfigName:    "runtimeClasspath",
			CanBeResolved: true,
			Artifacts:     []extract.ResolvedArtifact{{ID: extract.ProjectComponent{IdentityPath: ":lib"}}},
		}

		got, err := c.Resolve()
		require.NoError(t, err)
		got[0].File = "changed"

		assert.Equal(t, 1, c.ResolveCount)
		assert.Empty(t, c.Artifacts[0].File)
	})

	t.Run("Should return the configured resolution error", func(t *testing.T) {
		hostErr := errors.New("boom")
		c := &Configuration{ConfigName: "runtimeClasspath", CanBeResolved: true, ResolveErr: hostErr}

		_, err := c.Resolve()

		assert.Same(t, hostErr, err)
	})

	t.Run("Should panic when resolving a non-resolvable configuration", func(t *testing.T) {
		c := &Configuration{ConfigName: "implementation"}

		assert.Panics(t, func() { _, _ = c.Resolve() })
		assert.Zero(t, c.ResolveCount)
	})
}

func TestIdentityPath(t *testing.T) {
	assert.Equal(t, ":includeBuild:project:path", IdentityPath("includeBuild", ":project:path"))
	assert.Equal(t, ":includeBuild", IdentityPath("includeBuild", ":"))
}

func TestParseCoordinate(t *testing.T) {
	t.Run("Should parse group, name and version", func(t *testing.T) {
		m, err := ParseCoordinate("com.squareup.okio:okio:3.9.0")

		require.NoError(t, err)
		assert.Equal(t, extract.Module("com.squareup.okio", "okio", "3.9.0"), m)
	})

	t.Run("Should parse coordinates without a group", func(t *testing.T) {
		m, err := ParseCoordinate(":okio:3.9.0")
		require.NoError(t, err)
		assert.Equal(t, extract.ModuleWithoutGroup("okio", "3.9.0"), m)

		m, err = ParseCoordinate("okio")
		require.NoError(t, err)
		assert.Equal(t, extract.ModuleWithoutGroup("okio", ""), m)
	})

	t.Run("Should reject malformed coordinates", func(t *testing.T) {
		for _, c := range []string{"", "g:", "g:a:v:x:y"} {
			_, err := ParseCoordinate(c)
			assert.Error(t, err, c)
		}
	})
}
