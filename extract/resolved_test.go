package extract_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"square-deps/build"
	"square-deps/extract"
	"square-deps/utils"
)

func projectArtifact(path, file string) extract.ResolvedArtifact {
	return extract.ResolvedArtifact{ID: extract.ProjectComponent{IdentityPath: path}, File: file}
}

func TestResolveIfResolvable(t *testing.T) {
	t.Run("Should not touch a non-resolvable bucket", func(t *testing.T) {
		conf := &build.Configuration{
			ConfigName: "implementation",
			Artifacts:  []extract.ResolvedArtifact{projectArtifact(":lib", "lib.jar")},
		}

		res, err := extract.ResolveIfResolvable(conf)

		require.NoError(t, err)
		assert.Equal(t, extract.NotResolvable{}, res)
		assert.Zero(t, conf.ResolveCount)
	})

	t.Run("Should return the resolved artifacts", func(t *testing.T) {
		artifacts := []extract.ResolvedArtifact{projectArtifact(":lib", "lib.jar")}
		conf := &build.Configuration{ConfigName: "runtimeClasspath", CanBeResolved: true, Artifacts: artifacts}

		res, err := extract.ResolveIfResolvable(conf)

		require.NoError(t, err)
		assert.Equal(t, extract.Resolved{Artifacts: artifacts}, res)
		assert.Equal(t, 1, conf.ResolveCount)
	})

	t.Run("Should pass resolution errors through unchanged", func(t *testing.T) {
		hostErr := errors.New("could not resolve com.example:missing:1.0")
		conf := &build.Configuration{ConfigName: "runtimeClasspath", CanBeResolved: true, ResolveErr: hostErr}

		res, err := extract.ResolveIfResolvable(conf)

		assert.Nil(t, res)
		assert.Same(t, hostErr, err)
	})
}

func TestProjectDependencies(t *testing.T) {
	owner := &build.Project{ProjectPath: ":"}

	t.Run("Should yield nothing for a non-resolvable bucket", func(t *testing.T) {
		conf := &build.Configuration{
			ConfigName: "implementation",
			Artifacts:  []extract.ResolvedArtifact{projectArtifact(":lib", "lib.jar")},
		}

		seq, err := extract.ProjectDependencies(conf, owner)

		require.NoError(t, err)
		assert.Empty(t, slices.Collect(seq))
		assert.Zero(t, conf.ResolveCount)
	})

	t.Run("Should map an included build project to its canonical path", func(t *testing.T) {
		conf := &build.Configuration{
			ConfigName:    "runtimeClasspath",
			CanBeResolved: true,
			Artifacts:     []extract.ResolvedArtifact{projectArtifact(":includeBuild:project:path", "path.jar")},
		}

		seq, err := extract.ProjectDependencies(conf, owner)

		require.NoError(t, err)
		assert.Equal(t, []utils.SquareDependency{
			{Target: "/includeBuild/project/path"},
		}, slices.Collect(seq))
	})

	t.Run("Should skip external module artifacts", func(t *testing.T) {
		conf := &build.Configuration{
			ConfigName:    "runtimeClasspath",
			CanBeResolved: true,
			Artifacts: []extract.ResolvedArtifact{
				{ID: extract.ExternalComponent{Group: "com.squareup.okio", Name: "okio", Version: "3.9.0"}, File: "okio.jar"},
				{ID: nil, File: "unknown.jar"},
				projectArtifact(":lib", "lib.jar"),
			},
		}

		seq, err := extract.ProjectDependencies(conf, owner)

		require.NoError(t, err)
		assert.Equal(t, []utils.SquareDependency{{Target: "/lib"}}, slices.Collect(seq))
	})

	t.Run("Should deduplicate artifacts of the same project", func(t *testing.T) {
		conf := &build.Configuration{
			ConfigName:    "runtimeClasspath",
			CanBeResolved: true,
			Artifacts: []extract.ResolvedArtifact{
				projectArtifact(":lib", "lib.jar"),
				projectArtifact(":lib", "lib-sources.jar"),
				projectArtifact(":other", "other.jar"),
				projectArtifact(":lib", "lib-extra.jar"),
			},
		}

		seq, err := extract.ProjectDependencies(conf, owner)

		require.NoError(t, err)
		deps := slices.Collect(seq)
		assert.Len(t, deps, 2)
		assert.ElementsMatch(t, []utils.SquareDependency{{Target: "/lib"}, {Target: "/other"}}, deps)
		for _, d := range deps {
			assert.Empty(t, d.Tags)
		}
	})

	t.Run("Should propagate resolution failures", func(t *testing.T) {
		hostErr := errors.New("could not resolve :lib")
		conf := &build.Configuration{ConfigName: "runtimeClasspath", CanBeResolved: true, ResolveErr: hostErr}

		seq, err := extract.ProjectDependencies(conf, owner)

		assert.Nil(t, seq)
		assert.ErrorIs(t, err, hostErr)
	})

	t.Run("Should resolve once and allow early stop", func(t *testing.T) {
		conf := &build.Configuration{
			ConfigName:    "runtimeClasspath",
			CanBeResolved: true,
			Artifacts:     []extract.ResolvedArtifact{projectArtifact(":a", ""), projectArtifact(":b", "")},
		}

		seq, err := extract.ProjectDependencies(conf, owner)
		require.NoError(t, err)
		for range seq {
			break
		}

		assert.Equal(t, 1, conf.ResolveCount)
	})
}
