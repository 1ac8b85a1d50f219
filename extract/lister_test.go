package extract_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"square-deps/build"
	"square-deps/extract"
)

func TestDeclarations(t *testing.T) {
	okio := extract.Module("com.squareup.okio", "okio", "3.9.0")
	lib := extract.ProjectRef{Unit: &build.Project{ProjectPath: ":lib"}}

	t.Run("Should yield declarations in bucket order without filtering", func(t *testing.T) {
		conf := &build.Configuration{ConfigName: "implementation"}
		conf.Add(okio, lib)

		got := slices.Collect(extract.Declarations(conf))

		assert.Equal(t, []extract.Declaration{okio, lib}, got)
	})

	t.Run("Should re-read the bucket on every iteration", func(t *testing.T) {
		conf := &build.Configuration{ConfigName: "implementation"}
		seq := extract.Declarations(conf)
		assert.Empty(t, slices.Collect(seq))

		conf.Add(okio)
		assert.Len(t, slices.Collect(seq), 1)

		conf.Add(lib)
		assert.Len(t, slices.Collect(seq), 2)
	})

	t.Run("Should stop when the consumer stops", func(t *testing.T) {
		conf := &build.Configuration{ConfigName: "implementation"}
		conf.Add(okio, lib, okio)

		count := 0
		for range extract.Declarations(conf) {
			count++
			break
		}
		assert.Equal(t, 1, count)
	})

	t.Run("Should never resolve the bucket", func(t *testing.T) {
		conf := &build.Configuration{ConfigName: "runtimeClasspath", CanBeResolved: true}
		conf.Add(okio)

		_ = slices.Collect(extract.Declarations(conf))

		assert.Zero(t, conf.ResolveCount)
	})
}
