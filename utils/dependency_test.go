package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSquareDependency(t *testing.T) {
	t.Run("Should store no tags as nil", func(t *testing.T) {
		dep := NewSquareDependency("@maven://com.squareup:okio")

		assert.Nil(t, dep.Tags)
		assert.Equal(t, SquareDependency{Target: "@maven://com.squareup:okio"}, dep)
	})

	t.Run("Should sort and deduplicate tags", func(t *testing.T) {
		dep := NewSquareDependency("/lib", "b", TagTransitive, "b", " ", "a")

		assert.Equal(t, []string{"a", "b", TagTransitive}, dep.Tags)
	})

	t.Run("Should compare equal regardless of tag order", func(t *testing.T) {
		a := NewSquareDependency("/lib", "x", "y")
		b := NewSquareDependency("/lib", "y", "x")

		assert.True(t, a.Equal(b))
		assert.Equal(t, a.Key(), b.Key())
	})
}

func TestSquareDependency(t *testing.T) {
	t.Run("Should distinguish records by tags in Key", func(t *testing.T) {
		plain := NewSquareDependency("/lib")
		tagged := NewSquareDependency("/lib", TagTransitive)

		assert.NotEqual(t, plain.Key(), tagged.Key())
		assert.False(t, plain.Equal(tagged))
	})

	t.Run("Should render tags in String", func(t *testing.T) {
		assert.Equal(t, "/lib [transitive]", NewSquareDependency("/lib", TagTransitive).String())
		assert.Equal(t, "@maven://g:a", NewSquareDependency("@maven://g:a").String())
	})

	t.Run("Should tell projects from modules", func(t *testing.T) {
		assert.True(t, NewSquareDependency("/lib").IsProject())
		assert.False(t, NewSquareDependency("@maven://g:a").IsProject())
	})

	t.Run("Should reject empty targets", func(t *testing.T) {
		assert.ErrorIs(t, NewSquareDependency("  ").Validate(), ErrEmptyTarget)
		assert.NoError(t, NewSquareDependency("/").Validate())
	})
}

func TestMergeDependencies(t *testing.T) {
	t.Run("Should keep declared first and add missing resolved ones", func(t *testing.T) {
		declared := []SquareDependency{
			NewSquareDependency("@maven://g:a"),
			NewSquareDependency("/lib", TagTransitive),
			NewSquareDependency("@maven://g:a"),
		}
		resolved := []SquareDependency{
			NewSquareDependency("/lib"),
			NewSquareDependency("/other"),
			NewSquareDependency("/other"),
		}

		merged := MergeDependencies(declared, resolved)

		assert.Equal(t, []SquareDependency{
			NewSquareDependency("@maven://g:a"),
			NewSquareDependency("/lib", TagTransitive),
			NewSquareDependency("/lib"),
			NewSquareDependency("/other"),
		}, merged)
	})
}
