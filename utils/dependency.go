package utils

import (
	"errors"
	"slices"
	"strings"
)

// TagTransitive marks a dependency that brings its own dependency set with it
// (a reference to another project of the build).
const TagTransitive = "transitive"

// ErrEmptyTarget is returned by Validate for a record without a target.
var ErrEmptyTarget = errors.New("dependency target is empty")

// SquareDependency is the canonical form of a dependency: a stable target
// string plus a set of tags.
//
// Targets come in two shapes:
//   - external modules: "@maven://group:artifact"
//   - projects of the build: "/path/to/project"
type SquareDependency struct {
	Target string   `json:"target" yaml:"target"`
	Tags   []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// NewSquareDependency builds a record with its tags sorted and de-duplicated.
// An empty tag set is stored as nil so equal records compare equal.
func NewSquareDependency(target string, tags ...string) SquareDependency {
	var set []string
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		set = append(set, t)
	}
	slices.Sort(set)
	set = slices.Compact(set)
	if len(set) == 0 {
		set = nil
	}
	return SquareDependency{Target: target, Tags: set}
}

// Key identifies the record for de-duplication (target plus tags).
func (d SquareDependency) Key() string {
	if len(d.Tags) == 0 {
		return d.Target
	}
	return d.Target + "#" + strings.Join(d.Tags, ",")
}

// Equal reports whether both records carry the same target and tags.
func (d SquareDependency) Equal(other SquareDependency) bool {
	return d.Target == other.Target && slices.Equal(d.Tags, other.Tags)
}

// HasTag reports whether tag is present.
func (d SquareDependency) HasTag(tag string) bool {
	return slices.Contains(d.Tags, tag)
}

// IsProject reports whether the target names a project rather than a module.
func (d SquareDependency) IsProject() bool {
	return strings.HasPrefix(d.Target, "/")
}

func (d SquareDependency) String() string {
	if len(d.Tags) == 0 {
		return d.Target
	}
	return d.Target + " [" + strings.Join(d.Tags, ", ") + "]"
}

// Validate ensures the record has a usable target.
func (d SquareDependency) Validate() error {
	if strings.TrimSpace(d.Target) == "" {
		return ErrEmptyTarget
	}
	return nil
}
