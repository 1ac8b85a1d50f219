package extract

import (
	"iter"

	"square-deps/utils"
)

const (
	mavenScheme    = "@maven://"
	undefinedGroup = "undefined"
)

// Classify converts one raw declaration into its canonical record. owner is
// the project that declared it and anchors relative project paths.
//
// Every Declaration implementation provides its own mapping, so a new kind
// of declaration does not compile until it defines one.
func Classify(decl Declaration, owner BuildUnit) utils.SquareDependency {
	return decl.canonical(owner)
}

// ClassifyAll lazily classifies every declaration of bucket.
func ClassifyAll(bucket Bucket, owner BuildUnit) iter.Seq[utils.SquareDependency] {
	return func(yield func(utils.SquareDependency) bool) {
		for d := range Declarations(bucket) {
			if !yield(Classify(d, owner)) {
				return
			}
		}
	}
}

// ModuleTarget returns "@maven://group:name", with "undefined" standing in
// for a missing group.
func ModuleTarget(group string, hasGroup bool, name string) string {
	if !hasGroup {
		group = undefinedGroup
	}
	return mavenScheme + group + ":" + name
}

func (m ExternalModule) canonical(BuildUnit) utils.SquareDependency {
	return utils.NewSquareDependency(ModuleTarget(m.Group, m.HasGroup, m.Name))
}

// A project reference pulls in the referenced project's own declarations,
// hence the transitive tag.
func (p ProjectRef) canonical(owner BuildUnit) utils.SquareDependency {
	path := pathDelimiter
	if p.Unit != nil {
		path = ResolvePath(owner, p.Unit.Path())
	}
	return utils.NewSquareDependency(CanonicalPath(path), utils.TagTransitive)
}
