// Package extract turns the dependency objects a build exposes into
// canonical utils.SquareDependency records.
//
// The build itself (projects, configurations, the resolver) is not modelled
// here. It is reached through the small BuildUnit and Bucket contracts below;
// package build provides an in-memory implementation.
package extract

import (
	"iter"

	"square-deps/utils"
)

// BuildUnit is a project of the build tree, identified by a colon-delimited
// path such as ":" or ":lib:core".
type BuildUnit interface {
	Path() string
}

// Bucket is a named collection of dependency declarations owned by a build
// unit (a Gradle configuration).
type Bucket interface {
	Name() string
	// Resolvable reports whether Resolve may be called at all.
	Resolvable() bool
	// Declarations yields the raw declarations in registration order. Every
	// call starts a fresh iteration over the current state.
	Declarations() iter.Seq[Declaration]
	// Resolve runs the host resolver. Only valid when Resolvable is true.
	Resolve() ([]ResolvedArtifact, error)
}

// Declaration is a raw, unresolved dependency declaration. The set of
// implementations is closed: ExternalModule and ProjectRef.
type Declaration interface {
	canonical(owner BuildUnit) utils.SquareDependency
}

// ExternalModule declares a library by coordinates. Group is optional.
type ExternalModule struct {
	Group    string
	HasGroup bool
	Name     string
	Version  string
}

// Module declares an external module with a group.
func Module(group, name, version string) ExternalModule {
	return ExternalModule{Group: group, HasGroup: true, Name: name, Version: version}
}

// ModuleWithoutGroup declares an external module whose group is undefined.
func ModuleWithoutGroup(name, version string) ExternalModule {
	return ExternalModule{Name: name, Version: version}
}

// ProjectRef declares a dependency on another project of the build.
type ProjectRef struct {
	Unit BuildUnit
}

// ComponentIdentity identifies what a resolved artifact came from. The set of
// implementations is closed: ExternalComponent and ProjectComponent.
type ComponentIdentity interface {
	isComponentIdentity()
}

// ExternalComponent is a module fetched from a repository.
type ExternalComponent struct {
	Group   string
	Name    string
	Version string
}

// ProjectComponent is a project of this build or of an included build.
// IdentityPath is colon-delimited; for included builds it starts with the
// included build's name, e.g. ":includeBuild:project:path".
type ProjectComponent struct {
	IdentityPath string
}

func (ExternalComponent) isComponentIdentity() {}
func (ProjectComponent) isComponentIdentity()  {}

// ResolvedArtifact is one file produced by resolving a bucket.
type ResolvedArtifact struct {
	ID   ComponentIdentity
	File string
}

// Resolution is the outcome of ResolveIfResolvable: NotResolvable or Resolved.
type Resolution interface {
	isResolution()
}

// NotResolvable means the bucket must not be resolved; nothing was touched.
type NotResolvable struct{}

// Resolved carries the artifacts returned by the host resolver.
type Resolved struct {
	Artifacts []ResolvedArtifact
}

func (NotResolvable) isResolution() {}
func (Resolved) isResolution()      {}
