// Package build is an in-memory build model implementing the extract
// contracts: a tree of projects, each owning named configurations.
package build

import (
	"iter"
	"slices"

	"square-deps/extract"
)

// Configuration is a named dependency bucket.
type Configuration struct {
	ConfigName    string
	CanBeResolved bool
	Dependencies  []extract.Declaration
	// Artifacts is what the resolver returns for this configuration.
	Artifacts []extract.ResolvedArtifact
	// ResolveErr, when set, is returned by Resolve instead of Artifacts.
	ResolveErr error
	// ResolveCount counts calls to Resolve.
	ResolveCount int
}

func (c *Configuration) Name() string     { return c.ConfigName }
func (c *Configuration) Resolvable() bool { return c.CanBeResolved }

func (c *Configuration) Declarations() iter.Seq[extract.Declaration] {
	return func(yield func(extract.Declaration) bool) {
		for _, d := range c.Dependencies {
			if !yield(d) {
				return
			}
		}
	}
}

// Resolve returns the configured artifacts. Resolving a configuration that
// cannot be resolved is a caller bug and panics, like the host would throw.
func (c *Configuration) Resolve() ([]extract.ResolvedArtifact, error) {
	if !c.CanBeResolved {
		panic("build: resolving configuration " + c.ConfigName + " is not allowed")
	}
	c.ResolveCount++
	if c.ResolveErr != nil {
		return nil, c.ResolveErr
	}
	return slices.Clone(c.Artifacts), nil
}

// Add appends declarations to the configuration.
func (c *Configuration) Add(decls ...extract.Declaration) *Configuration {
	c.Dependencies = append(c.Dependencies, decls...)
	return c
}

// Project is a node of the build tree.
type Project struct {
	ProjectPath    string
	Configurations []*Configuration
}

func (p *Project) Path() string { return p.ProjectPath }

// Configuration looks up a configuration by name.
func (p *Project) Configuration(name string) (*Configuration, bool) {
	for _, c := range p.Configurations {
		if c.ConfigName == name {
			return c, true
		}
	}
	return nil, false
}

// EnsureConfiguration returns the named configuration, creating a
// non-resolvable one when missing.
func (p *Project) EnsureConfiguration(name string) *Configuration {
	if c, ok := p.Configuration(name); ok {
		return c
	}
	c := &Configuration{ConfigName: name}
	p.Configurations = append(p.Configurations, c)
	return c
}

// Build is a build tree, possibly with included builds attached.
type Build struct {
	Name     string
	Projects []*Project
	Included []*Build
}

// New returns a build holding only its root project ":".
func New(name string) *Build {
	return &Build{Name: name, Projects: []*Project{{ProjectPath: ":"}}}
}

// Root returns the root project, or nil when the build has none.
func (b *Build) Root() *Project {
	p, _ := b.Project(":")
	return p
}

// Project looks up a project of this build by path.
func (b *Build) Project(path string) (*Project, bool) {
	for _, p := range b.Projects {
		if p.ProjectPath == path {
			return p, true
		}
	}
	return nil, false
}

// EnsureProject returns the project at path, creating it when missing.
func (b *Build) EnsureProject(path string) *Project {
	if p, ok := b.Project(path); ok {
		return p
	}
	p := &Project{ProjectPath: path}
	b.Projects = append(b.Projects, p)
	return p
}

// AllProjects yields the projects of the primary build in declaration order.
func (b *Build) AllProjects() iter.Seq[*Project] {
	return slices.Values(b.Projects)
}

// IncludedBuild looks up an included build by name.
func (b *Build) IncludedBuild(name string) (*Build, bool) {
	for _, ib := range b.Included {
		if ib.Name == name {
			return ib, true
		}
	}
	return nil, false
}

// IdentityPath is how a project of an included build appears in resolved
// component identities: the build name followed by the project path.
func IdentityPath(buildName, projectPath string) string {
	if projectPath == ":" {
		return ":" + buildName
	}
	return ":" + buildName + projectPath
}
