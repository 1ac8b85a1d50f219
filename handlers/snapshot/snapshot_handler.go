package snapshothandler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"square-deps/build"
	"square-deps/extract"
)

// ---------------------------
// Snapshot Handler
// ---------------------------
//
// A snapshot is a dump of a build's projects, configurations, declared
// dependencies and (for resolvable configurations) resolved artifacts.
type SnapshotHandler struct{}

func (h *SnapshotHandler) Name() string { return "Snapshot" }

// Detect accepts a YAML or TOML file
func (h *SnapshotHandler) Detect(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return formatOf(path) != ""
}

// Load reads the snapshot at path into a build
func (h *SnapshotHandler) Load(path string) (*build.Build, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var doc Snapshot
	switch formatOf(path) {
	case "yaml":
		err = yaml.Unmarshal(data, &doc)
	case "toml":
		err = toml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("unsupported snapshot format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot %s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc.Build()
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	}
	return ""
}

// ---------------------------
// Document model
// ---------------------------

type Snapshot struct {
	Name     string     `yaml:"name" toml:"name"`
	Projects []Project  `yaml:"projects" toml:"projects"`
	Included []Snapshot `yaml:"included" toml:"included"`
}

type Project struct {
	Path           string          `yaml:"path" toml:"path"`
	Configurations []Configuration `yaml:"configurations" toml:"configurations"`
}

type Configuration struct {
	Name         string       `yaml:"name" toml:"name"`
	Resolvable   bool         `yaml:"resolvable" toml:"resolvable"`
	ResolveError string       `yaml:"resolveError" toml:"resolveError"`
	Dependencies []Dependency `yaml:"dependencies" toml:"dependencies"`
	Artifacts    []Artifact   `yaml:"artifacts" toml:"artifacts"`
}

// Dependency is either a module coordinate ("group:name:version") or a
// project path (":lib"). Group, Name and Version may be given separately.
type Dependency struct {
	Module  string `yaml:"module" toml:"module"`
	Group   string `yaml:"group" toml:"group"`
	Name    string `yaml:"name" toml:"name"`
	Version string `yaml:"version" toml:"version"`
	Project string `yaml:"project" toml:"project"`
}

// Artifact is a resolved file, identified by a module coordinate or a
// project identity path (":includeBuild:project:path").
type Artifact struct {
	Module  string `yaml:"module" toml:"module"`
	Project string `yaml:"project" toml:"project"`
	File    string `yaml:"file" toml:"file"`
}

// Build converts the document into an in-memory build
func (s Snapshot) Build() (*build.Build, error) {
	b := build.New(s.Name)
	for _, p := range s.Projects {
		if p.Path == "" {
			return nil, fmt.Errorf("snapshot %s: project without path", s.Name)
		}
		proj := b.EnsureProject(p.Path)
		for _, c := range p.Configurations {
			if c.Name == "" {
				return nil, fmt.Errorf("snapshot %s: project %s: configuration without name", s.Name, p.Path)
			}
			conf := proj.EnsureConfiguration(c.Name)
			conf.CanBeResolved = c.Resolvable
			if c.ResolveError != "" {
				conf.ResolveErr = errors.New(c.ResolveError)
			}
			for i, d := range c.Dependencies {
				decl, err := d.declaration(b, proj)
				if err != nil {
					return nil, fmt.Errorf("snapshot %s: %s %s dependency %d: %w", s.Name, p.Path, c.Name, i, err)
				}
				conf.Add(decl)
			}
			for i, a := range c.Artifacts {
				art, err := a.artifact()
				if err != nil {
					return nil, fmt.Errorf("snapshot %s: %s %s artifact %d: %w", s.Name, p.Path, c.Name, i, err)
				}
				conf.Artifacts = append(conf.Artifacts, art)
			}
		}
	}
	for _, inc := range s.Included {
		ib, err := inc.Build()
		if err != nil {
			return nil, err
		}
		b.Included = append(b.Included, ib)
	}
	return b, nil
}

// Relative project paths are anchored on the declaring project.
func (d Dependency) declaration(b *build.Build, owner *build.Project) (extract.Declaration, error) {
	switch {
	case d.Project != "":
		return extract.ProjectRef{Unit: b.EnsureProject(extract.ResolvePath(owner, d.Project))}, nil
	case d.Module != "":
		return build.ParseCoordinate(d.Module)
	case d.Name != "":
		if d.Group == "" {
			return extract.ModuleWithoutGroup(d.Name, d.Version), nil
		}
		return extract.Module(d.Group, d.Name, d.Version), nil
	}
	return nil, errors.New("neither module, name nor project set")
}

func (a Artifact) artifact() (extract.ResolvedArtifact, error) {
	switch {
	case a.Project != "":
		return extract.ResolvedArtifact{ID: extract.ProjectComponent{IdentityPath: a.Project}, File: a.File}, nil
	case a.Module != "":
		m, err := build.ParseCoordinate(a.Module)
		if err != nil {
			return extract.ResolvedArtifact{}, err
		}
		return extract.ResolvedArtifact{
			ID:   extract.ExternalComponent{Group: m.Group, Name: m.Name, Version: m.Version},
			File: a.File,
		}, nil
	}
	return extract.ResolvedArtifact{}, errors.New("neither module nor project set")
}
