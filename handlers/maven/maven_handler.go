package mavenhandler

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"square-deps/build"
	"square-deps/extract"
	"square-deps/utils"
)

// ---------------------------
// Maven Handler
// ---------------------------
//
// Reads a pom.xml and the <modules> it lists, recursively. Each module
// becomes a project (directory "a/b" is project ":a:b"). A dependency on
// another module of the reactor becomes a project reference; everything
// else is an external module. Dependencies are bucketed by scope.
type MavenHandler struct {
	Logger *utils.Logger
}

const defaultScope = "compile"

func (h *MavenHandler) Name() string {
	return "Maven"
}

// Detect checks for a pom.xml in dir
func (h *MavenHandler) Detect(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "pom.xml"))
	return err == nil && !info.IsDir()
}

// module is a parsed pom plus where it sits in the reactor
type module struct {
	path string // project path, ":" for the root pom
	pom  Pom
}

// Load parses the root pom and its modules
func (h *MavenHandler) Load(dir string) (*build.Build, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve build path: %w", err)
	}

	// 1) Walk the module tree
	var modules []module
	if err := h.collect(abs, "", ":", &modules); err != nil {
		return nil, err
	}

	// 2) Index reactor coordinates so sibling dependencies become project refs
	b := build.New(filepath.Base(abs))
	byCoord := make(map[string]*build.Project)
	for _, m := range modules {
		p := b.EnsureProject(m.path)
		byCoord[m.pom.Group()+":"+m.pom.ArtifactID] = p
	}

	// 3) Declarations per scope
	for _, m := range modules {
		p := b.EnsureProject(m.path)
		for _, d := range m.pom.Dependencies {
			scope := strings.TrimSpace(d.Scope)
			if scope == "" {
				scope = defaultScope
			}
			conf := p.EnsureConfiguration(scope)
			group := m.pom.ExpandGroup(d.GroupID)
			if target, ok := byCoord[group+":"+d.ArtifactID]; ok {
				conf.Add(extract.ProjectRef{Unit: target})
				continue
			}
			if group == "" {
				conf.Add(extract.ModuleWithoutGroup(d.ArtifactID, d.Version))
			} else {
				conf.Add(extract.Module(group, d.ArtifactID, d.Version))
			}
		}
		h.Logger.Debugf("[MavenHandler] %s: %d dependencies", m.path, len(m.pom.Dependencies))
	}
	return b, nil
}

func (h *MavenHandler) collect(root, rel, path string, out *[]module) error {
	pomPath := filepath.Join(root, rel, "pom.xml")
	pom, err := ParsePom(pomPath)
	if err != nil {
		return err
	}
	*out = append(*out, module{path: path, pom: pom})

	for _, name := range pom.Modules {
		childRel := filepath.Join(rel, filepath.FromSlash(strings.TrimSpace(name)))
		if _, err := os.Stat(filepath.Join(root, childRel, "pom.xml")); err != nil {
			h.Logger.Warnf("[MavenHandler] module %s has no pom.xml, skipping", childRel)
			continue
		}
		if err := h.collect(root, childRel, modulePath(childRel), out); err != nil {
			return err
		}
	}
	return nil
}

// modulePath maps "a/b" to ":a:b"
func modulePath(rel string) string {
	rel = filepath.ToSlash(filepath.Clean(rel))
	return ":" + strings.ReplaceAll(rel, "/", ":")
}

// ---------------------------
// Maven Helpers
// ---------------------------

type Pom struct {
	XMLName      xml.Name   `xml:"project"`
	GroupID      string     `xml:"groupId"`
	ArtifactID   string     `xml:"artifactId"`
	Parent       PomParent  `xml:"parent"`
	Modules      []string   `xml:"modules>module"`
	Dependencies []MavenDep `xml:"dependencies>dependency"`
}

type PomParent struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
}

type MavenDep struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope,omitempty"`
}

// Group returns the pom's groupId, inherited from the parent when omitted
func (p Pom) Group() string {
	if p.GroupID != "" {
		return p.GroupID
	}
	return p.Parent.GroupID
}

// ExpandGroup substitutes the groupId properties a module may use to refer
// to its reactor siblings, such as ${project.groupId}.
func (p Pom) ExpandGroup(group string) string {
	parent := p.Parent.GroupID
	if parent == "" {
		parent = p.Group()
	}
	return strings.NewReplacer(
		"${project.groupId}", p.Group(),
		"${pom.groupId}", p.Group(),
		"${groupId}", p.Group(),
		"${project.parent.groupId}", parent,
	).Replace(strings.TrimSpace(group))
}

func ParsePom(pomPath string) (Pom, error) {
	data, err := os.ReadFile(pomPath)
	if err != nil {
		return Pom{}, fmt.Errorf("failed to read pom.xml: %w", err)
	}
	var pom Pom
	if err := xml.Unmarshal(data, &pom); err != nil {
		return Pom{}, fmt.Errorf("invalid pom.xml %s: %w", pomPath, err)
	}
	return pom, nil
}
