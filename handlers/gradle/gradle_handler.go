package gradlehandler

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"square-deps/build"
	"square-deps/extract"
	"square-deps/utils"
)

// ---------------------------
// Gradle Handler (static scan)
// ---------------------------
//
// Reads settings.gradle(.kts) and build.gradle(.kts) files without running
// Gradle. Nothing is resolved, so every configuration it produces is
// declared non-resolvable.
type GradleHandler struct {
	Logger *utils.Logger
}

var (
	settingsFiles = []string{"settings.gradle", "settings.gradle.kts"}
	buildFiles    = []string{"build.gradle", "build.gradle.kts"}
)

func (h *GradleHandler) Name() string {
	return "Gradle"
}

// Detect checks for a settings or build script in dir
func (h *GradleHandler) Detect(dir string) bool {
	return firstExisting(dir, settingsFiles) != "" || firstExisting(dir, buildFiles) != ""
}

// Load scans dir and any builds it includes
func (h *GradleHandler) Load(dir string) (*build.Build, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve build path: %w", err)
	}
	return h.load(abs, map[string]bool{})
}

func (h *GradleHandler) load(dir string, visited map[string]bool) (*build.Build, error) {
	visited[dir] = true
	b := build.New(filepath.Base(dir))

	// 1) Project layout: settings includes, else any build script in the tree
	var includedBuilds []string
	if settings := firstExisting(dir, settingsFiles); settings != "" {
		s, err := ParseSettingsGradle(settings)
		if err != nil {
			return nil, err
		}
		for _, p := range s.Projects {
			// including ":a:b" implies ":a"
			for _, parent := range parentPaths(p) {
				b.EnsureProject(parent)
			}
			b.EnsureProject(p)
		}
		includedBuilds = s.IncludedBuilds
	} else {
		found, err := utils.FindFiles(dir, "**/build.gradle", "**/build.gradle.kts")
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			b.EnsureProject(projectPathForDir(filepath.Dir(f)))
		}
	}

	// 2) Declarations per project
	for p := range b.AllProjects() {
		script := firstExisting(filepath.Join(dir, projectDir(p.Path())), buildFiles)
		if script == "" {
			h.Logger.Debugf("[GradleHandler] %s has no build script", p.Path())
			continue
		}
		decls, err := ParseGradle(h.Logger, script)
		if err != nil {
			h.Logger.Warnf("[GradleHandler] failed to parse %s: %v", script, err)
			continue
		}
		for _, d := range decls {
			conf := p.EnsureConfiguration(d.Configuration)
			if d.ProjectPath != "" {
				conf.Add(extract.ProjectRef{Unit: b.EnsureProject(extract.ResolvePath(p, d.ProjectPath))})
			} else {
				conf.Add(d.Module)
			}
		}
		h.Logger.Debugf("[GradleHandler] %s: %d declarations", p.Path(), len(decls))
	}

	// 3) Included builds, loaded recursively
	for _, rel := range includedBuilds {
		incDir := filepath.Clean(filepath.Join(dir, rel))
		if visited[incDir] {
			continue
		}
		ib, err := h.load(incDir, visited)
		if err != nil {
			return nil, fmt.Errorf("included build %s: %w", rel, err)
		}
		b.Included = append(b.Included, ib)
	}
	return b, nil
}

// ---------------------------
// Helper Utilities
// ---------------------------

func firstExisting(dir string, names []string) string {
	for _, n := range names {
		p := filepath.Join(dir, n)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// projectDir maps ":a:b" to "a/b" (root maps to ".")
func projectDir(path string) string {
	trimmed := strings.Trim(path, ":")
	if trimmed == "" {
		return "."
	}
	return filepath.Join(strings.Split(trimmed, ":")...)
}

func parentPaths(path string) []string {
	segments := strings.Split(strings.Trim(path, ":"), ":")
	var parents []string
	for i := 1; i < len(segments); i++ {
		parents = append(parents, ":"+strings.Join(segments[:i], ":"))
	}
	return parents
}

// projectPathForDir maps "a/b" to ":a:b" (and "." to ":")
func projectPathForDir(rel string) string {
	rel = filepath.ToSlash(filepath.Clean(rel))
	if rel == "." || rel == "" {
		return ":"
	}
	return ":" + strings.ReplaceAll(rel, "/", ":")
}

// ---------------------------
// Build script parser
// ---------------------------

// Declaration is one dependency line of a build script
type Declaration struct {
	Configuration string
	Module        extract.ExternalModule // set for module notations
	ProjectPath   string                 // set for project(...) notations
}

var (
	dependenciesBlockRegex = regexp.MustCompile(`^\s*dependencies\s*\{`)
	// implementation project(':lib') / implementation(project(path = ":lib"))
	gradleProjectRegex = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*\(?\s*project\s*\(\s*(?:path\s*[:=]\s*)?['"]([^'"]+)['"]`)
	// implementation group: 'g', name: 'a', version: 'v'
	gradleMapRegex = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*\(?\s*group\s*[:=]\s*['"]([^'"]*)['"]\s*,\s*name\s*[:=]\s*['"]([^'"]+)['"](?:\s*,\s*version\s*[:=]\s*['"]([^'"]*)['"])?`)
	// implementation 'g:a:v' / implementation("g:a:v")
	gradleDepRegex = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*\(?\s*['"]([^'"]*:[^'"]*)['"]`)
)

// ParseGradle returns the dependency declarations of a single build.gradle
// or build.gradle.kts, in file order. Only lines inside a top-level
// dependencies { } block are considered. Coordinates that cannot be read
// are skipped with a warning.
func ParseGradle(logger *utils.Logger, path string) ([]Declaration, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var decls []Declaration
	depth := 0   // brace depth of the whole file
	inDeps := -1 // depth of the open dependencies block, -1 when outside
	inComment := false
	lineNo := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		var line string
		line, inComment = stripComments(scanner.Text(), inComment)

		if inDeps < 0 && depth == 0 && dependenciesBlockRegex.MatchString(line) {
			inDeps = depth
		} else if inDeps >= 0 && depth == inDeps+1 {
			d, ok, err := parseDependencyLine(line)
			switch {
			case err != nil:
				logger.Warnf("[GradleHandler] %s:%d: skipping dependency: %v", path, lineNo, err)
			case ok:
				decls = append(decls, d)
			}
		}

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if inDeps >= 0 && depth <= inDeps {
			inDeps = -1
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return decls, nil
}

// parseDependencyLine reports ok=false for lines that are not a dependency
// notation, and an error for a notation whose coordinate is unusable.
func parseDependencyLine(line string) (Declaration, bool, error) {
	if m := gradleProjectRegex.FindStringSubmatch(line); m != nil {
		return Declaration{Configuration: m[1], ProjectPath: m[2]}, true, nil
	}
	if m := gradleMapRegex.FindStringSubmatch(line); m != nil {
		mod := extract.Module(m[2], m[3], m[4])
		if m[2] == "" {
			mod = extract.ModuleWithoutGroup(m[3], m[4])
		}
		return Declaration{Configuration: m[1], Module: mod}, true, nil
	}
	if m := gradleDepRegex.FindStringSubmatch(line); m != nil {
		mod, err := ParseNotation(m[2])
		if err != nil {
			return Declaration{}, false, err
		}
		return Declaration{Configuration: m[1], Module: mod}, true, nil
	}
	return Declaration{}, false, nil
}

// ParseNotation reads a Gradle string notation "group:name[:version[:classifier]][@ext]".
// Only group, name and version are kept.
func ParseNotation(notation string) (extract.ExternalModule, error) {
	coord, _, _ := strings.Cut(strings.TrimSpace(notation), "@")
	parts := strings.Split(coord, ":")
	if len(parts) < 2 {
		return extract.ExternalModule{}, fmt.Errorf("malformed module notation %q", notation)
	}
	if parts[1] == "" {
		return extract.ExternalModule{}, fmt.Errorf("module notation %q has no name", notation)
	}
	version := ""
	if len(parts) > 2 {
		version = parts[2]
	}
	if parts[0] == "" {
		return extract.ModuleWithoutGroup(parts[1], version), nil
	}
	return extract.Module(parts[0], parts[1], version), nil
}

// stripComments drops // and /* */ comments from line. inBlock tells whether
// line starts inside a block comment; the returned flag whether the next
// line does. Quoted text is kept as is.
func stripComments(line string, inBlock bool) (string, bool) {
	var sb strings.Builder
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		next := byte(0)
		if i+1 < len(line) {
			next = line[i+1]
		}
		switch {
		case inBlock:
			if c == '*' && next == '/' {
				inBlock = false
				i++
			}
		case quote != 0:
			sb.WriteByte(c)
			if c == '\\' && next != 0 {
				sb.WriteByte(next)
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
			sb.WriteByte(c)
		case c == '/' && next == '/':
			return sb.String(), false
		case c == '/' && next == '*':
			inBlock = true
			i++
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), inBlock
}

// ---------------------------
// Settings.gradle parser
// ---------------------------

// Settings is what a settings script declares
type Settings struct {
	Projects       []string // project paths, e.g. ":lib:core"
	IncludedBuilds []string // directories relative to the settings file
}

var (
	settingsIncludeRegex      = regexp.MustCompile(`(?m)^\s*include\b\s*\(?(.+)$`)
	settingsIncludeBuildRegex = regexp.MustCompile(`(?m)^\s*includeBuild\s*\(?\s*['"]([^'"]+)['"]`)
	quotedRegex               = regexp.MustCompile(`['"]([^'"]+)['"]`)
)

// ParseSettingsGradle extracts included projects like ':moduleA' (made
// absolute) and includeBuild directories
func ParseSettingsGradle(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var s Settings
	for _, m := range settingsIncludeRegex.FindAllStringSubmatch(string(data), -1) {
		// includes can be: include ':a', ':b'  /  include(":a", ":b")
		for _, q := range quotedRegex.FindAllStringSubmatch(m[1], -1) {
			p := strings.TrimSpace(q[1])
			if p == "" {
				continue
			}
			if !strings.HasPrefix(p, ":") {
				p = ":" + p
			}
			s.Projects = append(s.Projects, p)
		}
	}
	for _, m := range settingsIncludeBuildRegex.FindAllStringSubmatch(string(data), -1) {
		s.IncludedBuilds = append(s.IncludedBuilds, m[1])
	}
	return s, nil
}
