package handlers

import (
	"errors"
	"fmt"

	"square-deps/build"
	gradlehandler "square-deps/handlers/gradle"
	mavenhandler "square-deps/handlers/maven"
	snapshothandler "square-deps/handlers/snapshot"
	"square-deps/utils"
)

// ErrNoLoader is returned when no registered loader recognizes a path.
var ErrNoLoader = errors.New("no loader recognizes path")

// Loader turns something on disk into an in-memory build.
type Loader interface {
	Name() string
	Detect(path string) bool
	Load(path string) (*build.Build, error)
}

// GetLoaders returns all registered loaders, snapshot files first. A
// directory holding both Gradle and Maven files is read as Gradle.
func GetLoaders(logger *utils.Logger) []Loader {
	loaders := []Loader{
		&snapshothandler.SnapshotHandler{},
		&gradlehandler.GradleHandler{Logger: logger},
		&mavenhandler.MavenHandler{Logger: logger},
	}

	for _, l := range loaders {
		logger.Debugf("[Init] Registered loader: %s", l.Name())
	}

	return loaders
}

// Load picks the first loader that detects path and loads it.
func Load(logger *utils.Logger, path string) (*build.Build, error) {
	for _, l := range GetLoaders(logger) {
		if !l.Detect(path) {
			continue
		}
		logger.Infof("Loading %s with %s loader", path, l.Name())
		b, err := l.Load(path)
		if err != nil {
			return nil, fmt.Errorf("%s loader: %w", l.Name(), err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoLoader, path)
}
