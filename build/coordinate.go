package build

import (
	"errors"
	"fmt"
	"strings"

	"square-deps/extract"
)

// ParseCoordinate parses "group:name[:version]", "name" or ":name[:version]".
// The last two forms have no group.
func ParseCoordinate(coord string) (extract.ExternalModule, error) {
	parts := strings.Split(strings.TrimSpace(coord), ":")
	switch len(parts) {
	case 1:
		if parts[0] == "" {
			return extract.ExternalModule{}, errors.New("empty module coordinate")
		}
		return extract.ModuleWithoutGroup(parts[0], ""), nil
	case 2, 3:
		version := ""
		if len(parts) == 3 {
			version = parts[2]
		}
		if parts[1] == "" {
			return extract.ExternalModule{}, fmt.Errorf("module coordinate %q has no name", coord)
		}
		if parts[0] == "" {
			return extract.ModuleWithoutGroup(parts[1], version), nil
		}
		return extract.Module(parts[0], parts[1], version), nil
	}
	return extract.ExternalModule{}, fmt.Errorf("malformed module coordinate %q", coord)
}
