package extract

import "strings"

const (
	pathDelimiter      = ":"
	canonicalDelimiter = "/"
)

// CanonicalPath converts a colon-delimited project path to its canonical
// slash form: ":a:b" becomes "/a/b". Empty segments are dropped, so the root
// project ":" (or an empty path) becomes "/".
func CanonicalPath(path string) string {
	segments := splitPath(path)
	return canonicalDelimiter + strings.Join(segments, canonicalDelimiter)
}

// ResolvePath makes a project path absolute. Paths starting with ":" are
// already absolute; anything else is taken relative to owner.
func ResolvePath(owner BuildUnit, path string) string {
	if strings.HasPrefix(path, pathDelimiter) || owner == nil {
		return path
	}
	segments := append(splitPath(owner.Path()), splitPath(path)...)
	return pathDelimiter + strings.Join(segments, pathDelimiter)
}

func splitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, pathDelimiter) {
		if s = strings.TrimSpace(s); s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
