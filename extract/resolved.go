package extract

import (
	"iter"

	"square-deps/utils"
)

// ResolveIfResolvable resolves bucket only when it declares itself
// resolvable. Resolving a consumable-only bucket can force unrelated, even
// cyclic, resolution in the host, so that case returns NotResolvable without
// calling Resolve. Resolver errors are returned as is.
func ResolveIfResolvable(bucket Bucket) (Resolution, error) {
	if !bucket.Resolvable() {
		return NotResolvable{}, nil
	}
	artifacts, err := bucket.Resolve()
	if err != nil {
		return nil, err
	}
	return Resolved{Artifacts: artifacts}, nil
}

// ProjectDependencies resolves bucket (when allowed) and yields one record
// per distinct project found among the resolved artifacts, including
// projects of included builds. Artifacts of external modules are skipped;
// those are reported by Classify from the declarations. The records carry
// no tags.
//
// owner is the project owning bucket. Identity paths of resolved components
// are already absolute, so it does not affect the output.
func ProjectDependencies(bucket Bucket, owner BuildUnit) (iter.Seq[utils.SquareDependency], error) {
	res, err := ResolveIfResolvable(bucket)
	if err != nil {
		return nil, err
	}
	r, ok := res.(Resolved)
	if !ok {
		return func(func(utils.SquareDependency) bool) {}, nil
	}
	return projectRecords(r.Artifacts), nil
}

func projectRecords(artifacts []ResolvedArtifact) iter.Seq[utils.SquareDependency] {
	return func(yield func(utils.SquareDependency) bool) {
		seen := make(map[string]struct{})
		for _, a := range artifacts {
			id, ok := a.ID.(ProjectComponent)
			if !ok {
				continue
			}
			dep := utils.NewSquareDependency(CanonicalPath(id.IdentityPath))
			if _, dup := seen[dep.Key()]; dup {
				continue
			}
			seen[dep.Key()] = struct{}{}
			if !yield(dep) {
				return
			}
		}
	}
}
