// SPDX-License-Identifier: MPL-2.0

package tools

// PathResolver resolves executable names against PATH.
// host.Runner satisfies it.
type PathResolver interface {
	LookPath(name string) (string, error)
}

// CheckResult is the probe outcome for one cataloged tool.
type CheckResult struct {
	Tool Tool
	// Path is the resolved location when found.
	Path string
	// Found reports whether the tool is on PATH.
	Found bool
}

// Check probes every cataloged tool against PATH. A missing tool is a
// result, not an error; the error covers catalog problems only.
func Check(resolver PathResolver) ([]CheckResult, error) {
	catalog, err := Catalog()
	if err != nil {
		return nil, err
	}

	results := make([]CheckResult, 0, len(catalog))
	for _, tool := range catalog {
		path, lookErr := resolver.LookPath(tool.Name)
		results = append(results, CheckResult{
			Tool:  tool,
			Path:  path,
			Found: lookErr == nil,
		})
	}

	return results, nil
}

// Missing filters results down to tools absent from PATH, optionally
// restricted to one kind ("" = all kinds).
func Missing(results []CheckResult, kind string) []CheckResult {
	var missing []CheckResult
	for _, res := range results {
		if res.Found {
			continue
		}
		if kind != "" && res.Tool.Kind != kind {
			continue
		}
		missing = append(missing, res)
	}
	return missing
}
