package build

import (
	"strings"

	"github.com/jakoblorz/go-factory/internal/graph"
	"github.com/jakoblorz/go-factory/internal/models"
)

// CollectHeaders walks project and its dependencies once each and returns
// their include directories in discovery order, together with the union of
// their platform libraries.
func CollectHeaders(project *models.Project) ([]string, models.StdlibMask) {
	var headers []string
	var mask models.StdlibMask

	graph.Walk(project, func(p *models.Project) bool {
		for _, h := range p.Headers {
			headers = append(headers, projectPath(p, h))
		}
		mask |= p.Stdlib
		return true
	})

	return headers, mask
}

// projectPath resolves rel against the project location; "." stays implicit.
func projectPath(p *models.Project, rel string) string {
	if p.Path == "" || p.Path == "." {
		return rel
	}
	if rel == "" || rel == "." {
		return p.Path
	}
	return strings.TrimSuffix(p.Path, "/") + "/" + rel
}
