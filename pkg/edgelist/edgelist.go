// Package edgelist loads dependency graphs from a plain text edge-list
// format, mainly used to exercise cratewalk without network access.
//
// One record per line:
//
//	name: dep1 dep2 dep3
//
// Dependency tokens are separated by arbitrary whitespace. Blank lines,
// lines starting with '#', and lines without a colon are skipped silently.
// The left-hand name is trimmed of surrounding whitespace; dependency
// tokens are taken verbatim - no normalization or quoting.
package edgelist

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/cratewalk/cratewalk/pkg/depgraph"
	"github.com/cratewalk/cratewalk/pkg/errors"
)

// Parse reads the edge-list format from r into a graph. Malformed lines
// are skipped; every dependency token is registered as a node even if it
// never appears on the left-hand side.
func Parse(r io.Reader) (*depgraph.Graph, error) {
	g := depgraph.New()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		name, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		g.EnsureNode(name)
		for _, dep := range strings.Fields(rest) {
			g.AddEdge(name, dep)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read edge list")
	}
	return g, nil
}

// ParseFile reads the edge-list format from the file at path.
func ParseFile(path string) (*depgraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return Parse(f)
}
