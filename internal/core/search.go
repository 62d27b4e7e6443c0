package core

import (
	"path"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// MatchNames filters names by a glob pattern (`*`, `?`, `[...]`).
// Read-only; the input slice is assumed sorted and the output keeps
// its order.
func MatchNames(names []string, pattern string) ([]string, error) {
	var matched []string
	for _, name := range names {
		ok, err := path.Match(pattern, name)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid glob pattern " + pattern).
				WithCause(err)
		}
		if ok {
			matched = append(matched, name)
		}
	}
	return matched, nil
}
