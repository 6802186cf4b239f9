package trace

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// enum is the shape shared by Level, Scope, Kind and StorageMode: small
// integers named by a table.
type enum interface{ ~uint8 }

func nameOf[E enum](names []string, v E) string {
	if int(v) < len(names) && names[v] != "" {
		return names[v]
	}
	return "unknown"
}

func parseName[E enum](names []string, what, s string) (E, error) {
	for i, name := range names {
		if name != "" && strings.EqualFold(name, s) {
			return E(i), nil
		}
	}
	valid := make([]string, 0, len(names))
	for _, name := range names {
		if name != "" {
			valid = append(valid, name)
		}
	}
	return 0, errors.Newf("invalid %s: %q (expected: %s)", what, s, strings.Join(valid, "|"))
}
