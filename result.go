package jsonschema

import (
	"sort"
	"strings"

	"github.com/go-faster/errors"
)

// Result holds every violation found during a Validate call.
//
// Errors maps instance locations to the keyword tags violated there, in
// the order they were recorded. Locations start at "$" and grow with
// ".<name>" for object members and ".<index>" for array elements.
type Result struct {
	Errors map[string][]string
}

func newResult() *Result {
	return &Result{Errors: map[string][]string{}}
}

// Valid reports whether the instance conforms to the schema.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

func (r *Result) add(path, tag string) {
	r.Errors[path] = append(r.Errors[path], tag)
}

// fork creates a sibling result with no errors. Combinators validate
// branches into forks so branch errors do not leak into the caller.
func (r *Result) fork() *Result {
	return newResult()
}

// intoError flattens the result into a single error, one "path: tags"
// clause per location, sorted by path.
func (r *Result) intoError() error {
	if r.Valid() {
		return nil
	}

	paths := make([]string, 0, len(r.Errors))
	for p := range r.Errors {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var sb strings.Builder
	for i, p := range paths {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(p)
		sb.WriteString(": ")
		sb.WriteString(strings.Join(r.Errors[p], ", "))
	}
	return errors.New(sb.String())
}

func descend(path, token string) string {
	return path + "." + token
}
