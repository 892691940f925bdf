package jsonschema

import (
	"github.com/dlclark/regexp2"

	"github.com/go-faster/errors"
)

// Regexp is a compiled "pattern"/"patternProperties" regular expression.
//
// The standard defines patterns in terms of ECMA-262, which Go's regexp
// package does not speak, so regexp2 in ECMAScript mode is used instead.
type Regexp struct {
	re *regexp2.Regexp
}

func compileRegex(expr string) (*Regexp, error) {
	re, err := regexp2.Compile(expr, regexp2.ECMAScript)
	if err != nil {
		return nil, errors.Wrapf(err, "compile %q", expr)
	}
	return &Regexp{re: re}, nil
}

// Match reports whether the expression matches anywhere in s.
func (r *Regexp) Match(s string) bool {
	ok, err := r.re.MatchString(s)
	return err == nil && ok
}

// String returns the source expression.
func (r *Regexp) String() string {
	return r.re.String()
}
