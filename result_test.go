package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResult(t *testing.T) {
	a := require.New(t)

	r := newResult()
	a.True(r.Valid())
	a.NoError(r.intoError())

	r.add("$", "type")
	r.add("$.a", "required")
	r.add("$", "minimum")
	a.False(r.Valid())
	a.Equal(map[string][]string{
		"$":   {"type", "minimum"},
		"$.a": {"required"},
	}, r.Errors)

	a.EqualError(r.intoError(), "$: type, minimum; $.a: required")
}

func TestResultFork(t *testing.T) {
	a := require.New(t)

	r := newResult()
	r.add("$", "type")

	f := r.fork()
	a.True(f.Valid())

	f.add("$.x", "enum")
	a.False(f.Valid())

	// Fork errors do not leak into the parent.
	a.Equal(map[string][]string{"$": {"type"}}, r.Errors)
}
