package jsonschema

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"
)

type mapResolver map[string][]byte

func (m mapResolver) Resolve(_ context.Context, loc string) ([]byte, error) {
	data, ok := m[loc]
	if !ok {
		return nil, errors.Errorf("unknown location %q", loc)
	}
	return data, nil
}

func TestRemoteRef(t *testing.T) {
	a := require.New(t)

	remote := mapResolver{
		"http://example.com/integer.json": []byte(`{"type": "integer"}`),
	}
	sch, err := ParseWithResolver([]byte(`{"$ref": "http://example.com/integer.json"}`), remote)
	a.NoError(err)

	a.NoError(ValidateJSON(sch, []byte(`1`)))
	a.Error(ValidateJSON(sch, []byte(`"x"`)))
}

func TestRemoteRefWithPointer(t *testing.T) {
	a := require.New(t)

	remote := mapResolver{
		"http://example.com/defs.json": []byte(`{
			"definitions": {
				"positive": {"type": "integer", "exclusiveMinimum": 0}
			}
		}`),
	}
	sch, err := ParseWithResolver([]byte(`{
		"properties": {
			"count": {"$ref": "http://example.com/defs.json#/definitions/positive"}
		}
	}`), remote)
	a.NoError(err)

	a.NoError(ValidateJSON(sch, []byte(`{"count": 1}`)))
	a.Error(ValidateJSON(sch, []byte(`{"count": 0}`)))
	a.Error(ValidateJSON(sch, []byte(`{"count": "x"}`)))
}

func TestRemoteRefIsFetchedOnce(t *testing.T) {
	a := require.New(t)

	calls := 0
	remote := resolverFunc(func(_ context.Context, loc string) ([]byte, error) {
		calls++
		return []byte(`{"type": "integer"}`), nil
	})
	sch, err := ParseWithResolver([]byte(`{
		"properties": {
			"a": {"$ref": "http://example.com/integer.json"},
			"b": {"$ref": "http://example.com/integer.json#"}
		}
	}`), remote)
	a.NoError(err)
	a.Equal(1, calls)

	a.NoError(ValidateJSON(sch, []byte(`{"a": 1, "b": 2}`)))
}

type resolverFunc func(ctx context.Context, loc string) ([]byte, error)

func (f resolverFunc) Resolve(ctx context.Context, loc string) ([]byte, error) {
	return f(ctx, loc)
}

func TestRemoteRefFailure(t *testing.T) {
	a := require.New(t)

	_, err := ParseWithResolver([]byte(`{"$ref": "http://example.com/missing.json"}`), mapResolver{})
	a.Error(err)
}

func TestIDResolution(t *testing.T) {
	a := require.New(t)

	// "$id" labels a subschema with a canonical URI; references use the
	// label instead of a pointer.
	sch, err := Parse([]byte(`{
		"definitions": {
			"pos": {"$id": "http://example.com/pos.json", "type": "integer", "minimum": 0}
		},
		"properties": {
			"x": {"$ref": "http://example.com/pos.json"}
		}
	}`))
	a.NoError(err)

	a.NoError(ValidateJSON(sch, []byte(`{"x": 1}`)))
	a.Error(ValidateJSON(sch, []byte(`{"x": -1}`)))
	a.Error(ValidateJSON(sch, []byte(`{"x": "s"}`)))
}

func TestRefRecursionDetected(t *testing.T) {
	a := require.New(t)

	_, err := Parse([]byte(`{
		"definitions": {
			"a": {"$ref": "#/definitions/b"},
			"b": {"$ref": "#/definitions/a"}
		},
		"$ref": "#/definitions/a"
	}`))
	a.Error(err)
}
