package jsonschema

import (
	"math/big"

	"github.com/go-faster/jx"
)

type patternProperty struct {
	Regexp *Regexp
	Schema *Schema
}

type minMax int

func (m minMax) IsSet() bool {
	return m >= 0
}

func parseMinMax(val *uint64) minMax {
	if val != nil {
		return minMax(*val)
	}
	return -1
}

type items struct {
	Set   bool
	Array bool // If set, "items" defined as array.
	// Object is the single-schema form, including boolean schemas.
	Object  *Schema
	Schemas []*Schema
}

// Schema is a compiled schema.
type Schema struct {
	// boolean is set for boolean schemas: true accepts every instance,
	// false rejects every instance.
	boolean *bool

	types    typeSet
	enum     []jx.Raw
	enumMap  map[string]struct{}
	constant jx.Raw

	// Schema composition.
	allOf []*Schema
	anyOf []*Schema
	oneOf []*Schema
	not   *Schema

	// Object validators.
	minProperties        minMax
	maxProperties        minMax
	required             []string
	properties           map[string]*Schema
	patternProperties    []patternProperty
	additionalProperties *Schema
	propertyNames        *Schema
	dependentRequired    map[string][]string
	dependentSchemas     map[string]*Schema

	// Array validators.
	minItems        minMax
	maxItems        minMax
	uniqueItems     bool
	items           items
	additionalItems *Schema
	contains        *Schema

	// Number validators.
	minimum          *big.Rat
	exclusiveMinimum *big.Rat
	maximum          *big.Rat
	exclusiveMaximum *big.Rat
	multipleOf       *big.Rat

	// String validators.
	minLength minMax
	maxLength minMax
	pattern   *Regexp
}

// elemSchema returns the schema the element at idx must validate against,
// or nil if the element is unconstrained.
//
// "additionalItems" applies only when the adjacent "items" is the array
// form; a single-schema "items" constrains every element on its own.
func (s *Schema) elemSchema(idx int) *Schema {
	if !s.items.Set || !s.items.Array {
		return s.items.Object
	}
	if arr := s.items.Schemas; idx < len(arr) {
		return arr[idx]
	}
	return s.additionalItems
}
