package jsonschema

import "github.com/go-faster/errors"

// typeSet is a bitset of JSON types allowed by the "type" keyword.
//
// The zero value allows every type.
type typeSet uint8

const (
	nullType typeSet = 1 << iota
	booleanType
	objectType
	arrayType
	numberType
	integerType
	stringType
)

func (t typeSet) has(x typeSet) bool {
	return t == 0 || t&x != 0
}

func compileTypes(list SchemaType) (typeSet, error) {
	if list != nil && len(list) == 0 {
		return 0, errors.New(`"type" array must be non-empty`)
	}

	var t typeSet
	for _, typ := range list {
		var bit typeSet
		switch typ {
		case "null":
			bit = nullType
		case "boolean":
			bit = booleanType
		case "object":
			bit = objectType
		case "array":
			bit = arrayType
		case "number":
			bit = numberType
		case "integer":
			bit = integerType
		case "string":
			bit = stringType
		default:
			return 0, errors.Errorf("unexpected type %q", typ)
		}
		if t&bit != 0 {
			return 0, errors.Errorf(`"type" list must be unique, duplicate %q`, typ)
		}
		t |= bit
	}
	return t, nil
}
