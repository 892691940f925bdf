package jsonschema

import (
	"math/big"
	"strconv"
	"unicode/utf8"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/tdakkota/jsonschema6/internal/jsonequal"
)

// Validate validates given data and collects every violation into Result.
//
// The returned error is non-nil only for invalid JSON input; assertion
// failures are reported through the Result.
func (s *Schema) Validate(data []byte) (*Result, error) {
	raw, err := jx.DecodeBytes(data).Raw()
	if err != nil {
		return nil, errors.Wrap(err, "invalid json")
	}

	r := newResult()
	if err := s.validate(raw, "$", r); err != nil {
		return nil, err
	}
	return r, nil
}

// ValidateJSON validates data against s, returning a non-nil error iff
// the instance does not conform.
func ValidateJSON(s *Schema, data []byte) error {
	r, err := s.Validate(data)
	if err != nil {
		return err
	}
	return r.intoError()
}

func (s *Schema) validate(data jx.Raw, path string, r *Result) error {
	if s == nil {
		return nil
	}
	if s.boolean != nil {
		if !*s.boolean {
			r.add(path, "false")
		}
		return nil
	}

	if err := s.validateEnum(data, path, r); err != nil {
		return errors.Wrap(err, "enum")
	}
	if err := s.validateConst(data, path, r); err != nil {
		return errors.Wrap(err, "const")
	}
	if err := s.validateAllOf(data, path, r); err != nil {
		return errors.Wrap(err, "allOf")
	}
	if err := s.validateAnyOf(data, path, r); err != nil {
		return errors.Wrap(err, "anyOf")
	}
	if err := s.validateOneOf(data, path, r); err != nil {
		return errors.Wrap(err, "oneOf")
	}
	if err := s.validateNot(data, path, r); err != nil {
		return errors.Wrap(err, "not")
	}

	switch tt := data.Type(); tt {
	case jx.String:
		return s.validateString(data, path, r)
	case jx.Number:
		return s.validateNumber(data, path, r)
	case jx.Null:
		s.checkType(nullType, path, r)
		return nil
	case jx.Bool:
		s.checkType(booleanType, path, r)
		return nil
	case jx.Array:
		return s.validateArray(data, path, r)
	case jx.Object:
		return s.validateObject(data, path, r)
	default:
		return errors.Errorf("unexpected type %q", tt)
	}
}

func (s *Schema) checkType(t typeSet, path string, r *Result) {
	if !s.types.has(t) {
		r.add(path, "type")
	}
}

func (s *Schema) validateEnum(data jx.Raw, path string, r *Result) error {
	if len(s.enum) == 0 {
		return nil
	}

	if _, ok := s.enumMap[string(data)]; ok {
		// Fast path.
		return nil
	}
	for _, variant := range s.enum {
		ok, err := jsonequal.Equal(variant, data)
		if err != nil {
			return errors.Wrap(err, "compare")
		}
		if ok {
			return nil
		}
	}
	r.add(path, "enum")
	return nil
}

func (s *Schema) validateConst(data jx.Raw, path string, r *Result) error {
	if s.constant == nil {
		return nil
	}

	ok, err := jsonequal.Equal(s.constant, data)
	if err != nil {
		return errors.Wrap(err, "compare")
	}
	if !ok {
		r.add(path, "const")
	}
	return nil
}

func (s *Schema) validateAllOf(data jx.Raw, path string, r *Result) error {
	for i, schema := range s.allOf {
		if err := schema.validate(data, path, r); err != nil {
			return errors.Wrapf(err, "[%d]", i)
		}
	}
	return nil
}

func (s *Schema) validateAnyOf(data jx.Raw, path string, r *Result) error {
	if len(s.anyOf) == 0 {
		return nil
	}

	for i, schema := range s.anyOf {
		f := r.fork()
		if err := schema.validate(data, path, f); err != nil {
			return errors.Wrapf(err, "[%d]", i)
		}
		if f.Valid() {
			return nil
		}
	}
	r.add(path, "anyOf")
	return nil
}

func (s *Schema) validateOneOf(data jx.Raw, path string, r *Result) error {
	if len(s.oneOf) == 0 {
		return nil
	}

	counter := 0
	for i, schema := range s.oneOf {
		f := r.fork()
		if err := schema.validate(data, path, f); err != nil {
			return errors.Wrapf(err, "[%d]", i)
		}
		if f.Valid() {
			counter++
		}
	}
	if counter != 1 {
		r.add(path, "oneOf")
	}
	return nil
}

func (s *Schema) validateNot(data jx.Raw, path string, r *Result) error {
	if s.not == nil {
		return nil
	}

	f := r.fork()
	if err := s.not.validate(data, path, f); err != nil {
		return err
	}
	if f.Valid() {
		r.add(path, "not")
	}
	return nil
}

func (s *Schema) validateString(data jx.Raw, path string, r *Result) error {
	s.checkType(stringType, path, r)

	if !(s.minLength.IsSet() || s.maxLength.IsSet() || s.pattern != nil) {
		return nil
	}

	str, err := jx.DecodeBytes(data).Str()
	if err != nil {
		return errors.Wrap(err, "parse JSON")
	}
	if s.minLength.IsSet() || s.maxLength.IsSet() {
		// RFC 7159 characters, not bytes.
		count := utf8.RuneCountInString(str)
		if s.minLength.IsSet() && count < int(s.minLength) {
			r.add(path, "minLength")
		}
		if s.maxLength.IsSet() && count > int(s.maxLength) {
			r.add(path, "maxLength")
		}
	}
	if s.pattern != nil && !s.pattern.Match(str) {
		r.add(path, "pattern")
	}
	return nil
}

func (s *Schema) validateNumber(data jx.Raw, path string, r *Result) error {
	if s.types == 0 &&
		s.minimum == nil &&
		s.exclusiveMinimum == nil &&
		s.maximum == nil &&
		s.exclusiveMaximum == nil &&
		s.multipleOf == nil {
		return nil
	}

	num, err := jx.DecodeBytes(data).Num()
	if err != nil {
		return errors.Wrap(err, "parse JSON")
	}
	val := new(big.Rat)
	if err := val.UnmarshalText(num); err != nil {
		return errors.Wrap(err, "parse")
	}

	if s.types != 0 {
		// A number with a zero fractional part is an integer, so 1.0
		// satisfies {"type": "integer"}.
		if !(s.types&numberType != 0 || (val.IsInt() && s.types&integerType != 0)) {
			r.add(path, "type")
		}
	}

	if s.minimum != nil && val.Cmp(s.minimum) < 0 {
		r.add(path, "minimum")
	}
	if s.exclusiveMinimum != nil && val.Cmp(s.exclusiveMinimum) <= 0 {
		r.add(path, "exclusiveMinimum")
	}
	if s.maximum != nil && val.Cmp(s.maximum) > 0 {
		r.add(path, "maximum")
	}
	if s.exclusiveMaximum != nil && val.Cmp(s.exclusiveMaximum) >= 0 {
		r.add(path, "exclusiveMaximum")
	}
	if s.multipleOf != nil {
		if !new(big.Rat).Quo(val, s.multipleOf).IsInt() {
			r.add(path, "multipleOf")
		}
	}

	return nil
}

func (s *Schema) validateArray(data jx.Raw, path string, r *Result) error {
	s.checkType(arrayType, path, r)

	if !(s.minItems.IsSet() ||
		s.maxItems.IsSet() ||
		s.uniqueItems ||
		s.items.Set ||
		s.additionalItems != nil ||
		s.contains != nil) {
		return nil
	}

	d := jx.DecodeBytes(data)
	iter, err := d.ArrIter()
	if err != nil {
		return errors.Wrap(err, "parse JSON")
	}
	var elems []jx.Raw
	for iter.Next() {
		raw, err := d.Raw()
		if err != nil {
			return errors.Wrap(err, "parse JSON")
		}
		elems = append(elems, raw)
	}
	if err := iter.Err(); err != nil {
		return errors.Wrap(err, "parse JSON")
	}

	for i, elem := range elems {
		sch := s.elemSchema(i)
		if sch == nil {
			continue
		}
		if err := sch.validate(elem, descend(path, strconv.Itoa(i)), r); err != nil {
			return errors.Wrapf(err, "[%d]", i)
		}
	}

	if s.uniqueItems && len(elems) > 1 {
	unique:
		for xi, x := range elems {
			for _, y := range elems[xi+1:] {
				ok, err := jsonequal.Equal(x, y)
				if err != nil {
					return errors.Wrap(err, "compare")
				}
				if ok {
					r.add(path, "uniqueItems")
					break unique
				}
			}
		}
	}

	if s.contains != nil {
		found := false
		for i, elem := range elems {
			f := r.fork()
			if err := s.contains.validate(elem, descend(path, strconv.Itoa(i)), f); err != nil {
				return errors.Wrap(err, "contains")
			}
			if f.Valid() {
				found = true
				break
			}
		}
		if !found {
			r.add(path, "contains")
		}
	}

	if s.minItems.IsSet() && len(elems) < int(s.minItems) {
		r.add(path, "minItems")
	}
	if s.maxItems.IsSet() && len(elems) > int(s.maxItems) {
		r.add(path, "maxItems")
	}

	return nil
}

func (s *Schema) validateObject(data jx.Raw, path string, r *Result) error {
	s.checkType(objectType, path, r)

	if !(s.minProperties.IsSet() ||
		s.maxProperties.IsSet() ||
		len(s.required) > 0 ||
		len(s.properties) > 0 ||
		len(s.patternProperties) > 0 ||
		s.additionalProperties != nil ||
		s.propertyNames != nil ||
		len(s.dependentSchemas) > 0 ||
		len(s.dependentRequired) > 0) {
		return nil
	}

	d := jx.DecodeBytes(data)
	iter, err := d.ObjIter()
	if err != nil {
		return errors.Wrap(err, "parse JSON")
	}
	var (
		keys []string
		vals []jx.Raw
	)
	for iter.Next() {
		key := string(iter.Key())
		raw, err := d.Raw()
		if err != nil {
			return errors.Wrap(err, "parse JSON")
		}
		keys = append(keys, key)
		vals = append(vals, raw)
	}
	if err := iter.Err(); err != nil {
		return errors.Wrap(err, "parse JSON")
	}

	present := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		present[key] = struct{}{}
	}

	for _, name := range s.required {
		if _, ok := present[name]; !ok {
			r.add(descend(path, name), "required")
		}
	}

	for i, key := range keys {
		val := vals[i]

		if s.propertyNames != nil {
			var e jx.Encoder
			e.Str(key)

			f := r.fork()
			if err := s.propertyNames.validate(e.Bytes(), descend(path, key), f); err != nil {
				return errors.Wrap(err, "propertyNames")
			}
			if !f.Valid() {
				r.add(descend(path, key), "propertyNames")
			}
		}

		matched := false
		for _, p := range s.patternProperties {
			if !p.Regexp.Match(key) {
				continue
			}
			matched = true
			if err := p.Schema.validate(val, descend(path, key), r); err != nil {
				return errors.Wrapf(err, "pattern %q", p.Regexp)
			}
		}

		prop, ok := s.properties[key]
		if ok {
			if err := prop.validate(val, descend(path, key), r); err != nil {
				return errors.Wrapf(err, "%q", key)
			}
		}

		if !ok && !matched && s.additionalProperties != nil {
			if err := s.additionalProperties.validate(val, descend(path, key), r); err != nil {
				return errors.Wrap(err, "additionalProperties")
			}
		}
	}

	for _, key := range keys {
		if names, ok := s.dependentRequired[key]; ok {
			for _, name := range names {
				if _, ok := present[name]; !ok {
					r.add(descend(path, name), "dependencies")
				}
			}
		}
		if sub, ok := s.dependentSchemas[key]; ok {
			if err := sub.validate(data, path, r); err != nil {
				return errors.Wrapf(err, "dependent %q", key)
			}
		}
	}

	if s.minProperties.IsSet() && len(keys) < int(s.minProperties) {
		r.add(path, "minProperties")
	}
	if s.maxProperties.IsSet() && len(keys) > int(s.maxProperties) {
		r.add(path, "maxProperties")
	}

	return nil
}
