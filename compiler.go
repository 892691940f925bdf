package jsonschema

import (
	"math/big"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// compiler parses JSON schemas.
type compiler struct {
	doc    *document
	remote RemoteResolver

	remotes  map[string]*document
	refcache map[string]*Schema
}

// newCompiler creates new compiler.
func newCompiler(root *document) *compiler {
	var key refKey
	if root.id != nil {
		key.fromURL(root.id)
	}
	return &compiler{
		doc:    root,
		remote: Remote{},
		remotes: map[string]*document{
			"":      root,
			key.loc: root,
		},
		refcache: map[string]*Schema{},
	}
}

// Compile compiles given RawSchema and returns compiled Schema.
//
// Do not modify RawSchema fields, Schema will reference them.
func (p *compiler) Compile(schema RawSchema) (*Schema, error) {
	return p.compile(schema, newResolveCtx(p.doc.id))
}

func (p *compiler) compile(schema RawSchema, ctx *resolveCtx) (*Schema, error) {
	return p.compile1(schema, ctx, func(s *Schema) {})
}

func (p *compiler) compile1(schema RawSchema, ctx *resolveCtx, save func(s *Schema)) (_ *Schema, err error) {
	if ref := schema.Ref; ref != "" {
		// Sibling keywords of $ref are ignored.
		s, err := p.resolve(ref, ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve %q", ref)
		}
		return s, nil
	}

	if b := schema.Bool; b != nil {
		s := &Schema{boolean: b}
		save(s)
		return s, nil
	}

	if id := schema.ID; id != "" {
		idURL, err := ctx.parseURL(id)
		if err != nil {
			return nil, errors.Wrap(err, "parse $id")
		}
		ctx = ctx.child(idURL)
	}

	types, err := compileTypes(schema.Type)
	if err != nil {
		return nil, errors.Wrap(err, "type")
	}

	if schema.Enum != nil && len(schema.Enum) == 0 {
		return nil, errors.New(`"enum" must be non-empty`)
	}

	s := &Schema{
		types:         types,
		enumMap:       make(map[string]struct{}, len(schema.Enum)),
		minProperties: parseMinMax(schema.MinProperties),
		maxProperties: parseMinMax(schema.MaxProperties),
		properties:    map[string]*Schema{},
		minItems:      parseMinMax(schema.MinItems),
		maxItems:      parseMinMax(schema.MaxItems),
		uniqueItems:   schema.UniqueItems,
		minLength:     parseMinMax(schema.MinLength),
		maxLength:     parseMinMax(schema.MaxLength),
	}
	save(s)

	for _, value := range schema.Enum {
		s.enum = append(s.enum, jx.Raw(value))
		s.enumMap[string(value)] = struct{}{}
	}
	if c := schema.Const; c != nil {
		s.constant = jx.Raw(c)
	}

	seen := make(map[string]struct{}, len(schema.Required))
	for _, field := range schema.Required {
		// See https://datatracker.ietf.org/doc/html/draft-wright-json-schema-validation-01#section-6.17.
		//
		// Elements of this array, if any, MUST be strings, and MUST be unique.
		if _, ok := seen[field]; ok {
			return nil, errors.Errorf(`"required" list must be unique, duplicate %q`, field)
		}
		seen[field] = struct{}{}
		s.required = append(s.required, field)
	}

	for _, field := range schema.Properties {
		s.properties[field.Name], err = p.compile(field.Schema, ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "property %q", field.Name)
		}
	}

	for _, field := range schema.PatternProperties {
		if err := func() error {
			pattern, err := compileRegex(field.Pattern)
			if err != nil {
				return err
			}

			item, err := p.compile(field.Schema, ctx)
			if err != nil {
				return err
			}

			s.patternProperties = append(s.patternProperties, patternProperty{
				Regexp: pattern,
				Schema: item,
			})
			return nil
		}(); err != nil {
			return nil, errors.Wrapf(err, "patternProperty %q", field.Pattern)
		}
	}

	{
		dep := schema.Dependencies
		if len(dep.Schemas) > 0 {
			s.dependentSchemas = make(map[string]*Schema, len(dep.Schemas))
			for field, schema := range dep.Schemas {
				s.dependentSchemas[field], err = p.compile(schema, ctx)
				if err != nil {
					return nil, errors.Wrapf(err, "dependent schema %q", field)
				}
			}
		}
		s.dependentRequired = dep.Required
	}

	if it := schema.Items; it != nil {
		s.items.Set = true
		if it.Array {
			s.items.Array = true
			s.items.Schemas, err = p.compileMany(it.Schemas, ctx)
		} else {
			s.items.Object, err = p.compile(it.Schema, ctx)
		}
		if err != nil {
			return nil, errors.Wrap(err, "items")
		}
	}

	for _, single := range []struct {
		name   string
		to     **Schema
		schema *RawSchema
	}{
		{"not", &s.not, schema.Not},
		{"additionalProperties", &s.additionalProperties, schema.AdditionalProperties},
		{"propertyNames", &s.propertyNames, schema.PropertyNames},
		{"additionalItems", &s.additionalItems, schema.AdditionalItems},
		{"contains", &s.contains, schema.Contains},
	} {
		if single.schema == nil {
			continue
		}
		*single.to, err = p.compile(*single.schema, ctx)
		if err != nil {
			return nil, errors.Wrap(err, single.name)
		}
	}

	if pattern := schema.Pattern; len(pattern) > 0 {
		s.pattern, err = compileRegex(pattern)
		if err != nil {
			return nil, errors.Wrap(err, "pattern")
		}
	}

	for _, many := range []struct {
		name    string
		to      *[]*Schema
		schemas []RawSchema
	}{
		{"allOf", &s.allOf, schema.AllOf},
		{"anyOf", &s.anyOf, schema.AnyOf},
		{"oneOf", &s.oneOf, schema.OneOf},
	} {
		if many.schemas != nil && len(many.schemas) == 0 {
			return nil, errors.Errorf("%q must be non-empty", many.name)
		}
		*many.to, err = p.compileMany(many.schemas, ctx)
		if err != nil {
			return nil, errors.Wrap(err, many.name)
		}
	}

	for _, v := range []struct {
		name string
		to   **big.Rat
		num  Num
	}{
		{"minimum", &s.minimum, schema.Minimum},
		{"exclusiveMinimum", &s.exclusiveMinimum, schema.ExclusiveMinimum},
		{"maximum", &s.maximum, schema.Maximum},
		{"exclusiveMaximum", &s.exclusiveMaximum, schema.ExclusiveMaximum},
		{"multipleOf", &s.multipleOf, schema.MultipleOf},
	} {
		if len(v.num) == 0 {
			// Value is not set.
			continue
		}
		val := new(big.Rat)
		if err := val.UnmarshalText(v.num); err != nil {
			return nil, errors.Wrap(err, v.name)
		}
		*v.to = val
	}
	if s.multipleOf != nil && s.multipleOf.Sign() <= 0 {
		return nil, errors.New(`"multipleOf" must be greater than zero`)
	}

	// Members of "definitions" do not constrain anything by themselves,
	// but they still must be well-formed schemas.
	for _, field := range schema.Definitions {
		if _, err := p.compile(field.Schema, ctx); err != nil {
			return nil, errors.Wrapf(err, "definition %q", field.Name)
		}
	}

	return s, nil
}

func (p *compiler) compileMany(schemas []RawSchema, ctx *resolveCtx) ([]*Schema, error) {
	result := make([]*Schema, 0, len(schemas))
	for i, schema := range schemas {
		s, err := p.compile(schema, ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "[%d]", i)
		}

		result = append(result, s)
	}

	return result, nil
}
