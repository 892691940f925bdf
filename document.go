package jsonschema

import (
	"net/url"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/tdakkota/jsonschema6/internal/jsonpointer"
)

// document is a schema document with an index of every "$id" it labels.
type document struct {
	id   *url.URL
	data []byte
	ids  map[string][]byte
}

// resolve finds the subschema u points at inside this document.
//
// ok is false when u addresses a different document.
func (doc *document) resolve(u *url.URL) ([]byte, bool, error) {
	if data, ok := doc.ids[u.String()]; ok {
		return data, true, nil
	}

	loc := *u
	loc.Fragment = ""

	base := doc.data
	if data, ok := doc.ids[loc.String()]; ok {
		base = data
	} else if s := loc.String(); s != "" && (doc.id == nil || s != doc.id.String()) {
		return nil, false, nil
	}

	data, err := jsonpointer.Resolve(u.Fragment, base)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (doc *document) findID(base *url.URL, d *jx.Decoder, key []byte) error {
	if string(key) != "$id" {
		return d.Skip()
	}

	val, err := d.Str()
	if err != nil {
		return err
	}

	id, err := url.Parse(val)
	if err != nil {
		return err
	}

	doc.id = id
	if base != nil {
		doc.id = base.ResolveReference(id)
	}
	return nil
}

// collectIDs walks data and indexes every subschema labeled by "$id",
// resolved against base.
func collectIDs(base *url.URL, data []byte) (*document, error) {
	root := &document{
		id:   nil,
		data: data,
		ids:  map[string][]byte{},
	}

	d := jx.DecodeBytes(data)
	if d.Next() != jx.Object {
		// Boolean schemas carry no "$id".
		return root, nil
	}
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		return root.findID(base, d, key)
	}); err != nil {
		return nil, errors.Wrap(err, "find ID")
	}
	if root.id != nil {
		root.ids[root.id.String()] = root.data
	}

	do := func(d *jx.Decoder) error {
		if d.Next() != jx.Object {
			return d.Skip()
		}
		raw, err := d.Raw()
		if err != nil {
			return err
		}
		b := root.id
		if b == nil {
			b = base
		}
		sub, err := collectIDs(b, raw)
		if err != nil {
			return err
		}

		if sub.id != nil {
			root.ids[sub.id.String()] = sub.data
		}
		for k, v := range sub.ids {
			root.ids[k] = v
		}
		return nil
	}
	doObj := func(d *jx.Decoder) error {
		if d.Next() != jx.Object {
			return d.Skip()
		}
		return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
			return do(d)
		})
	}
	doArr := func(d *jx.Decoder) error {
		return d.Arr(func(d *jx.Decoder) error {
			return do(d)
		})
	}

	d.ResetBytes(data)
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "definitions", "properties", "patternProperties", "dependencies":
			return doObj(d)
		case "additionalItems", "additionalProperties", "not", "contains", "propertyNames":
			return do(d)
		case "allOf", "anyOf", "oneOf":
			return doArr(d)
		case "items":
			switch d.Next() {
			case jx.Array:
				return doArr(d)
			case jx.Object:
				return do(d)
			}
		}
		return d.Skip()
	}); err != nil {
		return nil, errors.Wrap(err, "collect IDs")
	}

	return root, nil
}
