// Package jsonschema implements a JSON Schema Draft-6 validator.
//
// A compiled Schema reports every violation with a JSON-Path-style
// location and the violated keyword, instead of stopping at the first
// failure.
package jsonschema

import "encoding/json"

// Parse parses given JSON and compiles JSON Schema validator.
func Parse(data []byte) (*Schema, error) {
	return ParseWithResolver(data, nil)
}

// ParseWithResolver is like Parse, but uses remote to fetch schema
// documents referenced by absolute URIs.
func ParseWithResolver(data []byte, remote RemoteResolver) (*Schema, error) {
	var raw RawSchema
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	doc, err := collectIDs(nil, data)
	if err != nil {
		return nil, err
	}
	c := newCompiler(doc)
	if remote != nil {
		c.remote = remote
	}
	return c.Compile(raw)
}
