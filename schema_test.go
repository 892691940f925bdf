package jsonschema

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	const veryBad = `{
  "allOf": [
    {
      "patternProperties": {
        "foo$": {
          "dependencies": {
            "foo": {
              "additionalProperties": {
                "additionalItems": {
                  "properties": {
                    "foo": {
                      "items": {
                        "required": [
                          "foo",
                          "foo"
                        ]
                      }
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
  ]
}`

	tests := []struct {
		data    string
		wantErr bool
	}{
		// Boolean schemas.
		{"true", false},
		{"false", false},
		{"{}", false},
		// Invalid JSON handling.
		{"", true},
		{"{", true},
		{"[]", true},
		{"null", true},
		{`"schema"`, true},
		// Invalid structure handling.
		{`{"type":{}}`, true},
		{`{"$id":{}}`, true},
		{`{"items":10}`, true},
		{`{"minimum":"10"}`, true},
		{`{"minimum":true}`, true},
		{`{"exclusiveMinimum":true}`, true},
		{`{"exclusiveMaximum":false}`, true},
		{`{"properties":["foobar"]}`, true},
		{`{"additionalProperties":{"type":1}}`, true},
		{`{"additionalProperties":[]}`, true},
		{`{"patternProperties":{"foo":[]}}`, true},
		{`{"dependencies":{"foo":1}}`, true},
		{`{"dependencies":{"foo":[1]}}`, true},
		{`{"dependencies":{"foo":{"type":1}}}`, true},
		{`{"maxLength":-1}`, true},
		// Invalid "type".
		{`{"type":["foobar"]}`, true},
		{`{"type":[]}`, true},
		{`{"type":["string","string"]}`, true},
		// Invalid "enum".
		{`{"enum":[]}`, true},
		// Invalid combinators.
		{`{"allOf":[]}`, true},
		{`{"anyOf":[]}`, true},
		{`{"oneOf":[]}`, true},
		// Invalid "multipleOf".
		{`{"multipleOf":0}`, true},
		{`{"multipleOf":-2}`, true},
		// Invalid "$id".
		{`{"dependencies":{"$id":{"$id":":"}}}`, true},
		{`{"definitions":{"foo":{"$id":":"}}}`, true},
		{`{"items":[{"$id":":"}]}`, true},
		{`{"items":{"$id":":"}}`, true},
		// Invalid "ref".
		{`{"$ref":":"}`, true},
		{`{"$ref":"#/missing"}`, true},
		// Invalid "required".
		{veryBad, true},
		// Bad regex.
		{`{"pattern":"\\"}`, true},
		{`{"patternProperties":{"\\":{}}}`, true},
		// Draft-6 boolean subschemas are fine.
		{`{"items":true,"additionalProperties":false,"not":true}`, false},
		{`{"dependencies":{"foo":false}}`, false},
		{`{"propertyNames":false}`, false},
		{`{"contains":true}`, false},
	}
	for i, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("Test%d", i+1), func(t *testing.T) {
			a := require.New(t)
			_, err := Parse([]byte(tt.data))
			if tt.wantErr {
				a.Errorf(err, "Schema: %s", tt.data)
				return
			}
			a.NoErrorf(err, "Schema: %s", tt.data)
		})
	}
}
