package jsonschema_test

import (
	"fmt"

	jsonschema "github.com/tdakkota/jsonschema6"
)

func ExampleParse() {
	schema, err := jsonschema.Parse([]byte(`{
  "type": "object",
  "properties": {
    "number": { "type": "number" },
    "street_name": { "type": "string" },
    "street_type": { "enum": ["Street", "Avenue", "Boulevard"] }
  }
}`))
	if err != nil {
		panic(err)
	}

	if err := jsonschema.ValidateJSON(
		schema,
		[]byte(`{ "number": 1600, "street_name": "Pennsylvania", "street_type": "Avenue" }`),
	); err != nil {
		panic(err)
	}

	fmt.Println(jsonschema.ValidateJSON(schema, []byte(`{"number": "1600", "street_type": "Lane"}`)))
	// Output:
	// $.number: type; $.street_type: enum
}

func ExampleSchema_Validate() {
	schema, err := jsonschema.Parse([]byte(`{
  "required": ["name"],
  "properties": {
    "name": { "type": "string", "minLength": 1 }
  }
}`))
	if err != nil {
		panic(err)
	}

	result, err := schema.Validate([]byte(`{"name": ""}`))
	if err != nil {
		panic(err)
	}

	fmt.Println(result.Valid())
	fmt.Println(result.Errors["$.name"])
	// Output:
	// false
	// [minLength]
}
