package jsonequal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{`null`, `null`, true},
		{`true`, `true`, true},
		{`true`, `false`, false},
		{`1`, `1`, true},
		{`1`, `1.0`, true},
		{`1`, `1.5`, false},
		{`1e2`, `100`, true},
		{`1`, `true`, false},
		{`1`, `"1"`, false},
		{`"foo"`, `"foo"`, true},
		{`"foo"`, `"bar"`, false},
		{`[]`, `[]`, true},
		{`[1, 2]`, `[1, 2]`, true},
		{`[1, 2]`, `[2, 1]`, false},
		{`[1]`, `[1, 1]`, false},
		{`[1.0]`, `[1]`, true},
		{`{}`, `{}`, true},
		{`{"a": 1, "b": 2}`, `{"b": 2, "a": 1}`, true},
		{`{"a": 1}`, `{"a": 2}`, false},
		{`{"a": 1}`, `{"a": 1, "b": 2}`, false},
		{`{"a": [1, {"b": null}]}`, `{"a": [1, {"b": null}]}`, true},
		{`{"a": [1, {"b": null}]}`, `{"a": [1, {"b": 0}]}`, false},
	}
	for i, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("Test%d", i+1), func(t *testing.T) {
			a := require.New(t)

			got, err := Equal([]byte(tt.a), []byte(tt.b))
			a.NoError(err)
			a.Equal(tt.want, got, "%s vs %s", tt.a, tt.b)

			// Equality is symmetric.
			got, err = Equal([]byte(tt.b), []byte(tt.a))
			a.NoError(err)
			a.Equal(tt.want, got, "%s vs %s", tt.b, tt.a)
		})
	}
}

func TestEqualInvalid(t *testing.T) {
	a := require.New(t)

	_, err := Equal([]byte(``), []byte(`1`))
	a.Error(err)
}
