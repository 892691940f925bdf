package jsonschema

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustDir(t *testing.T, fsys embed.FS, p string) []fs.DirEntry {
	entries, err := fsys.ReadDir(p)
	require.NoError(t, err)
	return entries
}

func mustFile(t *testing.T, fsys embed.FS, p string) []byte {
	entries, err := fsys.ReadFile(p)
	require.NoError(t, err)
	return entries
}

// Case is a single instance of a test suite file.
type Case struct {
	Description string          `json:"description"`
	Data        json.RawMessage `json:"data"`
	Valid       bool            `json:"valid"`
	Skip        string          `json:"skip,omitempty"`
}

// Test is a schema with its instances, as stored in a test suite file.
type Test struct {
	Description string          `json:"description"`
	Schema      json.RawMessage `json:"schema"`
	Tests       []Case          `json:"tests"`
}

func runTests(t *testing.T, tests []Test) {
	for testN, test := range tests {
		testN := testN
		test := test
		t.Run(fmt.Sprintf("Test%d", testN+1), func(t *testing.T) {
			sch, err := Parse(test.Schema)
			require.NoError(t, err, test.Description)

			for caseN, cse := range test.Tests {
				caseN := caseN
				cse := cse
				t.Run(fmt.Sprintf("Case%d", caseN+1), func(t *testing.T) {
					if cse.Skip != "" {
						t.Skip(cse.Skip)
						return
					}

					err := ValidateJSON(sch, cse.Data)
					f := "Schema: %s,\nData: %s,\nDescription: %s"
					args := []interface{}{
						test.Schema,
						cse.Data,
						cse.Description,
					}
					if cse.Valid {
						require.NoErrorf(t, err, f, args...)
					} else {
						require.Errorf(t, err, f, args...)
					}
				})
			}
		})
	}
}

func runSuite(t *testing.T, suite embed.FS, suiteRoot string) {
	sets := mustDir(t, suite, suiteRoot)

	for _, set := range sets {
		setName := set.Name()
		testName := strings.TrimSuffix(setName, ".json")
		t.Run(testName, func(t *testing.T) {
			data := mustFile(t, suite, path.Join(suiteRoot, setName))

			var tests []Test
			require.NoError(t, json.Unmarshal(data, &tests))

			runTests(t, tests)
		})
	}
}
