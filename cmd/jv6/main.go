// Command jv6 validates JSON or YAML instances against a JSON Schema
// (Draft 6) and prints the location and keyword of every violation.
//
// It exits non-zero only for I/O, parse or schema errors; instances
// failing validation report themselves and do not affect the exit code.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/yaml"
	"github.com/spf13/cobra"

	jsonschema "github.com/tdakkota/jsonschema6"
)

func readInstance(p string) ([]byte, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(p)) {
	case ".yaml", ".yml":
		var v interface{}
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, errors.Wrap(err, "parse yaml")
		}
		return json.Marshal(v)
	default:
		return data, nil
	}
}

func run(cmd *cobra.Command, args []string) error {
	schemaData, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	sch, err := jsonschema.Parse(schemaData)
	if err != nil {
		return errors.Wrapf(err, "compile %q", args[0])
	}

	out := cmd.OutOrStdout()
	for _, f := range args[1:] {
		data, err := readInstance(f)
		if err != nil {
			return err
		}
		res, err := sch.Validate(data)
		if err != nil {
			return errors.Wrapf(err, "read %q", f)
		}
		if res.Valid() {
			fmt.Fprintf(out, "%s: ok\n", f)
			continue
		}

		fmt.Fprintf(out, "%s: invalid\n", f)
		paths := make([]string, 0, len(res.Errors))
		for p := range res.Errors {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		for _, p := range paths {
			fmt.Fprintf(out, "  %s: %s\n", p, strings.Join(res.Errors[p], ", "))
		}
	}
	return nil
}

func main() {
	root := &cobra.Command{
		Use:          "jv6 <json-schema> [<instance>...]",
		Short:        "Validate JSON or YAML instances against a JSON Schema (Draft 6)",
		Args:         cobra.MinimumNArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
