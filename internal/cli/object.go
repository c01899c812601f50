package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/typeparse/pkg/parse"
	"github.com/mesh-intelligence/typeparse/pkg/types"
)

// stdinName selects standard input for --input.
const stdinName = "-"

func newObjectCmd(a *app) *cobra.Command {
	var schemaPath, inputPath string

	cmd := &cobra.Command{
		Use:   "object",
		Short: "Parse a JSON object against a YAML schema",
		Long: `Parse a JSON object field by field. The schema maps each key to a parser
(number, string, auto) or to a nested mapping for object fields. Input keys
without a schema entry are rejected with "No associated callback parser
function".`,
		Example: `  typeparse object --schema schema.yaml --input record.json
  echo '{"n":"10"}' | typeparse object --schema schema.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := parse.LoadSchemaFile(schemaPath)
			if err != nil {
				return userError(err)
			}

			data, err := readInput(cmd, inputPath)
			if err != nil {
				return err
			}
			v, err := types.ParseJSON(data)
			if err != nil {
				return userError(fmt.Errorf("decode input: %w", err))
			}

			result := parse.ObjectOf(schema)(v)
			a.log.Info().
				Str("schema", schemaPath).
				Int("fields", len(result.Keys())).
				Bool("accepted", result.Accepted()).
				Msg("object parsed")
			return a.render(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "YAML schema file (required)")
	cmd.Flags().StringVar(&inputPath, "input", stdinName, "JSON input file, or - for stdin")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

// readInput reads the whole input from path, or from the command's stdin
// when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == stdinName {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, sysError(fmt.Errorf("read stdin: %w", err))
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, userError(fmt.Errorf("read input: %w", err))
		}
		return nil, sysError(fmt.Errorf("read input: %w", err))
	}
	return data, nil
}
