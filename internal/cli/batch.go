package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/typeparse/internal/jsonl"
	"github.com/mesh-intelligence/typeparse/pkg/parse"
)

// batchLine is one line of batch output.
type batchLine struct {
	RunID  string        `json:"run_id"`
	Line   int           `json:"line"`
	Result *parse.Result `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// batchSummary counts records by result.
type batchSummary struct {
	accepted  int
	rejected  int
	malformed int
}

func newBatchCmd(a *app) *cobra.Command {
	var inputPath, outputPath string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Validate a JSON Lines file",
		Long: `Validate every line of a JSON Lines document. Integers and text use their
rules, objects are checked field by field. Each input line yields one output
line tagged with the run ID and the input line number. Lines that are not
valid JSON, or hold values other than integers, strings and objects, are
reported with an error and do not stop the run.`,
		Example: `  typeparse batch --input values.jsonl
  typeparse batch --input values.jsonl --output results.jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, inputPath)
			if err != nil {
				return err
			}
			records, err := jsonl.Read(bytes.NewReader(data))
			if err != nil {
				return userError(err)
			}

			runID, err := uuid.NewV7()
			if err != nil {
				return sysError(fmt.Errorf("generate run id: %w", err))
			}

			lines, summary, err := a.validateRecords(runID.String(), records)
			if err != nil {
				return sysError(err)
			}

			if outputPath != "" {
				err = jsonl.WriteFile(outputPath, lines)
			} else {
				err = jsonl.Write(cmd.OutOrStdout(), lines)
			}
			if err != nil {
				return sysError(fmt.Errorf("write results: %w", err))
			}

			a.log.Info().
				Str("run_id", runID.String()).
				Int("records", len(records)).
				Int("accepted", summary.accepted).
				Int("rejected", summary.rejected).
				Int("malformed", summary.malformed).
				Msg("batch complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", stdinName, "JSON Lines input file, or - for stdin")
	cmd.Flags().StringVar(&outputPath, "output", "", "write results to this file instead of stdout")
	return cmd
}

// validateRecords validates each record and encodes one output line per record.
func (a *app) validateRecords(runID string, records []jsonl.Record) ([]json.RawMessage, batchSummary, error) {
	var summary batchSummary
	lines := make([]json.RawMessage, 0, len(records))

	for _, rec := range records {
		line := batchLine{RunID: runID, Line: rec.Line}
		if rec.Err != nil {
			a.log.Warn().Int("line", rec.Line).Err(rec.Err).Msg("skipping malformed record")
			line.Error = rec.Err.Error()
			summary.malformed++
		} else {
			result := parse.Auto(rec.Value)
			line.Result = &result
			if result.Accepted() {
				summary.accepted++
			} else {
				summary.rejected++
			}
		}

		data, err := json.Marshal(line)
		if err != nil {
			return nil, summary, fmt.Errorf("marshal line %d: %w", rec.Line, err)
		}
		lines = append(lines, data)
	}
	return lines, summary, nil
}
