package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
)

// Output formats.
const (
	formatDebug = "debug"
	formatJSON  = "json"
	formatDump  = "dump"
)

// dumper renders the dump format. String methods are bypassed so the
// structure is shown, and keys are sorted so output is stable between runs.
var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func parseFormat(s string) (string, error) {
	switch s {
	case formatDebug, formatJSON, formatDump:
		return s, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: %s, %s, %s)", s, formatDebug, formatJSON, formatDump)
	}
}

// render writes v to w in the configured output format.
func (a *app) render(w io.Writer, v fmt.Stringer) error {
	switch a.format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return sysError(fmt.Errorf("marshal result: %w", err))
		}
		if _, err := fmt.Fprintln(w, string(data)); err != nil {
			return sysError(err)
		}
	case formatDump:
		dumper.Fdump(w, v)
	default:
		if _, err := fmt.Fprintln(w, v.String()); err != nil {
			return sysError(err)
		}
	}
	return nil
}
