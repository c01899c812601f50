package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/typeparse/pkg/parse"
)

func newIntCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "int <n>",
		Short: "Validate an integer",
		Long:  "Validate a base-10 integer. 0 is rejected with \"Can't be 0\".",
		Example: `  typeparse int 42
  typeparse int -- -7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return userError(fmt.Errorf("invalid integer %q", args[0]))
			}
			a.log.Debug().Int64("input", n).Msg("validating integer")
			return a.render(cmd.OutOrStdout(), parse.Validate(n))
		},
	}
}

func newTextCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "text <s>",
		Short:   "Validate a text value",
		Long:    "Validate a text value. The literal \"dog\" is rejected with \"Can't be a dog\".",
		Example: `  typeparse text cat`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.log.Debug().Str("input", args[0]).Msg("validating text")
			return a.render(cmd.OutOrStdout(), parse.Validate(args[0]))
		},
	}
}
