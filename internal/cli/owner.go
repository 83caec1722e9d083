package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewOwnerCommand creates the owner command group. Its commands need an
// owner token.
func NewOwnerCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owner",
		Short: "Owner actions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "claim <restaurant-id>",
		Short:         "Claim an unclaimed restaurant",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			ids, err := parseIDs(args)
			if err != nil {
				return f.Error(&ExitError{Code: ExitCommandError, Message: "invalid restaurant id", Err: err})
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), rootOpts.Timeout)
			defer cancel()

			res, err := rootOpts.client().Claim(ctx, ids[0])
			if err != nil {
				return f.Error(requestError("claim restaurant", err))
			}
			return f.Success(res, func(w io.Writer) {
				fmt.Fprintln(w, res.Message)
			})
		},
	})

	return cmd
}
