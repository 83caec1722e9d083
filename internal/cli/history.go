package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "history",
		Short:         "Show the reviews you wrote and the restaurants you added",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), rootOpts.Timeout)
			defer cancel()

			h, err := rootOpts.client().History(ctx)
			if err != nil {
				return f.Error(requestError("load history", err))
			}
			return f.Success(h, func(w io.Writer) {
				fmt.Fprintf(w, "Reviews (%d)\n", len(h.ReviewsAuthored))
				for _, r := range h.ReviewsAuthored {
					fmt.Fprintf(w, "  %s\t%d/5\t%s\n", r.RestaurantName, r.Rating, r.CreatedAt.Format("2006-01-02"))
				}
				fmt.Fprintf(w, "Restaurants added (%d)\n", len(h.RestaurantsAdded))
				for _, r := range h.RestaurantsAdded {
					fmt.Fprintf(w, "  %d\t%s\t%s\n", r.ID, r.Name, r.City)
				}
			})
		},
	}
}
