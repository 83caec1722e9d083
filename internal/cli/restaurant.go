package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewRestaurantCommand creates the restaurant command group.
func NewRestaurantCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restaurant",
		Short: "Inspect restaurants",
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "show <restaurant-id>",
		Short:         "Show a restaurant with its live rating",
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

			r, err := rootOpts.client().Restaurant(ctx, ids[0])
			if err != nil {
				return f.Error(requestError("load restaurant", err))
			}
			return f.Success(r, func(w io.Writer) {
				fmt.Fprintf(w, "%s (#%d)\n", r.Name, r.ID)
				fmt.Fprintf(w, "  city:    %s\n", r.City)
				if r.CuisineType != nil {
					fmt.Fprintf(w, "  cuisine: %s\n", *r.CuisineType)
				}
				if r.PricingTier != nil {
					fmt.Fprintf(w, "  price:   %s\n", *r.PricingTier)
				}
				fmt.Fprintf(w, "  rating:  %s\n", formatRating(r.AverageRating, r.ReviewCount))
				claimed := "no"
				if r.IsClaimed() {
					claimed = "yes"
				}
				fmt.Fprintf(w, "  claimed: %s\n", claimed)
			})
		},
	})

	return cmd
}
