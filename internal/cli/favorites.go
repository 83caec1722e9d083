package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/spf13/cobra"

	"dinefinder/internal/favcache"
)

// NewFavoritesCommand creates the favorites command group.
func NewFavoritesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List and change your favorite restaurants",
	}

	cmd.AddCommand(newFavoritesListCommand(rootOpts))
	cmd.AddCommand(newFavoritesIDsCommand(rootOpts))
	cmd.AddCommand(newFavoritesToggleCommand(rootOpts))

	return cmd
}

func newFavoritesListCommand(rootOpts *RootOptions) *cobra.Command {
	var page, size int

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List favorite restaurants, most recent first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), rootOpts.Timeout)
			defer cancel()

			out, err := rootOpts.client().ListFavorites(ctx, page, size)
			if err != nil {
				return f.Error(requestError("list favorites", err))
			}
			return f.Success(out, func(w io.Writer) {
				if len(out.Items) == 0 {
					fmt.Fprintln(w, "no favorites yet")
					return
				}
				for _, item := range out.Items {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", item.ID, item.Name, item.City, formatRating(item.AverageRating, item.ReviewCount))
				}
				fmt.Fprintf(w, "page %d of %d (%d total)\n", out.Page, max(out.TotalPages, 1), out.Total)
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&size, "size", 20, "page size")

	return cmd
}

func newFavoritesIDsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "ids",
		Short:         "Print the ids of your favorite restaurants",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), rootOpts.Timeout)
			defer cancel()

			ids, err := rootOpts.client().FavoriteIDs(ctx)
			if err != nil {
				return f.Error(requestError("list favorite ids", err))
			}
			return f.Success(ids, func(w io.Writer) {
				for _, id := range ids {
					fmt.Fprintln(w, id)
				}
			})
		},
	}
}

// ToggleResult is the outcome of a toggle run.
type ToggleResult struct {
	Favorites []int64          `json:"favorites"`
	Failed    map[int64]string `json:"failed,omitempty"`
}

func newFavoritesToggleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <restaurant-id>...",
		Short: "Flip the favorite state of one or more restaurants",
		Long: `Flip the favorite state of each restaurant. The local state changes
immediately and is reconciled with the server; a failed request rolls the
restaurant back to its previous state.`,
		Args:          cobra.MinimumNArgs(1),
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

			result, exitErr := runToggle(ctx, rootOpts, cmd, ids)
			if exitErr != nil {
				return f.Error(exitErr)
			}
			if err := f.Success(result, func(w io.Writer) {
				for id, msg := range result.Failed {
					fmt.Fprintf(w, "restaurant %d: %s (rolled back)\n", id, msg)
				}
				fmt.Fprintf(w, "favorites: %v\n", result.Favorites)
			}); err != nil {
				return err
			}
			if len(result.Failed) > 0 {
				return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%d toggle(s) failed", len(result.Failed))}
			}
			return nil
		},
	}
}

func runToggle(ctx context.Context, rootOpts *RootOptions, cmd *cobra.Command, ids []int64) (*ToggleResult, *ExitError) {
	log := rootOpts.logger(cmd)
	defer log.Sync()

	api := rootOpts.client()
	seed, err := api.FavoriteIDs(ctx)
	if err != nil {
		return nil, requestError("load favorites", err)
	}

	var mu sync.Mutex
	failed := make(map[int64]string)
	cache := favcache.New(api,
		favcache.WithContext(ctx),
		favcache.WithErrorHandler(func(id int64, err error) {
			log.Warnw("favorite update failed", "restaurant_id", id, "error", err)
			mu.Lock()
			failed[id] = err.Error()
			mu.Unlock()
		}),
	)
	cache.Seed(seed)

	for _, id := range ids {
		on := cache.Toggle(id)
		log.Debugw("toggled", "restaurant_id", id, "favorited", on)
	}
	if err := cache.Wait(ctx); err != nil {
		return nil, &ExitError{Code: ExitCommandError, Message: "waiting for server", Err: err}
	}

	return &ToggleResult{Favorites: cache.Snapshot(), Failed: failed}, nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%q is not a restaurant id", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func formatRating(avg *float64, count int) string {
	if avg == nil {
		return "no reviews"
	}
	return fmt.Sprintf("%.2f (%d)", *avg, count)
}
