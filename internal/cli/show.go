package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	var wishlist bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one record in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBookID(args[0])
			if err != nil {
				return app.report(err)
			}
			ctx := cmd.Context()
			if wishlist {
				book, err := app.client.WishlistBook(ctx, id)
				if err != nil {
					return app.report(err)
				}
				app.renderDetail(book, true)
				return nil
			}
			book, err := app.client.Book(ctx, id)
			if err != nil {
				return app.report(err)
			}
			app.renderDetail(book, false)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&wishlist, "wishlist", "w", false, "look the record up in the wishlist")
	return cmd
}

func parseBookID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid book id %q", raw)
	}
	return id, nil
}
