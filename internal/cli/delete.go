package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jayman971/ma-bibliotheque-api/internal/booklist"
)

func newDeleteCmd(app *App) *cobra.Command {
	var wishlist bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBookID(args[0])
			if err != nil {
				return app.report(err)
			}
			return app.runDelete(cmd, id, wishlist)
		},
	}
	cmd.Flags().BoolVarP(&wishlist, "wishlist", "w", false, "delete from the wishlist")
	return cmd
}

func (a *App) runDelete(cmd *cobra.Command, id int, wishlist bool) error {
	ctx := cmd.Context()

	// Fetch the record first so the confirmation can name it.
	var title string
	if wishlist {
		book, err := a.client.WishlistBook(ctx, id)
		if err != nil {
			return a.report(err)
		}
		title = book.Titre
	} else {
		book, err := a.client.Book(ctx, id)
		if err != nil {
			return a.report(err)
		}
		title = book.Titre
	}

	if !a.confirm(fmt.Sprintf("Delete %q?", title)) {
		a.noticef("Deletion cancelled.")
		return nil
	}

	if wishlist {
		result, err := a.client.DeleteWishlistBook(ctx, id)
		if err != nil {
			return a.report(err)
		}
		a.noticef("%s", result.Message)
		return a.runList(ctx, booklist.NewView(true))
	}
	result, err := a.client.DeleteBook(ctx, id)
	if err != nil {
		return a.report(err)
	}
	a.noticef("%s", result.Message)
	return a.runList(ctx, booklist.NewView(false))
}
