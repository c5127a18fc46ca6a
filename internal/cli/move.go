package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jayman971/ma-bibliotheque-api/internal/booklist"
)

func newMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id>",
		Short: "Move a wishlist record into the collection",
		Long:  "Move a book from the wishlist into the collection.\nThe book arrives unrated with its reading status set to \"to read\".",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBookID(args[0])
			if err != nil {
				return app.report(err)
			}
			ctx := cmd.Context()

			book, err := app.client.WishlistBook(ctx, id)
			if err != nil {
				return app.report(err)
			}
			if !app.confirm(fmt.Sprintf("Add %q to your collection?", book.Titre)) {
				app.noticef("Move cancelled.")
				return nil
			}

			result, err := app.client.MoveToCollection(ctx, id)
			if err != nil {
				return app.report(err)
			}
			app.noticef("%s", result.Message)
			return app.runList(ctx, booklist.NewView(true))
		},
	}
}
