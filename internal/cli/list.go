package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jayman971/ma-bibliotheque-api/internal/booklist"
)

type listFlags struct {
	query    string
	searchBy string
	owner    string
	status   string
	sortBy   string
	desc     bool
}

func newCollectionCmd(app *App) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:     "collection",
		Aliases: []string{"books"},
		Short:   "List the reading collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := buildView(false, flags)
			if err != nil {
				return app.report(err)
			}
			return app.runList(cmd.Context(), view)
		},
	}
	addListFlags(cmd, &flags, false)
	return cmd
}

func newWishlistCmd(app *App) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "List the wishlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := buildView(true, flags)
			if err != nil {
				return app.report(err)
			}
			return app.runList(cmd.Context(), view)
		},
	}
	addListFlags(cmd, &flags, true)
	return cmd
}

func addListFlags(cmd *cobra.Command, flags *listFlags, wishlist bool) {
	cmd.Flags().StringVarP(&flags.query, "query", "q", "", "text search on title or author")
	cmd.Flags().StringVar(&flags.searchBy, "search-by", "titre", "search field: titre or auteur")
	cmd.Flags().StringVar(&flags.sortBy, "sort", "titre", "sort column")
	cmd.Flags().BoolVar(&flags.desc, "desc", false, "sort descending")
	if !wishlist {
		cmd.Flags().StringVar(&flags.owner, "owner", "", "filter by owner (J or K)")
		cmd.Flags().StringVar(&flags.status, "status", "", "filter by reading status: a_lire, en_cours or lu")
	}
}

// buildView validates the flags of a listing command into an explicit
// view state. Each invocation owns its view; nothing leaks between the
// collection and the wishlist.
func buildView(wishlist bool, flags listFlags) (booklist.View, error) {
	view := booklist.NewView(wishlist)
	view.Query = strings.TrimSpace(flags.query)

	switch flags.searchBy {
	case "titre", "auteur":
		view.SearchBy = booklist.Column(flags.searchBy)
	default:
		return booklist.View{}, fmt.Errorf("invalid --search-by %q: must be titre or auteur", flags.searchBy)
	}

	if !wishlist {
		view.Proprietaire = strings.TrimSpace(flags.owner)
		view.Statut = strings.TrimSpace(flags.status)
	}

	column := booklist.Column(flags.sortBy)
	if !sortableColumn(wishlist, column) {
		return booklist.View{}, fmt.Errorf("invalid --sort %q for this list", flags.sortBy)
	}
	view.SortColumn = column
	if flags.desc {
		view.SortDirection = booklist.Descending
	}
	return view, nil
}

func sortableColumn(wishlist bool, column booklist.Column) bool {
	switch column {
	case booklist.ColumnTitre, booklist.ColumnAuteur, booklist.ColumnProprietaire:
		return true
	case booklist.ColumnNote, booklist.ColumnStatut:
		return !wishlist
	default:
		return false
	}
}

// runList fetches one listing with the view's server-side filters,
// sorts it locally, and renders it.
func (a *App) runList(ctx context.Context, view booklist.View) error {
	if view.Wishlist {
		resp, err := a.client.Wishlist(ctx, view.Params())
		if err != nil {
			return a.report(err)
		}
		books := resp.WishlistBooks
		view.Sort(books)
		a.renderWishlist(books, resp.Stats)
		return nil
	}

	resp, err := a.client.Books(ctx, view.Params())
	if err != nil {
		return a.report(err)
	}
	books := resp.Books
	view.Sort(books)
	a.renderCollection(books, resp.Stats)
	return nil
}
