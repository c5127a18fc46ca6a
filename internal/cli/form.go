package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jayman971/ma-bibliotheque-api/internal/booklist"
	"github.com/Jayman971/ma-bibliotheque-api/internal/client"
)

type formFlags struct {
	title    string
	author   string
	owner    string
	rating   int
	status   string
	wishlist bool
}

func addFormFlags(cmd *cobra.Command, flags *formFlags) {
	cmd.Flags().StringVarP(&flags.title, "title", "t", "", "book title")
	cmd.Flags().StringVarP(&flags.author, "author", "a", "", "book author")
	cmd.Flags().StringVarP(&flags.owner, "owner", "o", "J", "owner of the book (J or K)")
	cmd.Flags().IntVarP(&flags.rating, "rating", "r", 0, "rating from 1 to 5, 0 for unrated")
	cmd.Flags().StringVarP(&flags.status, "status", "s", "lu", "reading status: a_lire, en_cours or lu")
	cmd.Flags().BoolVarP(&flags.wishlist, "wishlist", "w", false, "file the record in the wishlist")
}

func validateForm(flags formFlags) error {
	if strings.TrimSpace(flags.title) == "" || strings.TrimSpace(flags.author) == "" {
		return fmt.Errorf("both --title and --author are required")
	}
	if flags.wishlist {
		return nil
	}
	if flags.rating < 0 || flags.rating > 5 {
		return fmt.Errorf("invalid --rating %d: must be between 0 and 5", flags.rating)
	}
	switch flags.status {
	case "a_lire", "en_cours", "lu":
		return nil
	default:
		return fmt.Errorf("invalid --status %q: must be a_lire, en_cours or lu", flags.status)
	}
}

func newAddCmd(app *App) *cobra.Command {
	var flags formFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the collection or the wishlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateForm(flags); err != nil {
				return app.report(err)
			}
			ctx := cmd.Context()

			if flags.wishlist {
				result, err := app.client.AddWishlistBook(ctx, client.Book{
					Titre:        strings.TrimSpace(flags.title),
					Auteur:       strings.TrimSpace(flags.author),
					Proprietaire: flags.owner,
				})
				if err != nil {
					return app.report(err)
				}
				app.noticef("%s", result.Message)
				return app.runList(ctx, booklist.NewView(true))
			}

			result, err := app.client.AddBook(ctx, client.Book{
				Titre:         strings.TrimSpace(flags.title),
				Auteur:        strings.TrimSpace(flags.author),
				Proprietaire:  flags.owner,
				Note:          flags.rating,
				StatutLecture: flags.status,
			})
			if err != nil {
				return app.report(err)
			}
			app.noticef("%s", result.Message)
			return app.runList(ctx, booklist.NewView(false))
		},
	}
	addFormFlags(cmd, &flags)
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var flags formFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing record",
		Long:  "Edit a record of the collection or, with --wishlist, of the wishlist.\nOnly the fields given as flags change; the rest keep their current value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBookID(args[0])
			if err != nil {
				return app.report(err)
			}
			return app.runEdit(cmd, id, flags)
		},
	}
	addFormFlags(cmd, &flags)
	return cmd
}

// runEdit prefills the form from the current record and overlays the
// flags the user actually set. A failed prefill aborts the edit so a
// partial form can never overwrite a record it could not read.
func (a *App) runEdit(cmd *cobra.Command, id int, flags formFlags) error {
	ctx := cmd.Context()
	changed := cmd.Flags().Changed

	if flags.wishlist {
		book, err := a.client.WishlistBook(ctx, id)
		if err != nil {
			return a.report(err)
		}
		if changed("title") {
			book.Titre = strings.TrimSpace(flags.title)
		}
		if changed("author") {
			book.Auteur = strings.TrimSpace(flags.author)
		}
		if changed("owner") {
			book.Proprietaire = flags.owner
		}
		if book.Titre == "" || book.Auteur == "" {
			return a.report(fmt.Errorf("title and author cannot be empty"))
		}
		result, err := a.client.UpdateWishlistBook(ctx, id, book)
		if err != nil {
			return a.report(err)
		}
		a.noticef("%s", result.Message)
		return a.runList(ctx, booklist.NewView(true))
	}

	book, err := a.client.Book(ctx, id)
	if err != nil {
		return a.report(err)
	}
	if changed("title") {
		book.Titre = strings.TrimSpace(flags.title)
	}
	if changed("author") {
		book.Auteur = strings.TrimSpace(flags.author)
	}
	if changed("owner") {
		book.Proprietaire = flags.owner
	}
	if changed("rating") {
		if flags.rating < 0 || flags.rating > 5 {
			return a.report(fmt.Errorf("invalid --rating %d: must be between 0 and 5", flags.rating))
		}
		book.Note = flags.rating
	}
	if changed("status") {
		switch flags.status {
		case "a_lire", "en_cours", "lu":
			book.StatutLecture = flags.status
		default:
			return a.report(fmt.Errorf("invalid --status %q: must be a_lire, en_cours or lu", flags.status))
		}
	}
	if book.Titre == "" || book.Auteur == "" {
		return a.report(fmt.Errorf("title and author cannot be empty"))
	}
	result, err := a.client.UpdateBook(ctx, id, book)
	if err != nil {
		return a.report(err)
	}
	a.noticef("%s", result.Message)
	return a.runList(ctx, booklist.NewView(false))
}
