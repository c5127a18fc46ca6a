package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/Jayman971/ma-bibliotheque-api/internal/client"
)

// statusLabel maps the wire reading statuses to display labels.
func statusLabel(statut string) string {
	switch statut {
	case "a_lire":
		return "to read"
	case "en_cours":
		return "reading"
	case "lu":
		return "read"
	case "":
		return "-"
	default:
		return statut
	}
}

func ratingLabel(note int) string {
	if note == 0 {
		return "-"
	}
	return fmt.Sprintf("%d/5", note)
}

func (a *App) renderCollection(books []client.Book, stats client.Stats) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tOWNER\tRATING\tSTATUS")
	for _, b := range books {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			b.ID, b.Titre, b.Auteur, b.Proprietaire, ratingLabel(b.Note), statusLabel(b.StatutLecture))
	}
	w.Flush()

	fmt.Fprintf(a.out, "\n%d books", stats.Int("total"))
	if _, ok := stats["note_moyenne"].(float64); ok {
		fmt.Fprintf(a.out, ", average rating %.1f/5", stats.Float("note_moyenne"))
	}
	fmt.Fprintln(a.out)
}

func (a *App) renderWishlist(books []client.Book, stats client.Stats) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tOWNER")
	for _, b := range books {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", b.ID, b.Titre, b.Auteur, b.Proprietaire)
	}
	w.Flush()

	fmt.Fprintf(a.out, "\n%d wished books\n", stats.Int("total"))
}

func (a *App) renderDetail(book client.Book, wishlist bool) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%d\n", book.ID)
	fmt.Fprintf(w, "Title\t%s\n", book.Titre)
	fmt.Fprintf(w, "Author\t%s\n", book.Auteur)
	fmt.Fprintf(w, "Owner\t%s\n", book.Proprietaire)
	if !wishlist {
		fmt.Fprintf(w, "Rating\t%s\n", ratingLabel(book.Note))
		fmt.Fprintf(w, "Status\t%s\n", statusLabel(book.StatutLecture))
	}
	w.Flush()
}
