// Package booklist holds the client-side state of a book listing:
// which list is shown, the active sort, and the active filters. The
// server filters, the client sorts.
package booklist

import (
	"net/url"
	"sort"
	"strings"

	"github.com/Jayman971/ma-bibliotheque-api/internal/client"
)

// Column names a sortable or searchable attribute of a listing.
type Column string

const (
	ColumnTitre        Column = "titre"
	ColumnAuteur       Column = "auteur"
	ColumnProprietaire Column = "proprietaire"
	ColumnNote         Column = "note"
	ColumnStatut       Column = "statut_lecture"
)

// Direction is a sort order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// View is the explicit state of one listing. The collection and the
// wishlist each own an independent View; nothing is shared or global.
type View struct {
	Wishlist      bool
	SortColumn    Column
	SortDirection Direction

	// Server-side filters. Query/SearchBy apply to both lists;
	// Proprietaire and Statut are collection-only.
	Query        string
	SearchBy     Column
	Proprietaire string
	Statut       string
}

// NewView returns the default state of a listing: sorted by title
// ascending, no filters, searching on title.
func NewView(wishlist bool) View {
	return View{
		Wishlist:      wishlist,
		SortColumn:    ColumnTitre,
		SortDirection: Ascending,
		SearchBy:      ColumnTitre,
	}
}

// ToggleSort applies one header activation: same column flips the
// direction, a new column takes over ascending.
func (v *View) ToggleSort(column Column) {
	if v.SortColumn == column {
		if v.SortDirection == Ascending {
			v.SortDirection = Descending
		} else {
			v.SortDirection = Ascending
		}
		return
	}
	v.SortColumn = column
	v.SortDirection = Ascending
}

// Params renders the active filters as request query parameters. Empty
// filters are omitted entirely, and search_by only travels alongside a
// non-empty query.
func (v View) Params() url.Values {
	params := url.Values{}
	if v.Query != "" {
		params.Set("query", v.Query)
		params.Set("search_by", string(v.SearchBy))
	}
	if !v.Wishlist {
		if v.Proprietaire != "" {
			params.Set("proprietaire", v.Proprietaire)
		}
		if v.Statut != "" {
			params.Set("statut", v.Statut)
		}
	}
	return params
}

// Sort orders books in place according to the view's active sort.
func (v View) Sort(books []client.Book) {
	Sort(books, v.SortColumn, v.SortDirection)
}

// Sort orders books in place by the given column and direction. Text
// columns compare case-insensitively; an absent rating counts as zero
// and an absent reading status as the empty string, so unrated and
// unknown-status records group first in ascending order. Ties break on
// id, which makes the two directions exact mirrors of each other.
func Sort(books []client.Book, column Column, direction Direction) {
	sort.Slice(books, func(i, j int) bool {
		c := compare(books[i], books[j], column)
		if c == 0 {
			c = books[i].ID - books[j].ID
		}
		if direction == Descending {
			return c > 0
		}
		return c < 0
	})
}

func compare(a, b client.Book, column Column) int {
	switch column {
	case ColumnNote:
		return a.Note - b.Note
	case ColumnAuteur:
		return compareFold(a.Auteur, b.Auteur)
	case ColumnProprietaire:
		return compareFold(a.Proprietaire, b.Proprietaire)
	case ColumnStatut:
		return compareFold(a.StatutLecture, b.StatutLecture)
	default:
		return compareFold(a.Titre, b.Titre)
	}
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
