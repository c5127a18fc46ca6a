package booklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jayman971/ma-bibliotheque-api/internal/client"
)

func TestNewViewDefaults(t *testing.T) {
	v := NewView(false)
	assert.False(t, v.Wishlist)
	assert.Equal(t, ColumnTitre, v.SortColumn)
	assert.Equal(t, Ascending, v.SortDirection)
	assert.Equal(t, ColumnTitre, v.SearchBy)
	assert.Empty(t, v.Params())
}

func TestToggleSort(t *testing.T) {
	v := NewView(false)

	v.ToggleSort(ColumnTitre)
	assert.Equal(t, ColumnTitre, v.SortColumn)
	assert.Equal(t, Descending, v.SortDirection, "same column should flip the direction")

	v.ToggleSort(ColumnTitre)
	assert.Equal(t, Ascending, v.SortDirection)

	v.ToggleSort(ColumnNote)
	assert.Equal(t, ColumnNote, v.SortColumn)
	assert.Equal(t, Ascending, v.SortDirection, "new column should start ascending")
}

func TestParams(t *testing.T) {
	t.Run("collection filters", func(t *testing.T) {
		v := NewView(false)
		v.Proprietaire = "K"
		v.Statut = "a_lire"
		params := v.Params()
		assert.Equal(t, "proprietaire=K&statut=a_lire", params.Encode())
		assert.NotContains(t, params, "query")
		assert.NotContains(t, params, "search_by")
	})

	t.Run("search carries search_by", func(t *testing.T) {
		v := NewView(false)
		v.Query = "dune"
		v.SearchBy = ColumnAuteur
		params := v.Params()
		assert.Equal(t, "dune", params.Get("query"))
		assert.Equal(t, "auteur", params.Get("search_by"))
	})

	t.Run("wishlist drops collection-only filters", func(t *testing.T) {
		v := NewView(true)
		v.Proprietaire = "J"
		v.Statut = "lu"
		assert.Empty(t, v.Params())
	})
}

func sampleBooks() []client.Book {
	return []client.Book{
		{ID: 1, Titre: "zanzibar", Auteur: "Brunner", Note: 4, StatutLecture: "lu"},
		{ID: 2, Titre: "Accelerando", Auteur: "stross", Note: 5, StatutLecture: "en_cours"},
		{ID: 3, Titre: "Blindsight", Auteur: "Watts", StatutLecture: "a_lire"},
		{ID: 4, Titre: "dune", Auteur: "Herbert", Note: 3},
	}
}

func titles(books []client.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Titre)
	}
	return out
}

func TestSortTitleCaseInsensitive(t *testing.T) {
	books := sampleBooks()
	Sort(books, ColumnTitre, Ascending)
	assert.Equal(t, []string{"Accelerando", "Blindsight", "dune", "zanzibar"}, titles(books))
}

func TestSortUnratedFirstAscending(t *testing.T) {
	books := sampleBooks()
	Sort(books, ColumnNote, Ascending)
	require.Equal(t, "Blindsight", books[0].Titre, "a record without a rating should sort as zero")
	assert.Equal(t, "zanzibar", books[2].Titre)
	assert.Equal(t, "Accelerando", books[3].Titre)
}

func TestSortMissingStatusFirstAscending(t *testing.T) {
	books := sampleBooks()
	Sort(books, ColumnStatut, Ascending)
	assert.Equal(t, "dune", books[0].Titre, "a record without a status should group first")
}

func TestSortDirectionsAreMirrors(t *testing.T) {
	columns := []Column{ColumnTitre, ColumnAuteur, ColumnNote, ColumnStatut, ColumnProprietaire}
	for _, column := range columns {
		asc := sampleBooks()
		desc := sampleBooks()
		Sort(asc, column, Ascending)
		Sort(desc, column, Descending)
		require.Len(t, desc, len(asc))
		for i := range asc {
			assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID,
				"column %s: descending should be the exact reverse of ascending", column)
		}
	}
}
