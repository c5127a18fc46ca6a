package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBooks() []Book {
	return []Book{
		{ID: 1, Titre: "Zanzibar", Auteur: "Brunner", Note: 4, Proprietaire: "J", StatutLecture: "lu"},
		{ID: 2, Titre: "accelerando", Auteur: "Stross", Note: 5, Proprietaire: "K", StatutLecture: "en_cours"},
		{ID: 3, Titre: "Blindsight", Auteur: "Watts", Proprietaire: "J", StatutLecture: "a_lire"},
		{ID: 4, Titre: "Ubik", Auteur: "Dick", Proprietaire: "K", EstWishlist: 1},
		{ID: 5, Titre: "Dune", Auteur: "Herbert", Proprietaire: "J", EstWishlist: 1},
	}
}

func TestCollectionListing(t *testing.T) {
	ls := newTestService(newMemoryBookStorage(seedBooks()...))

	books, stats, err := ls.Collection(context.Background(), CollectionFilter{})
	require.NoError(t, err)

	require.Len(t, books, 3, "wishlist records must not leak into the collection")
	assert.Equal(t, "accelerando", books[0].Titre, "ordering is by titre, case-insensitive")
	assert.Equal(t, "Blindsight", books[1].Titre)
	assert.Equal(t, "Zanzibar", books[2].Titre)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.MesLivres)
	assert.Equal(t, 1, stats.LivresK)
	assert.Equal(t, 1, stats.ALire)
	assert.Equal(t, 1, stats.EnCours)
	assert.Equal(t, 1, stats.Lus)
	require.NotNil(t, stats.NoteMoyenne)
	assert.InDelta(t, 4.5, *stats.NoteMoyenne, 0.001, "unrated books stay out of the average")
}

func TestCollectionStatsIgnoreFilters(t *testing.T) {
	ls := newTestService(newMemoryBookStorage(seedBooks()...))

	books, stats, err := ls.Collection(context.Background(), CollectionFilter{Proprietaire: "K", Statut: "en_cours"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "accelerando", books[0].Titre)
	assert.Equal(t, 3, stats.Total, "stats cover the whole collection, not the filtered subset")
}

func TestCollectionSearch(t *testing.T) {
	ls := newTestService(newMemoryBookStorage(seedBooks()...))

	books, _, err := ls.Collection(context.Background(), CollectionFilter{Query: "ZANZ"})
	require.NoError(t, err)
	require.Len(t, books, 1, "search is case-insensitive and defaults to titre")

	books, _, err = ls.Collection(context.Background(), CollectionFilter{Query: "watts", SearchBy: "auteur"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Blindsight", books[0].Titre)
}

func TestNoteMoyenneAbsentWhenNothingRated(t *testing.T) {
	ls := newTestService(newMemoryBookStorage(
		Book{ID: 1, Titre: "Blindsight", Auteur: "Watts", Proprietaire: "J", StatutLecture: "a_lire"},
	))
	_, stats, err := ls.Collection(context.Background(), CollectionFilter{})
	require.NoError(t, err)
	assert.Nil(t, stats.NoteMoyenne)
}

func TestWishlistListing(t *testing.T) {
	ls := newTestService(newMemoryBookStorage(seedBooks()...))

	books, stats, err := ls.Wishlist(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Dune", books[0].Titre)
	assert.Equal(t, "Ubik", books[1].Titre)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.MesSouhaits)
	assert.Equal(t, 1, stats.SouhaitsK)
}

func TestListsAreDisjointPerID(t *testing.T) {
	ls := newTestService(newMemoryBookStorage(seedBooks()...))
	ctx := context.Background()

	_, err := ls.CollectionBook(ctx, 4)
	assert.ErrorIs(t, err, ErrBookNotFound, "a wishlist id is invisible through the collection")

	_, err = ls.WishlistBook(ctx, 1)
	assert.ErrorIs(t, err, ErrBookNotFound, "a collection id is invisible through the wishlist")

	_, err = ls.DeleteCollectionBook(ctx, 4)
	assert.ErrorIs(t, err, ErrBookNotFound)

	err = ls.UpdateWishlistBook(ctx, 1, Book{Titre: "x", Auteur: "y"})
	assert.ErrorIs(t, err, ErrBookNotFound)

	_, err = ls.MoveToCollection(ctx, 1)
	assert.ErrorIs(t, err, ErrBookNotFound, "a collection record cannot be moved again")
}

func TestAddCollectionBookDefaults(t *testing.T) {
	var stored Book
	storage := &MockBookStorage{
		AddFunc: func(_ context.Context, book Book) (int, error) {
			stored = book
			return 9, nil
		},
	}
	ls := newTestService(storage)

	id, err := ls.AddCollectionBook(context.Background(), Book{Titre: "Ubik", Auteur: "Dick", EstWishlist: 1})
	require.NoError(t, err)
	assert.Equal(t, 9, id)
	assert.Equal(t, DefaultProprietaire, stored.Proprietaire)
	assert.Equal(t, DefaultStatutLecture, stored.StatutLecture)
	assert.Zero(t, stored.EstWishlist, "the collection endpoint always files in the collection")
}

func TestAddWishlistBookDropsCollectionFields(t *testing.T) {
	var stored Book
	storage := &MockBookStorage{
		AddFunc: func(_ context.Context, book Book) (int, error) {
			stored = book
			return 10, nil
		},
	}
	ls := newTestService(storage)

	_, err := ls.AddWishlistBook(context.Background(), Book{
		Titre: "Ubik", Auteur: "Dick", Proprietaire: "K", Note: 5, StatutLecture: "lu",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stored.EstWishlist)
	assert.Zero(t, stored.Note)
	assert.Empty(t, stored.StatutLecture)
	assert.Equal(t, "K", stored.Proprietaire)
}

func TestUpdateWishlistBookTouchesThreeFieldsOnly(t *testing.T) {
	storage := newMemoryBookStorage(Book{ID: 4, Titre: "Ubik", Auteur: "Dick", Proprietaire: "K", EstWishlist: 1})
	ls := newTestService(storage)
	ctx := context.Background()

	err := ls.UpdateWishlistBook(ctx, 4, Book{Titre: "Ubik!", Auteur: "P. K. Dick", Proprietaire: "J", Note: 5, StatutLecture: "lu"})
	require.NoError(t, err)

	book, err := ls.WishlistBook(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "Ubik!", book.Titre)
	assert.Equal(t, "P. K. Dick", book.Auteur)
	assert.Equal(t, "J", book.Proprietaire)
	assert.Zero(t, book.Note)
	assert.Empty(t, book.StatutLecture)
	assert.Equal(t, 1, book.EstWishlist)
}

func TestMoveToCollection(t *testing.T) {
	storage := newMemoryBookStorage(seedBooks()...)
	ls := newTestService(storage)
	ctx := context.Background()

	moved, err := ls.MoveToCollection(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, moved.ID, "the record keeps its id across the move")
	assert.Zero(t, moved.EstWishlist)
	assert.Equal(t, StatutALire, moved.StatutLecture)

	// The record is now reachable through the collection only.
	book, err := ls.CollectionBook(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, StatutALire, book.StatutLecture)
	_, err = ls.WishlistBook(ctx, 4)
	assert.ErrorIs(t, err, ErrBookNotFound)

	_, stats, err := ls.Wishlist(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
}

func TestDeleteReturnsTheRemovedBook(t *testing.T) {
	storage := newMemoryBookStorage(seedBooks()...)
	ls := newTestService(storage)
	ctx := context.Background()

	book, err := ls.DeleteCollectionBook(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Zanzibar", book.Titre)

	_, err = ls.CollectionBook(ctx, 1)
	assert.ErrorIs(t, err, ErrBookNotFound)
}
