package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBoltTestStorage(t *testing.T) BookStorage {
	t.Helper()
	config := &Config{
		BoltDB: BoltDBConfig{
			FilePath:   filepath.Join(t.TempDir(), "biblio_test.db"),
			BucketName: "livres",
			Timeout:    time.Second,
		},
	}
	client, err := GetBoltDBClient(config)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return NewBoltBookStorage(zap.NewNop(), &config.BoltDB, client)
}

func TestBoltStore(t *testing.T) {
	bs := newBoltTestStorage(t)
	ctx := context.Background()

	testBook := Book{Titre: "Zanzibar", Auteur: "Brunner", Note: 4, Proprietaire: "J", StatutLecture: "lu"}

	var firstID int
	t.Run("Add Book", func(t *testing.T) {
		id, err := bs.Add(ctx, testBook)
		require.NoError(t, err)
		assert.Equal(t, 1, id, "ids come from the bucket sequence")
		firstID = id

		id, err = bs.Add(ctx, Book{Titre: "Dune", Auteur: "Herbert", Proprietaire: "K", EstWishlist: 1})
		require.NoError(t, err)
		assert.Equal(t, 2, id)
	})

	t.Run("Get Existent Book", func(t *testing.T) {
		book, err := bs.GetOne(ctx, firstID)
		require.NoError(t, err)
		assert.Equal(t, firstID, book.ID)
		assert.Equal(t, "Zanzibar", book.Titre)
		assert.Equal(t, 4, book.Note)
	})

	t.Run("Get Non-Existent Book", func(t *testing.T) {
		_, err := bs.GetOne(ctx, 99)
		assert.ErrorIs(t, err, ErrBookNotFound)
	})

	t.Run("Update Existent Book", func(t *testing.T) {
		updated := testBook
		updated.Note = 2
		updated.StatutLecture = "en_cours"
		require.NoError(t, bs.Update(ctx, firstID, updated))

		book, err := bs.GetOne(ctx, firstID)
		require.NoError(t, err)
		assert.Equal(t, 2, book.Note)
		assert.Equal(t, "en_cours", book.StatutLecture)
	})

	t.Run("Update Non-Existent Book", func(t *testing.T) {
		assert.ErrorIs(t, bs.Update(ctx, 99, testBook), ErrBookNotFound)
	})

	t.Run("Get All Books", func(t *testing.T) {
		books, err := bs.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, books, 2)
	})

	t.Run("Delete Existent Book", func(t *testing.T) {
		require.NoError(t, bs.Delete(ctx, firstID))
		_, err := bs.GetOne(ctx, firstID)
		assert.ErrorIs(t, err, ErrBookNotFound)
	})

	t.Run("Delete Non-Existent Book", func(t *testing.T) {
		assert.ErrorIs(t, bs.Delete(ctx, firstID), ErrBookNotFound)
	})

	t.Run("Sequence Never Reuses Ids", func(t *testing.T) {
		id, err := bs.Add(ctx, testBook)
		require.NoError(t, err)
		assert.Equal(t, 3, id, "deleting a record must not recycle its id")
	})
}
