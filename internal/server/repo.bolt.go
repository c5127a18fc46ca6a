package server

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

type boltBookStorage struct {
	logger *zap.Logger
	client *bolt.DB
	config *BoltDBConfig
}

// GetBoltDBClient setup the database and the bucket then provides a ready to use client.
func GetBoltDBClient(config *Config) (*bolt.DB, error) {
	db, err := bolt.Open(config.BoltDB.FilePath, 0o600, &bolt.Options{Timeout: config.BoltDB.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open the database, %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, errB := tx.CreateBucketIfNotExists([]byte(config.BoltDB.BucketName)); errB != nil {
			return fmt.Errorf("failed to create %s bucket: %v", config.BoltDB.BucketName, errB)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up bucket: %v", err)
	}
	return db, nil
}

// NewBoltBookStorage provides an instance of bolt-based book storage.
func NewBoltBookStorage(logger *zap.Logger, boltConfig *BoltDBConfig, client *bolt.DB) BookStorage {
	return &boltBookStorage{
		logger: logger,
		client: client,
		config: boltConfig,
	}
}

// Close shuts down the bolt-based book storage.
func (bs *boltBookStorage) Close() error {
	return bs.client.Close()
}

// itob returns the big-endian representation of id, so that bucket
// cursors iterate records in insertion order.
func itob(id int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

// Add inserts a new book record and returns the id taken from the
// bucket sequence.
func (bs *boltBookStorage) Add(_ context.Context, book Book) (int, error) {
	var id int
	err := bs.client.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bs.config.BucketName))
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		id = int(seq)
		book.ID = id
		bookBytes, err := json.Marshal(book)
		if err != nil {
			return err
		}
		return bucket.Put(itob(id), bookBytes)
	})
	return id, err
}

// GetOne retrieves a book record based on its ID from boltdb store.
func (bs *boltBookStorage) GetOne(_ context.Context, id int) (Book, error) {
	var book Book
	// initialize a readable transaction.
	tx, err := bs.client.Begin(false)
	if err != nil {
		return book, err
	}
	defer tx.Rollback()

	result := tx.Bucket([]byte(bs.config.BucketName)).Get(itob(id))
	if result == nil {
		return book, ErrBookNotFound
	}
	err = json.Unmarshal(result, &book)
	return book, err
}

// Update replaces an existing book record data.
func (bs *boltBookStorage) Update(_ context.Context, id int, book Book) error {
	book.ID = id
	bookBytes, err := json.Marshal(book)
	if err != nil {
		return err
	}
	return bs.client.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bs.config.BucketName))
		if bucket.Get(itob(id)) == nil {
			return ErrBookNotFound
		}
		return bucket.Put(itob(id), bookBytes)
	})
}

// Delete removes a book record based on its ID from boltdb store.
func (bs *boltBookStorage) Delete(_ context.Context, id int) error {
	return bs.client.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bs.config.BucketName))
		if bucket.Get(itob(id)) == nil {
			return ErrBookNotFound
		}
		return bucket.Delete(itob(id))
	})
}

// GetAll retrieves a list of all books stored in the bolt database.
func (bs *boltBookStorage) GetAll(_ context.Context) ([]Book, error) {
	tx, err := bs.client.Begin(false)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Create a cursor on the books' bucket.
	c := tx.Bucket([]byte(bs.config.BucketName)).Cursor()

	books := []Book{}
	for k, v := c.First(); k != nil; k, v = c.Next() {
		var book Book
		if err = json.Unmarshal(v, &book); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}
