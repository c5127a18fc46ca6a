package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// HLivres is the hash holding every record, keyed by id.
	HLivres string = "livres"
	// KLivresSeq is the counter producing new record ids.
	KLivresSeq string = "livres:next_id"
)

type redisBookStorage struct {
	logger *zap.Logger
	client *redis.Client
}

// NewRedisBookStorage provides an instance of redis-based book storage.
func NewRedisBookStorage(logger *zap.Logger, client *redis.Client) BookStorage {
	return &redisBookStorage{
		logger: logger,
		client: client,
	}
}

// GetRedisClient provides a ready to use redis client.
func GetRedisClient(config *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", config.Redis.Host, config.Redis.Port),
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
		Password:     config.Redis.Password,
		Username:     config.Redis.Username,
		DB:           config.Redis.DatabaseIndex,
	})

	// test connection.
	if pong, err := client.Ping(context.Background()).Result(); pong != "PONG" || err != nil {
		return client, fmt.Errorf("test connection failed: %v", err)
	}
	return client, nil
}

// Add inserts a new book record under the next sequence id.
func (rs *redisBookStorage) Add(ctx context.Context, book Book) (int, error) {
	seq, err := rs.client.Incr(ctx, KLivresSeq).Result()
	if err != nil {
		return 0, err
	}
	id := int(seq)
	book.ID = id
	bookBytes, err := json.Marshal(book)
	if err != nil {
		return 0, err
	}
	return id, rs.client.HSet(ctx, HLivres, strconv.Itoa(id), bookBytes).Err()
}

// GetOne retrieves a book record based on its ID.
func (rs *redisBookStorage) GetOne(ctx context.Context, id int) (Book, error) {
	var book Book
	bookJSONString, err := rs.client.HGet(ctx, HLivres, strconv.Itoa(id)).Result()
	if err == redis.Nil {
		return book, ErrBookNotFound
	}
	if err != nil {
		return book, err
	}
	err = json.Unmarshal([]byte(bookJSONString), &book)
	return book, err
}

// Update replaces an existing book record data.
func (rs *redisBookStorage) Update(ctx context.Context, id int, book Book) error {
	exists, err := rs.client.HExists(ctx, HLivres, strconv.Itoa(id)).Result()
	if err != nil {
		return err
	}
	if !exists {
		return ErrBookNotFound
	}
	book.ID = id
	bookBytes, err := json.Marshal(book)
	if err != nil {
		return err
	}
	return rs.client.HSet(ctx, HLivres, strconv.Itoa(id), bookBytes).Err()
}

// Delete removes a book record based on its ID.
func (rs *redisBookStorage) Delete(ctx context.Context, id int) error {
	removed, err := rs.client.HDel(ctx, HLivres, strconv.Itoa(id)).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrBookNotFound
	}
	return nil
}

// GetAll retrieves a list of all books stored in the redis database.
func (rs *redisBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	mapBooks, err := rs.client.HVals(ctx, HLivres).Result()
	if err != nil {
		return nil, err
	}
	books := []Book{}
	for _, bookJSONString := range mapBooks {
		var book Book
		if err = json.Unmarshal([]byte(bookJSONString), &book); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}
