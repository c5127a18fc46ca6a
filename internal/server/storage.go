package server

import "context"

// BookStorage defines possible operations on book records. Records
// from both lists share one keyspace; the id is assigned by Add.
type BookStorage interface {
	Add(ctx context.Context, book Book) (int, error)
	GetOne(ctx context.Context, id int) (Book, error)
	Update(ctx context.Context, id int, book Book) error
	Delete(ctx context.Context, id int) error
	GetAll(ctx context.Context) ([]Book, error)
}
