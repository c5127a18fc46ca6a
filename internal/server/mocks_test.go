package server

import (
	"context"

	"go.uber.org/zap"
)

// MockBookStorage implements BookStorage with configurable func fields
// so each test provides only the behavior it cares about.
type MockBookStorage struct {
	AddFunc    func(ctx context.Context, book Book) (int, error)
	GetOneFunc func(ctx context.Context, id int) (Book, error)
	UpdateFunc func(ctx context.Context, id int, book Book) error
	DeleteFunc func(ctx context.Context, id int) error
	GetAllFunc func(ctx context.Context) ([]Book, error)
}

func (m *MockBookStorage) Add(ctx context.Context, book Book) (int, error) {
	return m.AddFunc(ctx, book)
}

func (m *MockBookStorage) GetOne(ctx context.Context, id int) (Book, error) {
	return m.GetOneFunc(ctx, id)
}

func (m *MockBookStorage) Update(ctx context.Context, id int, book Book) error {
	return m.UpdateFunc(ctx, id, book)
}

func (m *MockBookStorage) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}

func (m *MockBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	return m.GetAllFunc(ctx)
}

// memoryBookStorage is an in-memory BookStorage for service tests that
// need real state transitions rather than canned answers.
type memoryBookStorage struct {
	nextID int
	books  map[int]Book
}

func newMemoryBookStorage(seed ...Book) *memoryBookStorage {
	s := &memoryBookStorage{books: map[int]Book{}}
	for _, book := range seed {
		if book.ID > s.nextID {
			s.nextID = book.ID
		}
		s.books[book.ID] = book
	}
	return s
}

func (s *memoryBookStorage) Add(_ context.Context, book Book) (int, error) {
	s.nextID++
	book.ID = s.nextID
	s.books[book.ID] = book
	return book.ID, nil
}

func (s *memoryBookStorage) GetOne(_ context.Context, id int) (Book, error) {
	book, ok := s.books[id]
	if !ok {
		return Book{}, ErrBookNotFound
	}
	return book, nil
}

func (s *memoryBookStorage) Update(_ context.Context, id int, book Book) error {
	if _, ok := s.books[id]; !ok {
		return ErrBookNotFound
	}
	book.ID = id
	s.books[id] = book
	return nil
}

func (s *memoryBookStorage) Delete(_ context.Context, id int) error {
	if _, ok := s.books[id]; !ok {
		return ErrBookNotFound
	}
	delete(s.books, id)
	return nil
}

func (s *memoryBookStorage) GetAll(_ context.Context) ([]Book, error) {
	all := make([]Book, 0, len(s.books))
	for _, book := range s.books {
		all = append(all, book)
	}
	return all, nil
}

func newTestConfig() *Config {
	return &Config{
		Auth: AuthConfig{
			Users:   map[string]string{"admin": "secret"},
			APIKeys: map[string]string{"test-key": "admin"},
		},
	}
}

func newTestService(storage BookStorage) LibraryServiceProvider {
	return NewLibraryService(zap.NewNop(), newTestConfig(), storage)
}
