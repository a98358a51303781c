package catalog

import (
	"context"
	"slices"
	"sync"
)

// MemStore keeps the catalog as an ordered slice guarded by one lock, so the
// scan-then-mutate operations never interleave with each other.
type MemStore struct {
	mu     sync.RWMutex
	books  []Book
	nextID int
}

// NewMemStore returns a store holding a copy of seed in the given order.
func NewMemStore(seed []Book) *MemStore {
	s := &MemStore{
		books:  make([]Book, 0, len(seed)),
		nextID: 1,
	}
	for _, b := range seed {
		s.books = append(s.books, b.clone())
		if b.ID >= s.nextID {
			s.nextID = b.ID + 1
		}
	}
	return s
}

// NewStore returns a memory store preloaded with SeedBooks.
func NewStore() *MemStore {
	return NewMemStore(SeedBooks())
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books)
}

func (s *MemStore) ListAll(ctx context.Context) ([]Book, error) {
	return s.filter(func(Book) bool { return true }), nil
}

func (s *MemStore) GetByTitle(ctx context.Context, title string) (Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOfTitle(title)
	if i < 0 {
		return Book{}, ErrNotFound
	}
	return s.books[i].clone(), nil
}

func (s *MemStore) FilterByCategory(ctx context.Context, category string) ([]Book, error) {
	want := fold(category)
	return s.filter(func(b Book) bool {
		return fold(b.Category) == want
	}), nil
}

func (s *MemStore) FilterByAuthorAndCategory(ctx context.Context, author, category string) ([]Book, error) {
	wantAuthor, wantCategory := fold(author), fold(category)
	return s.filter(func(b Book) bool {
		return fold(b.Author) == wantAuthor && fold(b.Category) == wantCategory
	}), nil
}

func (s *MemStore) Insert(ctx context.Context, in BookInput) (Book, error) {
	if err := in.Validate(); err != nil {
		return Book{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := in.toBook(s.nextID)
	s.nextID++
	s.books = append(s.books, b)
	return b.clone(), nil
}

func (s *MemStore) ReplaceByTitle(ctx context.Context, title string, in BookInput) (Book, error) {
	if err := in.Validate(); err != nil {
		return Book{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfTitle(title)
	if i < 0 {
		return Book{}, ErrNotFound
	}

	b := in.toBook(s.books[i].ID)
	s.books[i] = b
	return b.clone(), nil
}

func (s *MemStore) DeleteByTitle(ctx context.Context, title string) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfTitle(title)
	if i < 0 {
		return Book{}, ErrNotFound
	}

	removed := s.books[i]
	s.books = slices.Delete(s.books, i, i+1)
	return removed, nil
}

// indexOfTitle must be called with s.mu held.
func (s *MemStore) indexOfTitle(title string) int {
	want := fold(title)
	return slices.IndexFunc(s.books, func(b Book) bool {
		return fold(b.Title) == want
	})
}

func (s *MemStore) filter(keep func(Book) bool) []Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Book, 0, len(s.books))
	for _, b := range s.books {
		if keep(b) {
			out = append(out, b.clone())
		}
	}
	return out
}
