package catalog

import "context"

// Store is the book catalog contract. Title lookups compare case-folded
// text and act on the first match in insertion order.
type Store interface {
	Ping(ctx context.Context) error

	ListAll(ctx context.Context) ([]Book, error)
	GetByTitle(ctx context.Context, title string) (Book, error)
	FilterByCategory(ctx context.Context, category string) ([]Book, error)
	FilterByAuthorAndCategory(ctx context.Context, author, category string) ([]Book, error)

	Insert(ctx context.Context, in BookInput) (Book, error)
	ReplaceByTitle(ctx context.Context, title string, in BookInput) (Book, error)
	DeleteByTitle(ctx context.Context, title string) (Book, error)
}
