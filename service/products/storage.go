package products

import (
	"context"
	"io"
)

type Storage interface {
	io.Closer

	// GetPage lists active products, optionally filtered by category,
	// ordered by sort order then slug. The cursor is the last returned
	// slug, the page starts after that product's position in the sort
	// order. A vanished cursor product ends the sequence.
	GetPage(ctx context.Context, categoryId string, limit uint32, cursor string) (page []Product, err error)

	GetBySlug(ctx context.Context, slug string) (p Product, err error)

	GetCategories(ctx context.Context) (cats []Category, err error)
}
