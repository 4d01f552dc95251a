package orders

import (
	"context"
	"io"
)

type Storage interface {
	io.Closer
	Create(ctx context.Context, o Order) (err error)
	Get(ctx context.Context, id string) (o Order, err error)

	// GetPage lists the user's orders, newest first, starting after the
	// cursor order id.
	GetPage(ctx context.Context, userId int64, limit uint32, cursor string) (page []Order, err error)
}
