package users

import (
	"context"
	"io"
)

type Storage interface {
	io.Closer
	Create(ctx context.Context, u User) (err error)
	Get(ctx context.Context, id int64) (u User, err error)
	Update(ctx context.Context, u User) (err error)
}
