package users

import (
	"context"
	"errors"
	"time"

	"github.com/floriva/shop-telegram/service/auth"
)

// Service resolves a verified Telegram identity to the local user record.
type Service interface {

	// GetOrCreate returns the record for the given identity, creating it on
	// first sight. A creator losing the concurrent first-sight race falls
	// back to the lookup instead of failing.
	GetOrCreate(ctx context.Context, tgUser auth.TelegramUser) (u User, created bool, err error)

	// Upsert is GetOrCreate that additionally refreshes the display fields
	// of a pre-existing record. Used by the login endpoint.
	Upsert(ctx context.Context, tgUser auth.TelegramUser) (u User, created bool, err error)

	Get(ctx context.Context, id int64) (u User, err error)
}

type service struct {
	stor Storage
	now  func() time.Time
}

func NewService(stor Storage) Service {
	return service{
		stor: stor,
		now:  time.Now,
	}
}

func (svc service) GetOrCreate(ctx context.Context, tgUser auth.TelegramUser) (u User, created bool, err error) {
	u, err = svc.stor.Get(ctx, tgUser.Id)
	if errors.Is(err, ErrNotFound) {
		u, created, err = svc.create(ctx, tgUser)
	}
	return
}

func (svc service) Upsert(ctx context.Context, tgUser auth.TelegramUser) (u User, created bool, err error) {
	u, err = svc.stor.Get(ctx, tgUser.Id)
	switch {
	case err == nil:
		fresh := newUser(tgUser, svc.now())
		u.FirstName = fresh.FirstName
		u.LastName = fresh.LastName
		u.UserName = fresh.UserName
		u.Locale = fresh.Locale
		u.Premium = fresh.Premium
		u.Seen = fresh.Seen
		err = svc.stor.Update(ctx, u)
	case errors.Is(err, ErrNotFound):
		u, created, err = svc.create(ctx, tgUser)
	}
	return
}

func (svc service) Get(ctx context.Context, id int64) (u User, err error) {
	u, err = svc.stor.Get(ctx, id)
	return
}

func (svc service) create(ctx context.Context, tgUser auth.TelegramUser) (u User, created bool, err error) {
	u = newUser(tgUser, svc.now())
	err = svc.stor.Create(ctx, u)
	switch {
	case err == nil:
		created = true
	case errors.Is(err, ErrAlreadyExists):
		// lost the race to a concurrent first sight
		u, err = svc.stor.Get(ctx, tgUser.Id)
	}
	return
}
