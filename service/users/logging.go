package users

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/floriva/shop-telegram/service/auth"
)

type serviceLogging struct {
	svc Service
	log *slog.Logger
}

func NewServiceLogging(svc Service, log *slog.Logger) Service {
	return serviceLogging{
		svc: svc,
		log: log,
	}
}

func (sl serviceLogging) GetOrCreate(ctx context.Context, tgUser auth.TelegramUser) (u User, created bool, err error) {
	u, created, err = sl.svc.GetOrCreate(ctx, tgUser)
	sl.log.Log(ctx, sl.logLevel(err), fmt.Sprintf("users.GetOrCreate(%d): created=%t, err=%s", tgUser.Id, created, err))
	return
}

func (sl serviceLogging) Upsert(ctx context.Context, tgUser auth.TelegramUser) (u User, created bool, err error) {
	u, created, err = sl.svc.Upsert(ctx, tgUser)
	sl.log.Log(ctx, sl.logLevel(err), fmt.Sprintf("users.Upsert(%d): created=%t, err=%s", tgUser.Id, created, err))
	return
}

func (sl serviceLogging) Get(ctx context.Context, id int64) (u User, err error) {
	u, err = sl.svc.Get(ctx, id)
	sl.log.Log(ctx, sl.logLevel(err), fmt.Sprintf("users.Get(%d): err=%s", id, err))
	return
}

func (sl serviceLogging) logLevel(err error) (lvl slog.Level) {
	switch err {
	case nil:
		lvl = slog.LevelDebug
	default:
		lvl = slog.LevelError
	}
	return
}
