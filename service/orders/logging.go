package orders

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/floriva/shop-telegram/service/users"
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

func (sl serviceLogging) Create(ctx context.Context, u users.User, in CreateInput) (o Order, err error) {
	o, err = sl.svc.Create(ctx, u, in)
	sl.log.Log(ctx, sl.logLevel(err), fmt.Sprintf("orders.Create(%d, %d items): id=%s, total=%d, err=%s", u.Id, len(in.Items), o.Id, o.Total, err))
	return
}

func (sl serviceLogging) Get(ctx context.Context, userId int64, id string) (o Order, err error) {
	o, err = sl.svc.Get(ctx, userId, id)
	sl.log.Log(ctx, sl.logLevel(err), fmt.Sprintf("orders.Get(%d, %s): err=%s", userId, id, err))
	return
}

func (sl serviceLogging) GetPage(ctx context.Context, userId int64, limit uint32, cursor string) (page []Order, err error) {
	page, err = sl.svc.GetPage(ctx, userId, limit, cursor)
	sl.log.Log(ctx, sl.logLevel(err), fmt.Sprintf("orders.GetPage(%d, %d, %s): %d, err=%s", userId, limit, cursor, len(page), err))
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
