package tokens

import (
	"context"
	"fmt"
	"log/slog"
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

// token values deliberately never appear in the log output

func (sl serviceLogging) Issue(userId int64) (p Pair, err error) {
	p, err = sl.svc.Issue(userId)
	sl.log.Log(context.TODO(), sl.logLevel(err), fmt.Sprintf("tokens.Issue(%d): err=%s", userId, err))
	return
}

func (sl serviceLogging) Verify(access string) (userId int64, err error) {
	userId, err = sl.svc.Verify(access)
	sl.log.Log(context.TODO(), sl.logLevel(err), fmt.Sprintf("tokens.Verify(): userId=%d, err=%s", userId, err))
	return
}

func (sl serviceLogging) Refresh(refresh string) (access string, err error) {
	access, err = sl.svc.Refresh(refresh)
	sl.log.Log(context.TODO(), sl.logLevel(err), fmt.Sprintf("tokens.Refresh(): err=%s", err))
	return
}

func (sl serviceLogging) logLevel(err error) (lvl slog.Level) {
	switch err {
	case nil:
		lvl = slog.LevelDebug
	default:
		lvl = slog.LevelWarn
	}
	return
}
