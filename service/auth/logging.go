package auth

import (
	"context"
	"errors"
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

// Verify logs the outcome only: neither the payload nor the secret may
// ever reach the log output.
func (sl serviceLogging) Verify(raw string) (d InitData, err error) {
	d, err = sl.svc.Verify(raw)
	sl.log.Log(context.TODO(), sl.logLevel(err), fmt.Sprintf("auth.Verify(): userId=%d, err=%s", d.User.Id, err))
	return
}

func (sl serviceLogging) logLevel(err error) (lvl slog.Level) {
	switch {
	case err == nil:
		lvl = slog.LevelDebug
	case errors.Is(err, ErrAuth):
		lvl = slog.LevelWarn
	default:
		lvl = slog.LevelError
	}
	return
}
