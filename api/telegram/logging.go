package telegram

import (
	"log/slog"

	"github.com/bytedance/sonic"
	"gopkg.in/telebot.v3"
)

// LoggingHandlerFunc logs every incoming update before dispatch. The full
// payload rides along as a debug attr, identifiers are structured.
func LoggingHandlerFunc(next telebot.HandlerFunc, log *slog.Logger) telebot.HandlerFunc {
	return func(ctx telebot.Context) error {
		attrs := []any{
			slog.Int("update", ctx.Update().ID),
		}
		if chat := ctx.Chat(); chat != nil {
			attrs = append(attrs, slog.Int64("chat", chat.ID))
		}
		if sender := ctx.Sender(); sender != nil {
			attrs = append(attrs, slog.Int64("sender", sender.ID))
		}
		if data, err := sonic.MarshalString(ctx.Update()); err == nil {
			attrs = append(attrs, slog.String("payload", data))
		}
		log.Debug("bot update", attrs...)
		return next(ctx)
	}
}
