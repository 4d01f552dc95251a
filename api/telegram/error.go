package telegram

import (
	"log/slog"

	"gopkg.in/telebot.v3"
)

const msgSomethingWrong = "Something went wrong, please try again later 🥀"

// ErrorHandlerFunc turns a handler failure into a reply that keeps the
// keyboard. The cause goes to the log only, never to the chat.
func ErrorHandlerFunc(h telebot.HandlerFunc, kbd *telebot.ReplyMarkup, log *slog.Logger) telebot.HandlerFunc {
	return func(ctx telebot.Context) (err error) {
		err = h(ctx)
		if err != nil {
			log.Warn("bot handler failed", slog.String("err", err.Error()))
			_ = ctx.Send(msgSomethingWrong, kbd)
			err = nil
		}
		return
	}
}
