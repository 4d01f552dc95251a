package orders

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/telebot.v3"

	"github.com/floriva/shop-telegram/service/users"
)

// Notifier tells the buyer about their order through the bot chat.
type Notifier interface {
	OrderCreated(u users.User, o Order) (err error)
}

type notifierTelegram struct {
	tgBot      *telebot.Bot
	htmlPolicy *bluemonday.Policy
	log        *slog.Logger
}

const msgFmtSendRetry = "failed to notify user %d about order %s, cause: %s, retrying in: %s"

func NewNotifier(tgBot *telebot.Bot, htmlPolicy *bluemonday.Policy, log *slog.Logger) Notifier {
	return notifierTelegram{
		tgBot:      tgBot,
		htmlPolicy: htmlPolicy,
		log:        log,
	}
}

func (n notifierTelegram) OrderCreated(u users.User, o Order) (err error) {
	msg := formatOrderCreated(n.htmlPolicy, o)
	chat := telebot.ChatID(u.Id)
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 1 * time.Minute
	err = backoff.RetryNotify(
		func() error {
			_, errSend := n.tgBot.Send(chat, msg, telebot.ModeHTML)
			return errSend
		},
		b,
		func(errRetry error, d time.Duration) {
			n.log.Warn(fmt.Sprintf(msgFmtSendRetry, u.Id, o.Id, errRetry, d))
		},
	)
	if err != nil {
		n.log.Error(fmt.Sprintf("giving up notifying user %d about order %s: %s", u.Id, o.Id, err))
	}
	return
}
