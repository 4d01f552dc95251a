package telegram

import (
	"gopkg.in/telebot.v3"

	svcAuth "github.com/floriva/shop-telegram/service/auth"
)

// senderOf maps the update sender to the identity shape shared with the
// init data verifier.
func senderOf(ctx telebot.Context) svcAuth.TelegramUser {
	sender := ctx.Sender()
	return svcAuth.TelegramUser{
		Id:           sender.ID,
		FirstName:    sender.FirstName,
		LastName:     sender.LastName,
		UserName:     sender.Username,
		LanguageCode: sender.LanguageCode,
		IsPremium:    sender.IsPremium,
	}
}
