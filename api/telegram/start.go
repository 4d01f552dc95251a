package telegram

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/telebot.v3"

	svcUsers "github.com/floriva/shop-telegram/service/users"
)

const msgStartPrivate = `Welcome to the flower shop 💐
• Tap the <b>Shop</b> button below to browse the catalog and place an order.
• Send the <pre>/orders</pre> command to see your recent orders.
`

const LabelShop = "🌷 Shop"

var ErrChatType = errors.New("unsupported chat type (supported options: \"private\")")

func GetReplyKeyboard(urlWebApp string) (kbd *telebot.ReplyMarkup) {
	kbd = &telebot.ReplyMarkup{
		ResizeKeyboard: true,
	}
	kbd.Reply(
		kbd.Row(telebot.Btn{
			Text: LabelShop,
			WebApp: &telebot.WebApp{
				URL: urlWebApp,
			},
		}),
	)
	return
}

func StartHandlerFunc(svcUsers svcUsers.Service, urlWebApp string) telebot.HandlerFunc {
	return func(ctx telebot.Context) (err error) {
		chat := ctx.Chat()
		if chat.Type != telebot.ChatPrivate {
			return fmt.Errorf("%w: %s", ErrChatType, chat.Type)
		}
		_, _, err = svcUsers.GetOrCreate(context.TODO(), senderOf(ctx))
		if err == nil {
			err = ctx.Send(msgStartPrivate, GetReplyKeyboard(urlWebApp), telebot.ModeHTML)
		}
		return
	}
}

func ShopHandlerFunc(urlWebApp string) telebot.HandlerFunc {
	return func(ctx telebot.Context) error {
		return ctx.Send("Open the shop with the button below 👇", GetReplyKeyboard(urlWebApp))
	}
}
