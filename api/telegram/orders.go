package telegram

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/telebot.v3"

	svcOrders "github.com/floriva/shop-telegram/service/orders"
	svcUsers "github.com/floriva/shop-telegram/service/users"
)

const ordersPageLimit = uint32(5)

const msgNoOrders = "No orders yet. Tap the <b>Shop</b> button to place the first one 💐"
const msgFmtOrder = "<code>%s</code>\n%s\nTotal: <b>%s</b>\nStatus: %s"

func OrdersHandlerFunc(users svcUsers.Service, orders svcOrders.Service) telebot.HandlerFunc {
	return func(ctx telebot.Context) (err error) {
		u, _, err := users.GetOrCreate(context.TODO(), senderOf(ctx))
		var page []svcOrders.Order
		if err == nil {
			page, err = orders.GetPage(context.TODO(), u.Id, ordersPageLimit, "")
		}
		if err != nil {
			return
		}
		if len(page) == 0 {
			return ctx.Send(msgNoOrders, telebot.ModeHTML)
		}
		var txt strings.Builder
		for i, o := range page {
			if i > 0 {
				txt.WriteString("\n\n")
			}
			txt.WriteString(formatOrder(o))
		}
		return ctx.Send(txt.String(), telebot.ModeHTML)
	}
}

func formatOrder(o svcOrders.Order) string {
	var items strings.Builder
	for i, item := range o.Items {
		if i > 0 {
			items.WriteByte('\n')
		}
		items.WriteString(fmt.Sprintf("%s × %d", item.Title, item.Qty))
	}
	return fmt.Sprintf(msgFmtOrder, o.Id, items.String(), svcOrders.FormatPrice(o.Total), o.Status.Description())
}
