package orders

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const msgFmtOrderCreated = "Order <code>%s</code> accepted 💐\n%s\nTotal: <b>%s</b>\nStatus: %s"
const msgFmtOrderItem = "%s × %d"

// formatOrderCreated renders the confirmation message, see
// https://core.telegram.org/bots/api#html-style for the allowed markup.
// Product titles are admin-entered and pass through the sanitizer.
func formatOrderCreated(htmlPolicy *bluemonday.Policy, o Order) string {
	var items strings.Builder
	for i, item := range o.Items {
		if i > 0 {
			items.WriteByte('\n')
		}
		items.WriteString(fmt.Sprintf(msgFmtOrderItem, htmlPolicy.Sanitize(item.Title), item.Qty))
	}
	return fmt.Sprintf(msgFmtOrderCreated, o.Id, items.String(), FormatPrice(o.Total), o.Status.Description())
}

// FormatPrice renders kopecks as whole rubles, e.g. 150000 -> "1500 ₽".
func FormatPrice(kopecks uint64) string {
	return fmt.Sprintf("%d ₽", kopecks/100)
}
