package orders

import "time"

type Order struct {
	Id             string    `bson:"id" json:"id"`
	UserId         int64     `bson:"userId" json:"-"`
	Status         Status    `bson:"status" json:"status"`
	Items          []Item    `bson:"items" json:"items"`
	RecipientName  string    `bson:"recipientName" json:"recipient_name"`
	RecipientPhone string    `bson:"recipientPhone" json:"recipient_phone"`
	Address        string    `bson:"address" json:"address"`
	Comment        string    `bson:"comment,omitempty" json:"comment,omitempty"`
	Total          uint64    `bson:"total" json:"total"`
	Created        time.Time `bson:"created" json:"created"`
}

// Item is a snapshot of the product at purchase time: later price or title
// changes never affect a placed order.
type Item struct {
	ProductSlug string `bson:"productSlug" json:"product_slug"`
	Title       string `bson:"title" json:"title"`
	Price       uint64 `bson:"price" json:"price"`
	Qty         uint32 `bson:"qty" json:"qty"`
}
