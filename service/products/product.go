package products

import "time"

// Product is a catalog item, a bouquet or a composition.
// Prices are in kopecks to avoid float rounding.
type Product struct {
	Slug         string    `bson:"slug" json:"slug"`
	CategoryId   string    `bson:"categoryId" json:"category_id"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description" json:"description"`
	Price        uint64    `bson:"price" json:"price"`
	OldPrice     uint64    `bson:"oldPrice,omitempty" json:"old_price,omitempty"`
	QtyAvailable uint32    `bson:"qtyAvailable" json:"qty_available"`
	Unlimited    bool      `bson:"unlimited" json:"unlimited"`
	Active       bool      `bson:"active" json:"active"`
	SortOrder    uint32    `bson:"sortOrder" json:"sort_order"`
	ImageUrls    []string  `bson:"imageUrls,omitempty" json:"image_urls,omitempty"`
	Created      time.Time `bson:"created" json:"created"`
}

type Category struct {
	Id        string `bson:"id" json:"id"`
	Title     string `bson:"title" json:"title"`
	SortOrder uint32 `bson:"sortOrder" json:"sort_order"`
}

// Available reports whether the product can be bought right now.
func (p Product) Available() bool {
	return p.Active && (p.Unlimited || p.QtyAvailable > 0)
}
