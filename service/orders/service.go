package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/floriva/shop-telegram/service/products"
	"github.com/floriva/shop-telegram/service/users"
	"github.com/segmentio/ksuid"
)

type Service interface {

	// Create places an order for the user: item prices and titles are read
	// from the catalog and snapshotted. The buyer is notified out of band,
	// a notification failure never fails the order.
	Create(ctx context.Context, u users.User, in CreateInput) (o Order, err error)

	// Get returns the order only to its owner.
	Get(ctx context.Context, userId int64, id string) (o Order, err error)

	GetPage(ctx context.Context, userId int64, limit uint32, cursor string) (page []Order, err error)
}

type CreateInput struct {
	Items          []ItemInput `json:"items"`
	RecipientName  string      `json:"recipient_name"`
	RecipientPhone string      `json:"recipient_phone"`
	Address        string      `json:"address"`
	Comment        string      `json:"comment"`
}

type ItemInput struct {
	ProductSlug string `json:"product_slug"`
	Qty         uint32 `json:"qty"`
}

type service struct {
	stor         Storage
	storProducts products.Storage
	notifier     Notifier
	now          func() time.Time
}

func NewService(stor Storage, storProducts products.Storage, notifier Notifier) Service {
	return service{
		stor:         stor,
		storProducts: storProducts,
		notifier:     notifier,
		now:          time.Now,
	}
}

func (svc service) Create(ctx context.Context, u users.User, in CreateInput) (o Order, err error) {
	if len(in.Items) == 0 {
		err = fmt.Errorf("%w: no items", ErrInvalidOrder)
		return
	}
	if in.RecipientName == "" || in.RecipientPhone == "" {
		err = fmt.Errorf("%w: recipient name and phone are required", ErrInvalidOrder)
		return
	}
	o = Order{
		Id:             ksuid.New().String(),
		UserId:         u.Id,
		Status:         StatusNew,
		RecipientName:  in.RecipientName,
		RecipientPhone: in.RecipientPhone,
		Address:        in.Address,
		Comment:        in.Comment,
		Created:        svc.now(),
	}
	for _, itemIn := range in.Items {
		if itemIn.Qty == 0 {
			err = fmt.Errorf("%w: zero quantity for %s", ErrInvalidOrder, itemIn.ProductSlug)
			return
		}
		var p products.Product
		p, err = svc.storProducts.GetBySlug(ctx, itemIn.ProductSlug)
		switch {
		case err != nil:
			return
		case !p.Available():
			err = fmt.Errorf("%w: %s is not available", ErrInvalidOrder, itemIn.ProductSlug)
			return
		}
		o.Items = append(o.Items, Item{
			ProductSlug: p.Slug,
			Title:       p.Title,
			Price:       p.Price,
			Qty:         itemIn.Qty,
		})
		o.Total += p.Price * uint64(itemIn.Qty)
	}
	err = svc.stor.Create(ctx, o)
	if err == nil && svc.notifier != nil {
		go svc.notifier.OrderCreated(u, o)
	}
	return
}

func (svc service) Get(ctx context.Context, userId int64, id string) (o Order, err error) {
	o, err = svc.stor.Get(ctx, id)
	if err == nil && o.UserId != userId {
		// existence of other users' orders is not disclosed
		o = Order{}
		err = ErrNotFound
	}
	return
}

func (svc service) GetPage(ctx context.Context, userId int64, limit uint32, cursor string) (page []Order, err error) {
	page, err = svc.stor.GetPage(ctx, userId, limit, cursor)
	return
}
