package orders

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floriva/shop-telegram/service/products"
	"github.com/floriva/shop-telegram/service/users"
)

var testCatalog = []products.Product{
	{
		Slug:      "red-roses-15",
		Title:     "15 Red Roses",
		Price:     250000,
		Unlimited: true,
		Active:    true,
	},
	{
		Slug:   "peony-box",
		Title:  "Peony Box",
		Price:  420000,
		Active: true,
		// qty 0, not unlimited: sold out
	},
	{
		Slug:         "tulip-mix",
		Title:        "Tulip Mix",
		Price:        150000,
		QtyAvailable: 3,
		Active:       true,
	},
}

var testBuyer = users.User{
	Id:        42,
	FirstName: "Ann",
}

func newTestService() Service {
	return NewService(NewStorageMock(), products.NewStorageMock(testCatalog, nil), nil)
}

func TestService_Create(t *testing.T) {
	svc := newTestService()
	cases := map[string]struct {
		in    CreateInput
		total uint64
		err   error
	}{
		"ok": {
			in: CreateInput{
				Items: []ItemInput{
					{
						ProductSlug: "red-roses-15",
						Qty:         2,
					},
					{
						ProductSlug: "tulip-mix",
						Qty:         1,
					},
				},
				RecipientName:  "Ann",
				RecipientPhone: "+70000000000",
				Address:        "Arbat 1",
			},
			total: 650000,
		},
		"no items": {
			in: CreateInput{
				RecipientName:  "Ann",
				RecipientPhone: "+70000000000",
			},
			err: ErrInvalidOrder,
		},
		"no recipient": {
			in: CreateInput{
				Items: []ItemInput{
					{
						ProductSlug: "red-roses-15",
						Qty:         1,
					},
				},
			},
			err: ErrInvalidOrder,
		},
		"zero qty": {
			in: CreateInput{
				Items: []ItemInput{
					{
						ProductSlug: "red-roses-15",
					},
				},
				RecipientName:  "Ann",
				RecipientPhone: "+70000000000",
			},
			err: ErrInvalidOrder,
		},
		"unknown product": {
			in: CreateInput{
				Items: []ItemInput{
					{
						ProductSlug: "cactus",
						Qty:         1,
					},
				},
				RecipientName:  "Ann",
				RecipientPhone: "+70000000000",
			},
			err: products.ErrNotFound,
		},
		"sold out": {
			in: CreateInput{
				Items: []ItemInput{
					{
						ProductSlug: "peony-box",
						Qty:         1,
					},
				},
				RecipientName:  "Ann",
				RecipientPhone: "+70000000000",
			},
			err: ErrInvalidOrder,
		},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			o, err := svc.Create(context.TODO(), testBuyer, c.in)
			if c.err == nil {
				require.Nil(t, err)
				assert.NotEmpty(t, o.Id)
				assert.Equal(t, StatusNew, o.Status)
				assert.Equal(t, c.total, o.Total)
				assert.Equal(t, int64(42), o.UserId)
				assert.Equal(t, "15 Red Roses", o.Items[0].Title)
			} else {
				assert.ErrorIs(t, err, c.err)
			}
		})
	}
}

func TestService_Get_Ownership(t *testing.T) {
	svc := newTestService()
	o, err := svc.Create(context.TODO(), testBuyer, CreateInput{
		Items: []ItemInput{
			{
				ProductSlug: "red-roses-15",
				Qty:         1,
			},
		},
		RecipientName:  "Ann",
		RecipientPhone: "+70000000000",
	})
	require.Nil(t, err)
	//
	got, err := svc.Get(context.TODO(), 42, o.Id)
	require.Nil(t, err)
	assert.Equal(t, o.Id, got.Id)
	//
	_, err = svc.Get(context.TODO(), 43, o.Id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(context.TODO(), 42, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_GetPage(t *testing.T) {
	svc := newTestService()
	in := CreateInput{
		Items: []ItemInput{
			{
				ProductSlug: "red-roses-15",
				Qty:         1,
			},
		},
		RecipientName:  "Ann",
		RecipientPhone: "+70000000000",
	}
	var ids []string
	for i := 0; i < 3; i++ {
		o, err := svc.Create(context.TODO(), testBuyer, in)
		require.Nil(t, err)
		ids = append(ids, o.Id)
	}
	// ksuid ordering within the same second is random, sort the
	// expectation the way the listing does
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	//
	page, err := svc.GetPage(context.TODO(), 42, 2, "")
	require.Nil(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[0], page[0].Id)
	assert.Equal(t, ids[1], page[1].Id)
	//
	page, err = svc.GetPage(context.TODO(), 42, 2, page[1].Id)
	require.Nil(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[2], page[0].Id)
	//
	page, err = svc.GetPage(context.TODO(), 43, 10, "")
	require.Nil(t, err)
	assert.Empty(t, page)
}
