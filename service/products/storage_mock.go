package products

import (
	"context"
	"errors"
	"sort"
)

type storageMock struct {
	products   map[string]Product
	categories []Category
}

func NewStorageMock(prods []Product, cats []Category) Storage {
	sm := &storageMock{
		products:   make(map[string]Product),
		categories: cats,
	}
	for _, p := range prods {
		sm.products[p.Slug] = p
	}
	return sm
}

func (sm *storageMock) Close() error {
	return nil
}

func (sm *storageMock) GetPage(ctx context.Context, categoryId string, limit uint32, cursor string) (page []Product, err error) {
	var after Product
	paging := cursor != ""
	if paging {
		after, err = sm.GetBySlug(ctx, cursor)
		if errors.Is(err, ErrNotFound) {
			err = nil
			return
		}
		if err != nil {
			return
		}
	}
	for _, p := range sm.products {
		if !p.Active {
			continue
		}
		if categoryId != "" && p.CategoryId != categoryId {
			continue
		}
		if paging && !pageKeyLess(after, p) {
			continue
		}
		page = append(page, p)
	}
	sort.Slice(page, func(i, j int) bool {
		return pageKeyLess(page[i], page[j])
	})
	if uint32(len(page)) > limit {
		page = page[:limit]
	}
	return
}

// pageKeyLess orders two products by the listing sort key, sort order then
// slug. The page cursor filter uses the same key.
func pageKeyLess(a, b Product) bool {
	if a.SortOrder != b.SortOrder {
		return a.SortOrder < b.SortOrder
	}
	return a.Slug < b.Slug
}

func (sm *storageMock) GetBySlug(ctx context.Context, slug string) (p Product, err error) {
	switch slug {
	case "fail":
		err = ErrInternal
	default:
		var found bool
		p, found = sm.products[slug]
		if !found {
			err = ErrNotFound
		}
	}
	return
}

func (sm *storageMock) GetCategories(ctx context.Context) (cats []Category, err error) {
	cats = sm.categories
	return
}
