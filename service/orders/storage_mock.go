package orders

import (
	"context"
	"sort"
	"sync"
)

type storageMock struct {
	mx      sync.Mutex
	storage map[string]Order
}

func NewStorageMock() Storage {
	return &storageMock{
		storage: make(map[string]Order),
	}
}

func (sm *storageMock) Close() error {
	return nil
}

func (sm *storageMock) Create(ctx context.Context, o Order) (err error) {
	sm.mx.Lock()
	defer sm.mx.Unlock()
	sm.storage[o.Id] = o
	return
}

func (sm *storageMock) Get(ctx context.Context, id string) (o Order, err error) {
	sm.mx.Lock()
	defer sm.mx.Unlock()
	o, found := sm.storage[id]
	if !found {
		err = ErrNotFound
	}
	return
}

func (sm *storageMock) GetPage(ctx context.Context, userId int64, limit uint32, cursor string) (page []Order, err error) {
	sm.mx.Lock()
	defer sm.mx.Unlock()
	for _, o := range sm.storage {
		if o.UserId != userId {
			continue
		}
		if cursor != "" && o.Id >= cursor {
			continue
		}
		page = append(page, o)
	}
	sort.Slice(page, func(i, j int) bool {
		return page[i].Id > page[j].Id
	})
	if uint32(len(page)) > limit {
		page = page[:limit]
	}
	return
}
