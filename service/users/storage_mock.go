package users

import (
	"context"
	"sync"
)

// id triggering a simulated storage outage in the mock
const IdFailMock = int64(-1)

type storageMock struct {
	mx      sync.Mutex
	storage map[int64]User
	creates int
}

func NewStorageMock() Storage {
	return &storageMock{
		storage: make(map[int64]User),
	}
}

func (sm *storageMock) Close() error {
	return nil
}

func (sm *storageMock) Create(ctx context.Context, u User) (err error) {
	if u.Id == IdFailMock {
		return ErrInternal
	}
	sm.mx.Lock()
	defer sm.mx.Unlock()
	if _, exists := sm.storage[u.Id]; exists {
		return ErrAlreadyExists
	}
	sm.storage[u.Id] = u
	sm.creates++
	return
}

func (sm *storageMock) Get(ctx context.Context, id int64) (u User, err error) {
	if id == IdFailMock {
		err = ErrInternal
		return
	}
	sm.mx.Lock()
	defer sm.mx.Unlock()
	u, found := sm.storage[id]
	if !found {
		err = ErrNotFound
	}
	return
}

func (sm *storageMock) Update(ctx context.Context, u User) (err error) {
	sm.mx.Lock()
	defer sm.mx.Unlock()
	if _, exists := sm.storage[u.Id]; !exists {
		return ErrNotFound
	}
	sm.storage[u.Id] = u
	return
}
