package orders

import "errors"

var ErrInvalidOrder = errors.New("invalid order")
var ErrNotFound = errors.New("order not found")
var ErrInternal = errors.New("internal failure")
