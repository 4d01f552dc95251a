package products

import "errors"

var ErrNotFound = errors.New("product or category not found")
var ErrInternal = errors.New("internal failure")
