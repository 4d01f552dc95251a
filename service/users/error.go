package users

import "errors"

var ErrAlreadyExists = errors.New("user already exists")
var ErrNotFound = errors.New("user not found")
var ErrInternal = errors.New("internal failure")
