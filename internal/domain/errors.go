package domain

import "errors"

var ErrNullCredentials = errors.New("username or password is null")
