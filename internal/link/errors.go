package link

import "errors"

var ErrInvalidConfiguration = errors.New("link: invalid configuration")
